// Package config locates and loads detemplate.toml, the project manifest
// that records the settings the template simplifier is allowed to read
// (only debugwarnings) plus a couple of CLI-level conveniences (diagnostic
// cap, fix previews) that live alongside it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest is a resolved detemplate.toml plus the directory it was found
// in.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config is the decoded shape of detemplate.toml.
type Config struct {
	Simplifier SimplifierConfig `toml:"simplifier"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

// SimplifierConfig mirrors templatesimplifier.Settings field for field so
// a loaded manifest can populate it directly.
type SimplifierConfig struct {
	DebugWarnings bool `toml:"debugwarnings"`
}

// DiagnosticsConfig configures how many diagnostics the CLI will collect
// before it stops reporting more, and whether fix previews are shown.
type DiagnosticsConfig struct {
	MaxDiagnostics int  `toml:"max-diagnostics"`
	ShowFixes      bool `toml:"show-fixes"`
}

// DefaultMaxDiagnostics is used when a manifest omits the key, or none is
// found at all.
const DefaultMaxDiagnostics = 100

// FindManifest walks up from startDir looking for detemplate.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "detemplate.toml")
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindProjectRoot returns the directory containing detemplate.toml, if
// any.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(manifestPath), true, nil
}

// Load decodes detemplate.toml at path. Every field is optional; a bare
// "[simplifier]\ndebugwarnings = true" is a complete, valid manifest.
func Load(path string) (Config, error) {
	var cfg Config
	cfg.Diagnostics.MaxDiagnostics = DefaultMaxDiagnostics
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Diagnostics.MaxDiagnostics <= 0 {
		cfg.Diagnostics.MaxDiagnostics = DefaultMaxDiagnostics
	}
	return cfg, nil
}

// LoadManifest finds and loads the nearest detemplate.toml above
// startDir. ok is false (with a nil error) when none exists.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Load(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: manifestPath, Root: filepath.Dir(manifestPath), Config: cfg}, true, nil
}
