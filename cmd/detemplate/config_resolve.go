package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"detemplate/internal/config"
	"detemplate/internal/templatesimplifier"
)

// resolveMaxDiagnostics honors an explicit --max-diagnostics flag value
// first, then the nearest detemplate.toml, then the built-in default.
func resolveMaxDiagnostics(filePath string, flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	if manifest, ok, err := config.LoadManifest(filepath.Dir(filePath)); err == nil && ok && manifest.Config.Diagnostics.MaxDiagnostics > 0 {
		return manifest.Config.Diagnostics.MaxDiagnostics
	}
	return config.DefaultMaxDiagnostics
}

// resolveSimplifierSettings honors an explicit --debugwarnings flag over
// the nearest detemplate.toml's [simplifier] section.
func resolveSimplifierSettings(cmd *cobra.Command, filePath string) templatesimplifier.Settings {
	settings := templatesimplifier.Settings{}
	if manifest, ok, err := config.LoadManifest(filepath.Dir(filePath)); err == nil && ok {
		settings.DebugWarnings = manifest.Config.Simplifier.DebugWarnings
	}
	if cmd.Root().PersistentFlags().Changed("debugwarnings") {
		settings.DebugWarnings, _ = cmd.Root().PersistentFlags().GetBool("debugwarnings")
	}
	return settings
}
