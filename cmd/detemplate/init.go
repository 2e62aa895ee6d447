package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a detemplate project manifest",
	Long: `Initialize writes a detemplate.toml manifest at the target directory
(the current directory if [path] is omitted), recording the diagnostic
cap and simplifier settings the CLI will pick up automatically when run
against files under that directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit writes a detemplate.toml manifest at the target path, creating
// the directory if needed. It refuses to run if a manifest already
// exists there.
func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, "detemplate.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, []byte(defaultManifest()), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized detemplate project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - detemplate.toml\n")
	return nil
}

// defaultManifest returns a minimal detemplate.toml.
func defaultManifest() string {
	return strings.TrimLeft(`
[simplifier]
debugwarnings = false

[diagnostics]
max-diagnostics = 100
show-fixes = false
`, "\n")
}
