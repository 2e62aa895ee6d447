package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"detemplate/internal/diagfmt"
	"detemplate/internal/driver"
	"detemplate/internal/observ"
	"detemplate/internal/version"
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [flags] <file.cpp|directory>",
	Short: "Eliminate templates from a C++ source file by monomorphization",
	Long: `Simplify runs the full five-stage pipeline over a C++ source file:
specialization expansion, declaration discovery, instantiation discovery,
monomorphization, and declaration removal. It prints the resulting source
with every template declaration replaced by its concrete instantiations.

Given a directory, it simplifies every .cpp/.cc/.cxx/.hpp/.h/.hxx file
under it concurrently and reports diagnostics per file; --format source is
not meaningful for a directory and only diagnostics are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimplify,
}

func init() {
	simplifyCmd.Flags().String("format", "source", "output format (source|tokens|json|sarif)")
	simplifyCmd.Flags().Bool("list-monomorphs", false, "print the generated monomorph names to stderr")
	simplifyCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	simplifyCmd.Flags().Bool("cache", true, "skip files unchanged since the last directory run (disk cache)")
}

func runSimplify(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	if st, statErr := os.Stat(filePath); statErr == nil && st.IsDir() {
		return runSimplifyDir(cmd, filePath)
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	listMonomorphs, err := cmd.Flags().GetBool("list-monomorphs")
	if err != nil {
		return fmt.Errorf("failed to get list-monomorphs flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	maxDiagnostics = resolveMaxDiagnostics(filePath, maxDiagnostics)
	settings := resolveSimplifierSettings(cmd, filePath)

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	uiModeFlag, err := cmd.Root().PersistentFlags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiModeFlag)
	if err != nil {
		return err
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	cliTimer := observ.NewTimer()
	pipelinePhase := cliTimer.Begin("pipeline")
	var result driver.SimplifyResult
	if shouldUseTUI(mode) && !quiet {
		result, err = runSimplifyWithUI(cmd.Context(), filePath, maxDiagnostics, settings)
	} else {
		result, err = driver.Simplify(filePath, maxDiagnostics, settings, nil)
	}
	cliTimer.End(pipelinePhase, filePath)
	if err != nil {
		return fmt.Errorf("simplification failed: %w", err)
	}

	if format != "sarif" && (result.Bag.HasErrors() || result.Bag.HasWarnings()) {
		colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
		useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: useColor, Context: 2})
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if showTimings {
		printStageTimings(os.Stderr, result.Timings)
		fmt.Fprint(os.Stderr, cliTimer.Summary())
	}

	if listMonomorphs {
		names := make([]string, 0, len(result.Result.Monomorphs))
		for name := range result.Result.Monomorphs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintln(os.Stderr, name)
		}
	}

	switch format {
	case "source":
		return diagfmt.FormatSourcePretty(os.Stdout, result.Tokens)
	case "tokens":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	case "sarif":
		diagfmt.Sarif(os.Stdout, result.Bag, result.FileSet, diagfmt.SarifRunMeta{
			ToolName:    "detemplate",
			ToolVersion: version.Version,
		})
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// runSimplifyDir runs the pipeline over every C++ file under dirPath,
// concurrently, and prints diagnostics per file in path-sorted order. It
// never prints a "source" rendering for a whole directory; format only
// governs how each file's diagnostics would be reported if it supported
// json/sarif fan-out, which it currently does not, so only pretty
// diagnostics are printed regardless of --format.
func runSimplifyDir(cmd *cobra.Command, dirPath string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	maxDiagnosticsFlag, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	// resolveMaxDiagnostics/resolveSimplifierSettings look at filepath.Dir of
	// what they're given, so hand them a path inside dirPath rather than
	// dirPath itself.
	probePath := filepath.Join(dirPath, "x")
	maxDiagnostics := resolveMaxDiagnostics(probePath, maxDiagnosticsFlag)
	settings := resolveSimplifierSettings(cmd, probePath)

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))

	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	var cache *driver.DiskCache
	if useCache {
		cache, err = driver.OpenDiskCache("detemplate")
		if err != nil {
			// A cache we can't open just means every file runs uncached.
			cache = nil
		}
	}

	cliTimer := observ.NewTimer()
	batchPhase := cliTimer.Begin("batch")
	results, err := driver.SimplifyDir(cmd.Context(), dirPath, maxDiagnostics, settings, jobs, nil, cache)
	cliTimer.End(batchPhase, dirPath)
	if err != nil {
		return fmt.Errorf("directory simplification failed: %w", err)
	}

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
			continue
		}
		if r.Cached != nil {
			if !quiet && (r.Cached.ErrorCount > 0 || r.Cached.WarningCount > 0) {
				fmt.Fprintf(os.Stderr, "%s: cached, %d error(s), %d warning(s)\n", r.Path, r.Cached.ErrorCount, r.Cached.WarningCount)
			}
			continue
		}
		if !quiet && (r.Result.Bag.HasErrors() || r.Result.Bag.HasWarnings()) {
			diagfmt.Pretty(os.Stderr, r.Result.Bag, r.Result.FileSet, diagfmt.PrettyOpts{Color: useColor, Context: 2})
		}
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if showTimings {
		fmt.Fprint(os.Stderr, cliTimer.Summary())
	}

	errCount, warnCount := driver.TotalDiagnostics(results)
	fmt.Fprintf(os.Stderr, "%d file(s): %d error(s), %d warning(s)\n", len(results), errCount, warnCount)
	if errCount > 0 {
		return fmt.Errorf("simplification failed with %d error(s)", errCount)
	}
	return nil
}

