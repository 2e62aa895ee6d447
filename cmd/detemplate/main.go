package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"detemplate/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "detemplate",
	Short: "C++ template simplifier",
	Long:  `detemplate eliminates C++ templates from a token stream by monomorphization.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if traceCleanup != nil {
			traceCleanup()
		}
	},
}

var traceCleanup func()

// main wires up the subcommands, registers the persistent flags every
// subcommand reads, and executes the root command. A non-nil execution
// error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(simplifyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show (0: use detemplate.toml or default)")
	rootCmd.PersistentFlags().Bool("debugwarnings", false, "emit debug diagnostics for skipped template constructs")
	rootCmd.PersistentFlags().String("ui", "auto", "progress UI mode (auto|on|off)")

	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this path")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime execution trace to this path")
	rootCmd.PersistentFlags().String("trace", "", "write a structured trace to this path")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace verbosity (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "in-memory trace ring buffer size")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "periodic trace heartbeat interval (0: disabled)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
