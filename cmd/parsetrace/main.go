package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"parsetrace/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "parsetrace",
		Short:        "Trace combinator parsers",
		Long:         `parsetrace runs instrumented demo grammars and prints their hierarchical execution traces`,
		Version:      version.Current().Version,
		SilenceUsage: true,
	}

	root.AddCommand(newDemoCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newGrammarsCmd())
	root.AddCommand(newVersionCmd())

	root.PersistentFlags().String("color", "", "colorize output (auto|on|off); default from config, else auto")
	root.PersistentFlags().String("config", "", "path to "+configFileName()+" (default: nearest one upwards from the working directory)")
	root.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	root.PersistentFlags().Bool("timings", false, "print phase timings to stderr")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to this file")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
	return root
}

// main executes the root command and exits with status 1 on error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
