package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ic10lsp/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ic10lsp [host] [port]",
	Short: "Language server and checker for IC10 programs",
	Long: `ic10lsp analyses Stationeers IC10 programs. Without a subcommand it
runs the language server, on stdio by default.`,
	Args:              cobra.MaximumNArgs(2),
	SilenceUsage:      true,
	SilenceErrors:     true,
	RunE:              runServe,
	PersistentPreRunE: setupRun,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(versionCmd)

	// Global flags.
	rootCmd.PersistentFlags().String("config", "", "configuration file (default: nearest ic10lsp.toml)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("trace", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "text", "trace output format (text|ndjson)")
	rootCmd.PersistentFlags().String("trace-output", "", "trace file (default: stderr)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")
	addServeFlags(rootCmd)

	err := rootCmd.Execute()
	// Runs after failed commands too, unlike PersistentPostRun.
	cleanupRun()
	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(exitCode(err))
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
