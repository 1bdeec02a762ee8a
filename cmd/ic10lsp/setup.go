package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ic10lsp/internal/config"
)

// errFailed marks a run that found errors; the message was already printed.
var errFailed = errors.New("check failed")

func exitCode(err error) int {
	if errors.Is(err, errFailed) {
		return 1
	}
	return 2
}

var cleanupRun = func() {}

func setupRun(cmd *cobra.Command, _ []string) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	stopTracing, err := setupTracing(cmd)
	if err != nil {
		stopProfiling()
		return err
	}
	cleanupRun = func() {
		stopTracing()
		stopProfiling()
	}
	return nil
}

// setupColor applies --color to fatih/color's global switch. NO_COLOR
// turns auto off.
func setupColor(cmd *cobra.Command) error {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	mode, err := parseSwitch("color", value)
	if err != nil {
		return err
	}
	color.NoColor = !mode.enabled(os.Stdout) || (mode == switchAuto && os.Getenv("NO_COLOR") != "")
	return nil
}

// loadConfig resolves --config, or the nearest ic10lsp.toml above dir. The
// second result reports whether the configuration came from the command
// line.
func loadConfig(cmd *cobra.Command, dir string) (config.Configuration, bool, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Configuration{}, false, err
	}
	cfg, err := config.Resolve(path, dir)
	if err != nil {
		return cfg, false, fmt.Errorf("config: %w", err)
	}
	return cfg, path != "", nil
}
