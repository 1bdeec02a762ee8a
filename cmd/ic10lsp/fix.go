package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ic10lsp/internal/driver"
	"ic10lsp/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.ic10|directory>...",
	Short: "Apply lint quick fixes in place",
	Long: `Rewrite absolute jumps to their relative form and mode literals to their
names, the same quick fixes the language server offers.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runFix,
}

func init() {
	fixCmd.Flags().Bool("once", false, "apply only the first available fix")
	fixCmd.Flags().String("id", "", "apply the fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "report fixes without writing files")
}

func runFix(cmd *cobra.Command, args []string) error {
	once, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	if targetID != "" && once {
		return fmt.Errorf("--id cannot be combined with --once")
	}

	opts := fix.ApplyOptions{Mode: fix.ApplyModeAll, DryRun: dryRun}
	switch {
	case targetID != "":
		opts.Mode = fix.ApplyModeID
		opts.TargetID = targetID
	case once:
		opts.Mode = fix.ApplyModeOnce
	}

	files, err := driver.ListFiles(args)
	if err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig(cmd, wd)
	if err != nil {
		return err
	}

	res, err := driver.CheckFiles(cmd.Context(), files, driver.Options{Config: cfg, BaseDir: wd})
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	for _, f := range res.Files {
		if f.Err != nil {
			return fmt.Errorf("fix: %w", f.Err)
		}
	}

	applied, applyErr := fix.Apply(res.FileSet, res.Diagnostics(), opts)
	return handleApplyResult(cmd.OutOrStdout(), applied, applyErr)
}

func handleApplyResult(out io.Writer, res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		fmt.Fprintf(out, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(out, "  %s [%s] %s (%d edits, %s)\n", item.Title, item.ID, location, item.EditCount, item.Applicability)
		}
	}

	if len(res.FileChanges) > 0 {
		fmt.Fprintln(out, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(out, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(out, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}
	return nil
}
