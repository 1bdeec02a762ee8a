package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ic10lsp/internal/config"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/diagfmt"
	"ic10lsp/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.ic10|directory>...",
	Short: "Analyse IC10 files and print diagnostics",
	Long: `Analyse IC10 files in parallel and print their diagnostics. Directories
are searched for .ic10 files. The exit status is 1 when any error is found.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runCheckCmd,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("cache", false, "cache results on disk")
	checkCmd.Flags().String("progress", "auto", "show a progress view (auto|on|off)")
	checkCmd.Flags().Bool("timings", false, "print per-pass timings")
	checkCmd.Flags().Bool("notes", true, "show related notes")
	checkCmd.Flags().Bool("fixes", false, "show available fixes")
}

type checkOptions struct {
	format   string
	jobs     int
	cache    *driver.DiskCache
	progress bool
	timings  bool
	notes    bool
	fixes    bool
	color    bool
	config   config.Configuration
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	format, err := flags.GetString("format")
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json or short)", format)
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return err
	}
	useCache, err := flags.GetBool("cache")
	if err != nil {
		return err
	}
	progressStr, err := flags.GetString("progress")
	if err != nil {
		return err
	}
	progress, err := parseSwitch("progress", progressStr)
	if err != nil {
		return err
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return err
	}
	notes, err := flags.GetBool("notes")
	if err != nil {
		return err
	}
	fixes, err := flags.GetBool("fixes")
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

	opts := checkOptions{
		format:   format,
		jobs:     jobs,
		progress: format == "pretty" && progress.enabled(os.Stderr),
		timings:  timings,
		notes:    notes,
		fixes:    fixes,
		color:    !color.NoColor,
		config:   cfg,
	}
	if useCache {
		if opts.cache, err = driver.OpenDiskCache("ic10lsp"); err != nil {
			return fmt.Errorf("cache: %w", err)
		}
	}
	return runCheck(cmd.Context(), cmd.OutOrStdout(), args, opts)
}

// runCheck checks paths and renders the result to out. It returns errFailed
// when an error diagnostic or an unreadable file was found.
func runCheck(ctx context.Context, out io.Writer, paths []string, opts checkOptions) error {
	files, err := driver.ListFiles(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", driver.Ext)
	}

	baseDir, err := os.Getwd()
	if err != nil {
		return err
	}
	dopts := driver.Options{
		Jobs:    opts.jobs,
		Config:  opts.config,
		Cache:   opts.cache,
		BaseDir: baseDir,
	}

	var res *driver.Result
	if opts.progress {
		res, err = runCheckWithUI(ctx, "checking", files, dopts)
	} else {
		res, err = driver.CheckFiles(ctx, files, dopts)
	}
	if err != nil {
		return err
	}

	bag := diag.NewBag(len(res.Diagnostics()))
	bag.Extend(res.Diagnostics())
	bag.Sort()

	for _, f := range res.Files {
		if f.Err != nil {
			fmt.Fprintf(out, "%s: %s\n", color.New(color.FgRed, color.Bold).Sprint("error"), f.Err)
		}
	}

	switch opts.format {
	case "json":
		if err := diagfmt.JSON(out, bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     opts.notes,
			IncludeFixes:     opts.fixes,
			IncludePreviews:  opts.fixes,
		}); err != nil {
			return err
		}
	case "short":
		if short := diag.FormatShortDiagnostics(bag.Items(), res.FileSet, opts.notes); short != "" {
			fmt.Fprintln(out, short)
		}
	default:
		diagfmt.Pretty(out, bag, res.FileSet, diagfmt.PrettyOpts{
			Color:       opts.color,
			PathMode:    diagfmt.PathModeRelative,
			ShowNotes:   opts.notes,
			ShowFixes:   opts.fixes,
			ShowPreview: opts.fixes,
		})
		diagfmt.Summary(out, bag, len(res.Files), opts.color)
	}

	if opts.timings {
		fmt.Fprint(out, res.Timings.Format())
	}
	if res.ErrorCount() > 0 {
		return errFailed
	}
	return nil
}
