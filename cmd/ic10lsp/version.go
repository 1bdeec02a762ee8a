package main

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ic10lsp/internal/version"
)

// versionOptions selects the optional metadata lines.
type versionOptions struct {
	format      string
	showHash    bool
	showMessage bool
	showDate    bool
}

var versionFlags struct {
	versionOptions
	full bool
}

func init() {
	f := versionCmd.Flags()
	f.StringVar(&versionFlags.format, "format", "pretty", "output format (pretty|json)")
	f.BoolVar(&versionFlags.showHash, "hash", false, "include git commit hash")
	f.BoolVar(&versionFlags.showMessage, "message", false, "include git commit message")
	f.BoolVar(&versionFlags.showDate, "date", false, "include build timestamp")
	f.BoolVar(&versionFlags.full, "full", false, "show every recorded bit of build metadata")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show ic10lsp build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts := versionFlags.versionOptions
		if versionFlags.full {
			opts.showHash, opts.showMessage, opts.showDate = true, true, true
		}
		info := collectVersionInfo()
		out := cmd.OutOrStdout()
		switch strings.ToLower(opts.format) {
		case "pretty":
			renderVersionPretty(out, info, opts)
			return nil
		case "json":
			return renderVersionJSON(out, info, opts)
		}
		return fmt.Errorf("unsupported format %q (must be pretty or json)", opts.format)
	},
}

// collectVersionInfo trims ldflags values; an empty version reads as dev.
func collectVersionInfo() version.Info {
	cur := version.Current()
	return version.Info{
		Version:    cmp.Or(strings.TrimSpace(cur.Version), "dev"),
		GitCommit:  strings.TrimSpace(cur.GitCommit),
		GitMessage: strings.TrimSpace(cur.GitMessage),
		BuildDate:  strings.TrimSpace(cur.BuildDate),
	}
}

// visible drops the fields opts does not ask for and fills the rest.
func (opts versionOptions) visible(info version.Info) version.Info {
	pick := func(on bool, v string) string {
		if !on {
			return ""
		}
		return cmp.Or(v, "unknown")
	}
	return version.Info{
		Version:    info.Version,
		GitCommit:  pick(opts.showHash, info.GitCommit),
		GitMessage: pick(opts.showMessage, info.GitMessage),
		BuildDate:  pick(opts.showDate, info.BuildDate),
	}
}

func renderVersionPretty(out io.Writer, info version.Info, opts versionOptions) {
	v := opts.visible(info)
	fmt.Fprintf(out, "ic10lsp %s\n", version.Pretty())
	for _, row := range [...]struct{ label, value string }{
		{"commit: ", v.GitCommit},
		{"message:", v.GitMessage},
		{"built:  ", v.BuildDate},
	} {
		if row.value != "" {
			fmt.Fprintf(out, "%s %s\n", row.label, row.value)
		}
	}
}

func renderVersionJSON(out io.Writer, info version.Info, opts versionOptions) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Tool string `json:"tool"`
		version.Info
	}{"ic10lsp", opts.visible(info)})
}
