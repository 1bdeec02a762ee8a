package diagfmt

import "ic10lsp/internal/source"

// PathMode selects how file paths are printed.
type PathMode uint8

const (
	// PathModeAuto prints the path as given, shortening long absolute
	// paths to their base name.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	// PathModeRelative prints paths relative to the file set's base dir.
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
	// ShowFixes lists fix titles; ShowPreview adds a before/after diff.
	ShowFixes   bool
	ShowPreview bool
	// TabWidth expands tabs in quoted source lines, 4 when zero.
	TabWidth int
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	// IncludePositions adds 1-based line/column pairs to every location.
	IncludePositions bool
	PathMode         PathMode
	// Max caps the emitted diagnostics; zero keeps all.
	Max             int
	IncludeNotes    bool
	IncludeFixes    bool
	IncludePreviews bool
}

var pathModeNames = [...]string{
	PathModeAuto:     "auto",
	PathModeAbsolute: "absolute",
	PathModeRelative: "relative",
	PathModeBasename: "basename",
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	if int(mode) >= len(pathModeNames) {
		return f.Path
	}
	base := ""
	if mode == PathModeRelative {
		base = fs.BaseDir()
	}
	return f.FormatPath(pathModeNames[mode], base)
}
