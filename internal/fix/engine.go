// Package fix applies the text edits attached to diagnostics to files on
// disk.
package fix

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
)

// ErrNoFixes is returned when nothing was applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode selects which candidates are applied.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first always-safe fix, or the first fix
	// when none is safe.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every always-safe fix.
	ApplyModeAll
	// ApplyModeID applies the fix named by ApplyOptions.TargetID.
	ApplyModeID
)

type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun computes the new contents without writing. Virtual files
	// can only be fixed in a dry run.
	DryRun bool
}

type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	PrimaryPath   string
	EditCount     int
}

// SkippedFix is a fix that was not applied, with the reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

type FileChange struct {
	Path      string
	EditCount int
	// Content is the rewritten file in its on-disk layout.
	Content []byte
}

type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

func (r *ApplyResult) skip(f diag.Fix, reason string) {
	r.Skipped = append(r.Skipped, SkippedFix{ID: f.ID, Title: f.Title, Reason: reason})
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects the fixes of diagnostics, selects them by opts.Mode and
// applies them file by file. Candidates whose edits overlap an already
// applied edit are skipped. It returns ErrNoFixes when nothing applied.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	res := &ApplyResult{}
	if fs == nil {
		return res, errors.New("fix: nil FileSet")
	}

	cands, skipped := gatherCandidates(diagnostics)
	res.Skipped = append(res.Skipped, skipped...)
	sortCandidates(cands)

	selected := selectCandidates(cands, opts, res)
	if len(selected) == 0 {
		return res, ErrNoFixes
	}

	buffers := make(map[source.FileID]*buffer)
	for _, c := range selected {
		if reason := applyCandidate(fs, buffers, c, opts.DryRun); reason != "" {
			res.skip(c.fix, reason)
			continue
		}
		res.Applied = append(res.Applied, AppliedFix{
			ID:            c.fix.ID,
			Title:         c.fix.Title,
			Code:          c.diag.Code,
			Message:       c.diag.Message,
			Applicability: c.fix.Applicability,
			PrimaryPath:   displayPath(fs, c.diag.Primary.File, "auto"),
			EditCount:     len(c.fix.Edits),
		})
	}
	if len(res.Applied) == 0 {
		return res, ErrNoFixes
	}

	for _, id := range slices.Sorted(maps.Keys(buffers)) {
		b := buffers[id]
		out := b.layout()
		if !opts.DryRun {
			if err := writeKeepingMode(b.file.Path, out); err != nil {
				return res, err
			}
		}
		res.FileChanges = append(res.FileChanges, FileChange{
			Path:      displayPath(fs, id, "relative"),
			EditCount: len(b.applied),
			Content:   out,
		})
	}
	slices.SortStableFunc(res.FileChanges, func(a, b FileChange) int { return cmp.Compare(a.Path, b.Path) })
	return res, nil
}

// gatherCandidates flattens the fixes of every diagnostic. Fixes without
// edits and repeated IDs are skipped. A missing ID becomes
// CODE-file-start-index.
func gatherCandidates(diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	var (
		cands []candidate
		skips []SkippedFix
	)
	seen := make(map[string]struct{})
	for _, d := range diagnostics {
		for i, f := range d.Fixes {
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, i)
			}
			if _, dup := seen[f.ID]; dup {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "duplicate fix id"})
				continue
			}
			seen[f.ID] = struct{}{}
			cands = append(cands, candidate{diag: d, fix: f, order: len(cands)})
		}
	}
	return cands, skips
}

// sortCandidates orders by primary span, then emission order.
func sortCandidates(cands []candidate) {
	slices.SortStableFunc(cands, func(a, b candidate) int {
		pa, pb := a.diag.Primary, b.diag.Primary
		return cmp.Or(
			cmp.Compare(pa.File, pb.File),
			cmp.Compare(pa.Start, pb.Start),
			cmp.Compare(pa.End, pb.End),
			cmp.Compare(a.order, b.order),
		)
	})
}

func selectCandidates(cands []candidate, opts ApplyOptions, res *ApplyResult) []candidate {
	safe := func(c candidate) bool { return c.fix.Applicability == diag.FixApplicabilityAlwaysSafe }
	switch opts.Mode {
	case ApplyModeID:
		if i := slices.IndexFunc(cands, func(c candidate) bool { return c.fix.ID == opts.TargetID }); i >= 0 {
			return cands[i : i+1]
		}
		res.Skipped = append(res.Skipped, SkippedFix{ID: opts.TargetID, Reason: "fix id not found"})
	case ApplyModeAll:
		var out []candidate
		for _, c := range cands {
			if safe(c) {
				out = append(out, c)
			} else {
				res.skip(c.fix, "applicability is "+c.fix.Applicability.String())
			}
		}
		return out
	case ApplyModeOnce:
		if len(cands) == 0 {
			return nil
		}
		if i := slices.IndexFunc(cands, safe); i >= 0 {
			return cands[i : i+1]
		}
		return cands[:1]
	}
	return nil
}

// applyCandidate stages every edit of c and commits them only if all of
// them apply. It returns the reason on failure.
func applyCandidate(fs *source.FileSet, buffers map[source.FileID]*buffer, c candidate, dryRun bool) string {
	byFile := make(map[source.FileID][]diag.TextEdit)
	for _, e := range c.fix.Edits {
		byFile[e.Span.File] = append(byFile[e.Span.File], e)
	}
	staged := make(map[source.FileID]*buffer, len(byFile))
	for _, id := range slices.Sorted(maps.Keys(byFile)) {
		b := buffers[id]
		if b == nil {
			f := fs.Get(id)
			if f == nil {
				return "target file is unknown"
			}
			if f.Flags&source.FileVirtual != 0 && !dryRun {
				return "target file is virtual"
			}
			b = newBuffer(f)
		}
		next, reason := b.with(byFile[id])
		if reason != "" {
			if reason == reasonConflict {
				reason = "conflicts with previously applied edits in " + displayPath(fs, id, "auto")
			}
			return reason
		}
		staged[id] = next
	}
	for id, b := range staged {
		buffers[id] = b
	}
	return ""
}

func writeKeepingMode(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func displayPath(fs *source.FileSet, id source.FileID, mode string) string {
	f := fs.Get(id)
	if f == nil {
		return ""
	}
	return f.FormatPath(mode, fs.BaseDir())
}
