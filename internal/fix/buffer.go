package fix

import (
	"bytes"
	"cmp"
	"slices"

	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
)

const reasonConflict = "conflict"

// buffer is the fixed content of one file. Edits keep the offsets of the
// original file; applied is sorted by span so later edits can be shifted.
type buffer struct {
	file    *source.File
	content []byte
	applied []diag.TextEdit
}

func newBuffer(f *source.File) *buffer {
	return &buffer{file: f, content: f.Content}
}

// with returns a new buffer with edits applied, leaving b untouched, or
// the reason the edits cannot apply.
func (b *buffer) with(edits []diag.TextEdit) (*buffer, string) {
	for _, prev := range b.applied {
		for _, e := range edits {
			if spansConflict(prev, e) {
				return nil, reasonConflict
			}
		}
	}
	// Apply back to front so earlier offsets stay valid.
	edits = slices.Clone(edits)
	slices.SortFunc(edits, func(x, y diag.TextEdit) int {
		return cmp.Or(cmp.Compare(y.Span.Start, x.Span.Start), cmp.Compare(y.Span.End, x.Span.End))
	})
	out := slices.Clone(b.content)
	for _, e := range edits {
		start := int(e.Span.Start) + b.shift(e.Span.Start)
		end := int(e.Span.End) + b.shift(e.Span.End)
		if start < 0 || end < start || end > len(out) {
			return nil, "edit span out of range"
		}
		if e.OldText != "" && string(out[start:end]) != e.OldText {
			return nil, "existing text does not match expected content"
		}
		out = slices.Concat(out[:start], []byte(e.NewText), out[end:])
	}
	applied := slices.Concat(b.applied, edits)
	slices.SortStableFunc(applied, func(x, y diag.TextEdit) int {
		return cmp.Or(cmp.Compare(x.Span.Start, y.Span.Start), cmp.Compare(x.Span.End, y.Span.End))
	})
	return &buffer{file: b.file, content: out, applied: applied}, ""
}

// shift is the growth of the content before original offset off caused
// by applied edits ending at or before it.
func (b *buffer) shift(off uint32) int {
	delta := 0
	for _, e := range b.applied {
		if e.Span.Start > off {
			break
		}
		if e.Span.End <= off {
			delta += len(e.NewText) - int(e.Span.End-e.Span.Start)
		}
	}
	return delta
}

// layout undoes the normalization NewFile applied on load so a fixed file
// keeps its BOM, line endings and missing final newline.
func (b *buffer) layout() []byte {
	out, flags := b.content, b.file.Flags
	if flags&source.FileAddedNewline != 0 {
		out = bytes.TrimSuffix(out, []byte{'\n'})
	}
	if flags&source.FileNormalizedCRLF != 0 {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}
	if flags&source.FileHadBOM != 0 {
		out = slices.Concat([]byte("\xef\xbb\xbf"), out)
	}
	return out
}

// spansConflict reports whether two edits overlap as half-open intervals.
// Two insertions never conflict. An insertion conflicts with a
// replacement that strictly contains its position.
func spansConflict(a, b diag.TextEdit) bool {
	as, ae, bs, be := a.Span.Start, a.Span.End, b.Span.Start, b.Span.End
	switch {
	case as == ae && bs == be:
		return false
	case as == ae:
		return bs <= as && as < be
	case bs == be:
		return as <= bs && bs < ae
	}
	return as < be && bs < ae
}
