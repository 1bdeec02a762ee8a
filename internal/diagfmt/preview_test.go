package diagfmt

import (
	"slices"
	"testing"

	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
)

func TestFixEditPreview(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("p.ic10", []byte("start:\nj start\nyield\n"))

	// "j" at offset 7 becomes "jr" and only its own line is shown.
	p, err := buildFixEditPreview(fs, diag.TextEdit{Span: source.Span{File: id, Start: 7, End: 8}, NewText: "jr"})
	if err != nil {
		t.Fatalf("buildFixEditPreview: %v", err)
	}
	if !slices.Equal(p.before, []string{"j start"}) || !slices.Equal(p.after, []string{"jr start"}) {
		t.Fatalf("preview = %q -> %q", p.before, p.after)
	}

	// Deleting a whole line spans two rows of context.
	p, err = buildFixEditPreview(fs, diag.TextEdit{Span: source.Span{File: id, Start: 7, End: 15}})
	if err != nil {
		t.Fatalf("buildFixEditPreview: %v", err)
	}
	if !slices.Equal(p.before, []string{"j start", "yield"}) || !slices.Equal(p.after, []string{"yield"}) {
		t.Fatalf("preview = %q -> %q", p.before, p.after)
	}

	for _, bad := range []diag.TextEdit{
		{Span: source.Span{File: id + 1}},
		{Span: source.Span{File: id, Start: 5, End: 2}},
		{Span: source.Span{File: id, Start: 0, End: 999}},
	} {
		if _, err := buildFixEditPreview(fs, bad); err == nil {
			t.Fatalf("expected error for %v", bad.Span)
		}
	}
	if _, err := buildFixEditPreview(nil, diag.TextEdit{}); err == nil {
		t.Fatalf("expected error for nil file set")
	}
}
