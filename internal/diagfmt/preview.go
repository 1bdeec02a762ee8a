package diagfmt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
)

// fixEditPreview holds the lines an edit touches, before and after.
type fixEditPreview struct {
	before []string
	after  []string
}

var errNoFileSet = errors.New("preview: nil file set")

// buildFixEditPreview widens edit to whole lines and applies it there.
func buildFixEditPreview(fs *source.FileSet, edit diag.TextEdit) (fixEditPreview, error) {
	if fs == nil {
		return fixEditPreview{}, errNoFileSet
	}
	sp := edit.Span
	file := fs.Get(sp.File)
	switch {
	case file == nil:
		return fixEditPreview{}, fmt.Errorf("preview: unknown file %d", sp.File)
	case sp.End < sp.Start || sp.End > file.Len():
		return fixEditPreview{}, fmt.Errorf("preview: span %s outside %s", sp, file.Path)
	}

	from := file.LineStart(file.PointAt(sp.Start).Row)
	to := max(file.LineEnd(file.PointAt(sp.End).Row), sp.End)
	block := file.Content[from:to]

	var after bytes.Buffer
	after.Grow(len(block) + len(edit.NewText))
	after.Write(block[:sp.Start-from])
	after.WriteString(edit.NewText)
	after.Write(block[sp.End-from:])

	return fixEditPreview{
		before: previewLines(block),
		after:  previewLines(after.Bytes()),
	}, nil
}

// previewLines splits on newlines, dropping the trailing empty line.
func previewLines(b []byte) []string {
	s := strings.TrimSuffix(string(b), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
