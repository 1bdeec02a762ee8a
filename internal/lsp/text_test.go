package lsp

import (
	"testing"

	"ic10lsp/internal/source"
)

func TestApplyChangesEncodings(t *testing.T) {
	text := "a😀b\nmove r0 1\n"
	tests := []struct {
		enc  positionEncoding
		rng  lspRange
		want string
	}{
		{encodingUTF16, rng(0, 3, 0, 4), "a😀c\nmove r0 1\n"},
		{encodingUTF8, rng(0, 5, 0, 6), "a😀c\nmove r0 1\n"},
		{encodingUTF16, rng(1, 8, 1, 99), "a😀b\nmove r0 c\n"},
		{encodingUTF16, rng(5, 0, 5, 0), "a😀b\nmove r0 1\nc"},
	}
	for _, tt := range tests {
		r := tt.rng
		got := applyChanges(text, []textDocumentContentChangeEvent{{Range: &r, Text: "c"}}, tt.enc)
		if got != tt.want {
			t.Fatalf("%v %+v: got %q, want %q", tt.enc, tt.rng, got, tt.want)
		}
	}
}

func TestPositionRoundTrip(t *testing.T) {
	f := source.NewFile(0, "p.ic10", []byte("a😀b\nmove\n"), source.FileVirtual)
	tests := []struct {
		enc positionEncoding
		off uint32
		pos position
	}{
		{encodingUTF16, 5, pos(0, 3)},
		{encodingUTF8, 5, pos(0, 5)},
		{encodingUTF16, 7, pos(1, 0)},
		{encodingUTF8, 11, pos(1, 4)},
	}
	for _, tt := range tests {
		if got := positionForOffset(f, tt.off, tt.enc); got != tt.pos {
			t.Fatalf("%v: positionForOffset(%d) = %+v, want %+v", tt.enc, tt.off, got, tt.pos)
		}
		if got := offsetForPosition(f, tt.pos, tt.enc); got != tt.off {
			t.Fatalf("%v: offsetForPosition(%+v) = %d, want %d", tt.enc, tt.pos, got, tt.off)
		}
	}
}
