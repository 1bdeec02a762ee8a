package token_test

import (
	"testing"

	"ic10lsp/internal/source"
	"ic10lsp/internal/token"
)

func TestAdjacent(t *testing.T) {
	a := token.Token{Kind: token.Word, Span: source.Span{Start: 0, End: 2}, Text: "d0"}
	b := token.Token{Kind: token.Colon, Span: source.Span{Start: 2, End: 3}, Text: ":"}
	c := token.Token{Kind: token.Number, Span: source.Span{Start: 4, End: 5}, Text: "1"}
	if !a.Adjacent(b) {
		t.Fatalf("expected d0 and ':' to be adjacent")
	}
	if b.Adjacent(c) {
		t.Fatalf("':' and '1' are separated by a space")
	}
}

func TestKindString(t *testing.T) {
	kinds := []token.Kind{token.Invalid, token.EOF, token.Newline, token.Word, token.Number,
		token.String, token.Comment, token.Colon, token.LParen, token.RParen}
	seen := make(map[string]bool)
	for _, k := range kinds {
		s := k.String()
		if seen[s] {
			t.Fatalf("duplicate kind name %q", s)
		}
		seen[s] = true
	}
	if got := token.Kind(200).String(); got != "Kind(200)" {
		t.Fatalf("unexpected fallback %q", got)
	}
}
