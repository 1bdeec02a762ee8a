// Package testkit holds helpers shared by the analysis tests.
package testkit

import (
	"context"
	"testing"

	"ic10lsp/internal/catalog"
	"ic10lsp/internal/parser"
	"ic10lsp/internal/source"
	"ic10lsp/internal/syntax"
)

// Parse parses src against the default catalog and fails the test on error
// or on a broken span invariant.
func Parse(t testing.TB, src string) *syntax.Tree {
	t.Helper()
	cat := catalog.Default()
	f := source.NewFile(0, "test.ic10", []byte(src), source.FileVirtual)
	tree, err := parser.Parse(context.Background(), f, parser.Options{
		IsOperation:  cat.IsMnemonic,
		IsVocabulary: cat.IsVocabularyName,
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := CheckSpanInvariants(tree); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	return tree
}
