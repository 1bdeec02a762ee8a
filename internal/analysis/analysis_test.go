package analysis

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"ic10lsp/internal/catalog"
	"ic10lsp/internal/config"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/parser"
)

const program = "define a 1\ndefine a 2\nfoo r0\nmove r0 :\nj 5\n"

func codes(ds []diag.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Code.ID())
	}
	return out
}

func TestAnalyzePassOrder(t *testing.T) {
	a := New(catalog.Default())
	res, err := a.Analyze(context.Background(), "file:///prog.ic10", program, config.Default())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := []string{"SYM2001", "SYN1001", "SYN1002", "TYP3005", "L001"}
	if got := codes(res.Diagnostics); !reflect.DeepEqual(got, want) {
		t.Fatalf("codes = %v, want %v", got, want)
	}
	if b, ok := res.Symbols.Lookup("a"); !ok || b.Value != "1" {
		t.Fatalf("first define must win")
	}
	if len(res.Timings.Phases) != 5 || res.Timings.Phases[0].Name != "parse" {
		t.Fatalf("unexpected timings %+v", res.Timings)
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	a := New(catalog.Default())
	first, err := a.Analyze(context.Background(), "x", program, config.Default())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	second, err := a.Analyze(context.Background(), "x", program, config.Default())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !reflect.DeepEqual(first.Diagnostics, second.Diagnostics) {
		t.Fatalf("diagnostics differ between runs")
	}
}

func TestAnalyzeAppendsNewline(t *testing.T) {
	a := New(catalog.Default())
	res, err := a.Analyze(context.Background(), "x", "yield", config.Default())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if string(res.File().Content) != "yield\n" || len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected result %q %+v", res.File().Content, res.Diagnostics)
	}
}

func TestStoreKeepsLastGoodResult(t *testing.T) {
	ctx := context.Background()
	s := NewStore(New(catalog.Default()), config.Default())

	doc, err := s.Open(ctx, "u", 1, "j 5\n")
	if err != nil || len(doc.Result.Diagnostics) != 1 {
		t.Fatalf("Open: %v %+v", err, doc)
	}
	good := doc.Result

	huge := strings.Repeat("yield\n", parser.MaxSourceSize/6+1)
	doc, err = s.Change(ctx, "u", 2, huge)
	if !errors.Is(err, parser.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if doc.Result != good || doc.Version != 2 || doc.Text != huge {
		t.Fatalf("failed parse must keep the last good result and track the text")
	}

	if stale, _ := s.Change(ctx, "u", 1, "yield\n"); stale.Version != 2 {
		t.Fatalf("older revision must be ignored")
	}

	s.Close("u")
	if _, ok := s.Get("u"); ok {
		t.Fatalf("document still present after Close")
	}
}

func TestReanalyzeAllUsesNewConfig(t *testing.T) {
	ctx := context.Background()
	s := NewStore(New(catalog.Default()), config.Default())
	for _, uri := range []string{"b", "a"} {
		if _, err := s.Open(ctx, uri, 1, "move r0 12345\n"); err != nil {
			t.Fatalf("Open %s: %v", uri, err)
		}
	}
	cfg := config.Default()
	cfg.MaxColumns = 8
	s.SetConfig(cfg)

	docs, err := s.ReanalyzeAll(ctx)
	if err != nil {
		t.Fatalf("ReanalyzeAll: %v", err)
	}
	if len(docs) != 2 || docs[0].URI != "a" || docs[1].URI != "b" {
		t.Fatalf("unexpected documents %+v", docs)
	}
	for _, doc := range docs {
		if got := codes(doc.Result.Diagnostics); !reflect.DeepEqual(got, []string{"LEN4001"}) {
			t.Fatalf("%s: codes = %v", doc.URI, got)
		}
		if cur, _ := s.Get(doc.URI); cur != doc {
			t.Fatalf("store not updated for %s", doc.URI)
		}
	}
	if got := s.URIs(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("URIs = %v", got)
	}
}
