// Package analysis runs the full pipeline for one document revision and
// keeps the per-document state of an editing session.
package analysis

import (
	"context"
	"fmt"
	"strconv"

	"ic10lsp/internal/catalog"
	"ic10lsp/internal/check"
	"ic10lsp/internal/config"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/lint"
	"ic10lsp/internal/observ"
	"ic10lsp/internal/parser"
	"ic10lsp/internal/source"
	"ic10lsp/internal/symbols"
	"ic10lsp/internal/syntax"
	"ic10lsp/internal/trace"
)

// Analyzer turns text into a Result. It is stateless and safe for
// concurrent use.
type Analyzer struct {
	Catalog *catalog.Catalog
	Lints   []*lint.Analyzer
}

// New returns an Analyzer running the default lints against cat.
func New(cat *catalog.Catalog) *Analyzer {
	return &Analyzer{Catalog: cat, Lints: lint.Analyzers()}
}

// Result is everything derived from one successfully parsed revision.
type Result struct {
	Tree        *syntax.Tree
	Symbols     *symbols.Table
	Diagnostics []diag.Diagnostic
	Config      config.Configuration
	Timings     observ.Report
}

// File returns the analysed source file.
func (r *Result) File() *source.File {
	return r.Tree.File
}

// ParseOptions wires the catalog word sets into the parser.
func ParseOptions(cat *catalog.Catalog) parser.Options {
	return parser.Options{
		IsOperation:  cat.IsMnemonic,
		IsVocabulary: cat.IsVocabularyName,
	}
}

// Analyze analyses text as the document uri.
func (a *Analyzer) Analyze(ctx context.Context, uri, text string, cfg config.Configuration) (*Result, error) {
	return a.AnalyzeFile(ctx, source.NewFile(0, uri, []byte(text), source.FileVirtual), cfg)
}

// AnalyzeFile runs parse, symbols, syntax checks, type check and lints in
// that order. Only parsing can fail; every later pass reports problems as
// diagnostics.
func (a *Analyzer) AnalyzeFile(ctx context.Context, f *source.File, cfg config.Configuration) (*Result, error) {
	span, ctx := trace.Start(ctx, trace.ScopeDocument, f.Path)
	timer := observ.NewTimer()

	tree, err := a.parse(ctx, timer, f)
	if err != nil {
		span.Fail(err)
		return nil, err
	}

	res := &Result{Tree: tree, Config: cfg}

	var table *symbols.Table
	var symDiags []diag.Diagnostic
	runPass(ctx, timer, "symbols", func() {
		table, symDiags = symbols.Build(tree)
	})
	res.Symbols = table
	res.Diagnostics = append(res.Diagnostics, symDiags...)

	runPass(ctx, timer, "syntax", func() {
		res.Diagnostics = append(res.Diagnostics, syntaxDiagnostics(tree)...)
	})
	runPass(ctx, timer, "check", func() {
		res.Diagnostics = append(res.Diagnostics, check.Check(tree, table, a.Catalog)...)
	})
	runPass(ctx, timer, "lint", func() {
		res.Diagnostics = append(res.Diagnostics, lint.Run(tree, a.Catalog, cfg, a.Lints...)...)
	})

	res.Timings = timer.Report()
	span.Set("diagnostics", strconv.Itoa(len(res.Diagnostics))).End("")
	return res, nil
}

func (a *Analyzer) parse(ctx context.Context, timer *observ.Timer, f *source.File) (*syntax.Tree, error) {
	span, ctx := trace.Start(ctx, trace.ScopePass, "parse")
	stop := timer.Start("parse")
	tree, err := parser.Parse(ctx, f, ParseOptions(a.Catalog))
	stop("")
	if err != nil {
		span.Fail(err)
		return nil, fmt.Errorf("analyze %s: %w", f.Path, err)
	}
	span.End("")
	return tree, nil
}

func runPass(ctx context.Context, timer *observ.Timer, name string, fn func()) {
	span, _ := trace.Start(ctx, trace.ScopePass, name)
	stop := timer.Start(name)
	fn()
	stop("")
	span.End("")
}

// syntaxDiagnostics reports every ERROR node, then every invalid
// instruction.
func syntaxDiagnostics(tree *syntax.Tree) []diag.Diagnostic {
	var out diag.SliceReporter
	for _, n := range tree.Root.FindAll(syntax.KindError) {
		diag.ReportError(&out, diag.SynSyntaxError, n.Span, "Syntax error").Emit()
	}
	for _, n := range tree.Root.FindAll(syntax.KindInvalidInstruction) {
		diag.ReportError(&out, diag.SynInvalidInstruction, n.Span, "Invalid instruction").Emit()
	}
	return out.Items
}
