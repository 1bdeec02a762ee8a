// Package lint runs the independent style passes over a parsed document.
//
// Every Analyzer is stateless: it reads the tree, the catalog and the
// configuration of one Pass and reports diagnostics. Passes never see each
// other's output, so their order only affects the order of the result.
package lint

import (
	"ic10lsp/internal/catalog"
	"ic10lsp/internal/config"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/syntax"
)

// Analyzer is one named lint.
type Analyzer struct {
	Name string
	Doc  string
	Run  func(*Pass)
}

// Pass is the input of a single analyzer run.
type Pass struct {
	Tree    *syntax.Tree
	Catalog *catalog.Catalog
	Config  config.Configuration

	reporter diag.Reporter
}

// Report emits d.
func (p *Pass) Report(d diag.Diagnostic) {
	p.reporter.Report(d)
}

// Reporter exposes the sink for ReportBuilder chains.
func (p *Pass) Reporter() diag.Reporter {
	return p.reporter
}

// Analyzers returns the default lints in reporting order.
func Analyzers() []*Analyzer {
	return []*Analyzer{Overlength, AbsoluteJump, BatchModeLiteral, ReagentModeLiteral}
}

// Run applies analyzers in order and concatenates their findings.
func Run(tree *syntax.Tree, cat *catalog.Catalog, cfg config.Configuration, analyzers ...*Analyzer) []diag.Diagnostic {
	var out diag.SliceReporter
	for _, a := range analyzers {
		a.Run(&Pass{Tree: tree, Catalog: cat, Config: cfg, reporter: &out})
	}
	return out.Items
}

// Lookup finds a default analyzer by name.
func Lookup(name string) (*Analyzer, bool) {
	for _, a := range Analyzers() {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// lastOperandValue returns the value node of the final operand of instr.
func lastOperandValue(instr *syntax.Node) *syntax.Node {
	ops := syntax.Operands(instr)
	if len(ops) == 0 {
		return nil
	}
	return syntax.Value(ops[len(ops)-1])
}
