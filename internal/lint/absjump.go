package lint

import (
	"ic10lsp/internal/diag"
	"ic10lsp/internal/syntax"
)

var branches = map[string]bool{
	"bdns": true, "bdnsal": true, "bdse": true, "bdseal": true,
	"bap": true, "bapz": true, "bapzal": true, "bapal": true,
	"beq": true, "beqal": true, "beqz": true, "beqzal": true,
	"bge": true, "bgeal": true, "bgez": true, "bgezal": true,
	"bgt": true, "bgtal": true, "bgtz": true, "bgtzal": true,
	"ble": true, "bleal": true, "blez": true, "blezal": true,
	"blt": true, "bltal": true, "bltz": true, "bltzal": true,
	"bna": true, "bnaal": true, "bnaz": true, "bnazal": true,
	"bne": true, "bneal": true, "bnez": true, "bnezal": true,
	"bdnvl": true, "bdnvs": true, "bnan": true,
	"j": true, "jal": true,
}

var relative = map[string]string{
	"bdns": "brdns", "bdse": "brdse",
	"bap": "brap", "bapz": "brapz",
	"beq": "breq", "beqz": "breqz",
	"bge": "brge", "bgez": "brgez",
	"bgt": "brgt", "bgtz": "brgtz",
	"ble": "brle", "blez": "brlez",
	"blt": "brlt", "bltz": "brltz",
	"bna": "brna", "bnaz": "brnaz",
	"bne": "brne", "bnez": "brnez",
	"bnan": "brnan",
	"j":    "jr",
}

// RelativeJump returns the relative-offset form of a branch mnemonic.
func RelativeJump(mnemonic string) (string, bool) {
	m, ok := relative[mnemonic]
	return m, ok
}

// AbsoluteJump flags branches to a literal line number, which break as soon
// as a line is inserted above the target.
var AbsoluteJump = &Analyzer{
	Name: "absjump",
	Doc:  "Warn on jumps and branches whose target is a literal line number.",
	Run: func(pass *Pass) {
		for _, instr := range pass.Tree.Instructions() {
			op := instr.ChildByField(syntax.FieldOperation)
			if op == nil {
				continue
			}
			mnemonic := pass.Tree.Text(op)
			if !branches[mnemonic] {
				continue
			}
			target := lastOperandValue(instr)
			if target == nil || target.Kind != syntax.KindNumber {
				continue
			}
			b := diag.ReportWarning(pass.Reporter(), diag.LintAbsoluteJump, instr.Span, "Absolute jump to line number")
			if rel, ok := relative[mnemonic]; ok {
				b.WithData(rel).WithFix(diag.Replace("Replace with "+rel, op.Span, mnemonic, rel))
			}
			b.Emit()
		}
	},
}
