package catalog

import (
	"strings"
	"testing"
	"testing/fstest"

	"ic10lsp/internal/types"
)

func TestDefaultCatalogClosure(t *testing.T) {
	c := Default()
	if len(c.Mnemonics()) == 0 {
		t.Fatalf("expected instructions")
	}
	for _, m := range c.Mnemonics() {
		if _, ok := c.SignatureOf(m); !ok {
			t.Fatalf("mnemonic %q has no signature", m)
		}
		doc, ok := c.DocOf(m)
		if !ok || doc == "" {
			t.Fatalf("mnemonic %q has no documentation", m)
		}
	}
	for _, vf := range vocabularyFiles {
		v := c.Vocabulary(vf.typ)
		if v == nil {
			t.Fatalf("missing vocabulary %v", vf.typ)
		}
		for _, name := range v.Names() {
			if doc, ok := v.DocOf(name); !ok || doc == "" {
				t.Fatalf("%v name %q has no documentation", vf.typ, name)
			}
		}
	}
}

func TestSignatures(t *testing.T) {
	c := Default()
	tests := []struct {
		mnemonic string
		want     string
	}{
		{"l", " r? d? type"},
		{"s", " d? type (num|r?)"},
		{"add", " r? (num|r?) (num|r?)"},
		{"yield", ""},
		{"lb", " r? (num|r?) type (num|r?|batchMode)"},
		{"lr", " r? d? (num|r?|reagentMode) (num|r?)"},
		{"define", " name num"},
		{"alias", " name (r?|d?)"},
	}
	for _, tt := range tests {
		sig, ok := c.SignatureOf(tt.mnemonic)
		if !ok {
			t.Fatalf("missing %q", tt.mnemonic)
		}
		if got := sig.String(); got != tt.want {
			t.Fatalf("%s: got %q, want %q", tt.mnemonic, got, tt.want)
		}
	}
	if _, ok := c.SignatureOf("nope"); ok {
		t.Fatalf("unexpected signature for unknown mnemonic")
	}
	ins, _ := c.Instruction("label")
	if !ins.Deprecated {
		t.Fatalf("label must be deprecated")
	}
	l, _ := c.Instruction("l")
	if l.Signature[1].Tag != "" || l.Signature[0].Tag != "" {
		t.Fatalf("l params should be untagged, got %+v", l.Signature)
	}
	lb, _ := c.Instruction("lb")
	if lb.Signature[1].Tag != "deviceHash" {
		t.Fatalf("lb second param tag = %q", lb.Signature[1].Tag)
	}
}

func TestVocabularyCodes(t *testing.T) {
	c := Default()
	batch := c.Vocabulary(types.BatchMode)
	if name, ok := batch.NameForCode(1); !ok || name != "Sum" {
		t.Fatalf("batch code 1 = %q, %v", name, ok)
	}
	if _, ok := batch.NameForCode(9); ok {
		t.Fatalf("unexpected batch mode for 9")
	}
	reagent := c.Vocabulary(types.ReagentMode)
	if name, _ := reagent.NameForCode(2); name != "Recipe" {
		t.Fatalf("reagent code 2 = %q", name)
	}
	lt := c.Vocabulary(types.LogicType)
	if e, ok := lt.Entry("Setting"); !ok || e.Code != 12 || !e.HasCode {
		t.Fatalf("Setting entry = %+v", e)
	}
	if c.Vocabulary(types.Register) != nil {
		t.Fatalf("register is not a vocabulary")
	}
}

func TestCandidatesArePolymorphic(t *testing.T) {
	c := Default()
	tests := []struct {
		name string
		want types.Union
	}{
		{"Maximum", types.UnionOf(types.LogicType, types.BatchMode)},
		{"Quantity", types.UnionOf(types.LogicType, types.SlotLogicType)},
		{"Occupied", types.UnionOf(types.SlotLogicType)},
		{"Sum", types.UnionOf(types.BatchMode)},
		{"Contents", types.UnionOf(types.ReagentMode)},
		{"Bogus", 0},
	}
	for _, tt := range tests {
		if got := c.Candidates(tt.name); got != tt.want {
			t.Fatalf("Candidates(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if !c.IsVocabularyName("Temperature") || c.IsVocabularyName("r0") {
		t.Fatalf("IsVocabularyName mismatch")
	}
}

func TestHashAndPrefabs(t *testing.T) {
	if got := Hash("StructureGasSensor"); got != -1252983604 {
		t.Fatalf("Hash = %d", got)
	}
	c := Default()
	if name, ok := c.PrefabName(-1301215609); !ok || name != "ItemIronIngot" {
		t.Fatalf("PrefabName = %q, %v", name, ok)
	}
	if _, ok := c.PrefabName(1); ok {
		t.Fatalf("unexpected prefab for 1")
	}
}

func validFS() fstest.MapFS {
	vocab := "entries:\n  - {name: A, code: 0}\ndocs:\n  A: doc\n"
	return fstest.MapFS{
		"instructions.yaml":     {Data: []byte("signatures:\n  yield: []\n")},
		"instruction_docs.yaml": {Data: []byte("yield: pause\n")},
		"logic_types.yaml":      {Data: []byte(vocab)},
		"slot_logic_types.yaml": {Data: []byte(vocab)},
		"batch_modes.yaml":      {Data: []byte(vocab)},
		"reagent_modes.yaml":    {Data: []byte(vocab)},
		"prefabs.yaml":          {Data: []byte("prefabs: []\n")},
	}
}

func TestLoadRejectsInconsistentTables(t *testing.T) {
	if _, err := Load(validFS()); err != nil {
		t.Fatalf("valid tables rejected: %v", err)
	}

	tests := []struct {
		name string
		file string
		data string
		want string
	}{
		{"missing doc", "instruction_docs.yaml", "{}\n", `"yield" has no documentation`},
		{"orphan doc", "instruction_docs.yaml", "yield: a\nmove: b\n", `unknown instruction "move"`},
		{"bad kind", "instructions.yaml", "signatures:\n  yield: [thing]\n", `unknown parameter kind "thing"`},
		{"vocab doc", "batch_modes.yaml", "entries:\n  - {name: A}\ndocs: {}\n", `has no documentation`},
		{"dup code", "batch_modes.yaml", "entries:\n  - {name: A, code: 1}\n  - {name: B, code: 1}\ndocs: {A: a, B: b}\n", "code 1 used by"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := validFS()
			fsys[tt.file] = &fstest.MapFile{Data: []byte(tt.data)}
			_, err := Load(fsys)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	fsys := validFS()
	delete(fsys, "prefabs.yaml")
	if _, err := Load(fsys); err == nil {
		t.Fatalf("expected error for missing prefabs.yaml")
	}
}

func TestEvaluateLiterals(t *testing.T) {
	tests := []struct {
		text string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{"-3", -3, true},
		{"1.5", 1.5, true},
		{"$FF", 255, true},
		{"%101", 5, true},
		{`HASH("StructureGasSensor")`, -1252983604, true},
		{`STR("AB")`, 0x4142, true},
		{`STR("toolongx")`, 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := Evaluate(tt.text)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Fatalf("Evaluate(%q) = %v, %v; want %v, %v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
	if _, ok := IntegerLiteral("1.0"); ok {
		t.Fatalf("1.0 must not be an integer literal")
	}
	if fn, arg, ok := CallArgument(`HASH("x y")`); !ok || fn != "HASH" || arg != "x y" {
		t.Fatalf("CallArgument = %q %q %v", fn, arg, ok)
	}
}
