// Package catalog holds the static IC10 tables: instruction signatures with
// their documentation, the four closed vocabularies and the known prefab
// names. The tables are embedded YAML, decoded once and never mutated.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"ic10lsp/internal/types"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Instruction is one catalog entry.
type Instruction struct {
	Name       string
	Signature  types.Signature
	Doc        string
	Deprecated bool
}

// Catalog is the immutable lookup structure shared by every document.
type Catalog struct {
	instructions map[string]*Instruction
	mnemonics    []string
	vocabularies map[types.DataType]*Vocabulary
	candidates   map[string]types.Union
	prefabs      map[int32]string
	prefabNames  []string
}

type instructionsFile struct {
	Deprecated []string            `yaml:"deprecated"`
	Signatures map[string][]string `yaml:"signatures"`
}

type prefabsFile struct {
	Prefabs []string `yaml:"prefabs"`
}

var vocabularyFiles = []struct {
	typ  types.DataType
	file string
}{
	{types.LogicType, "logic_types.yaml"},
	{types.SlotLogicType, "slot_logic_types.yaml"},
	{types.BatchMode, "batch_modes.yaml"},
	{types.ReagentMode, "reagent_modes.yaml"},
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		panic(fmt.Errorf("catalog: embedded data: %w", err))
	}
	c, err := Load(sub)
	if err != nil {
		panic(fmt.Errorf("catalog: embedded data is inconsistent: %w", err))
	}
	return c
})

// Default returns the catalog built from the embedded tables. It panics if
// the tables violate their closure invariants, which only a broken build
// can cause.
func Default() *Catalog {
	return defaultCatalog()
}

// Load decodes and validates the tables found in fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	var insFile instructionsFile
	if err := decodeYAML(fsys, "instructions.yaml", &insFile); err != nil {
		return nil, err
	}
	var docs map[string]string
	if err := decodeYAML(fsys, "instruction_docs.yaml", &docs); err != nil {
		return nil, err
	}
	if err := checkClosure("instruction", keys(insFile.Signatures), keys(docs)); err != nil {
		return nil, err
	}

	c := &Catalog{
		instructions: make(map[string]*Instruction, len(insFile.Signatures)),
		vocabularies: make(map[types.DataType]*Vocabulary, len(vocabularyFiles)),
		candidates:   make(map[string]types.Union),
		prefabs:      make(map[int32]string),
	}
	for name, raw := range insFile.Signatures {
		sig := make(types.Signature, 0, len(raw))
		for _, p := range raw {
			param, err := parseParam(p)
			if err != nil {
				return nil, fmt.Errorf("instruction %q: %w", name, err)
			}
			sig = append(sig, param)
		}
		c.instructions[name] = &Instruction{Name: name, Signature: sig, Doc: docs[name]}
	}
	for _, name := range insFile.Deprecated {
		ins, ok := c.instructions[name]
		if !ok {
			return nil, fmt.Errorf("deprecated instruction %q has no signature", name)
		}
		ins.Deprecated = true
	}
	c.mnemonics = keys(insFile.Signatures)

	for _, vf := range vocabularyFiles {
		v, err := loadVocabulary(fsys, vf.file, vf.typ)
		if err != nil {
			return nil, err
		}
		c.vocabularies[vf.typ] = v
		for _, name := range v.names {
			c.candidates[name] = c.candidates[name].With(vf.typ)
		}
	}

	var pf prefabsFile
	if err := decodeYAML(fsys, "prefabs.yaml", &pf); err != nil {
		return nil, err
	}
	for _, name := range pf.Prefabs {
		c.prefabs[Hash(name)] = name
	}
	c.prefabNames = slices.Clone(pf.Prefabs)
	sort.Strings(c.prefabNames)
	return c, nil
}

// Instruction returns the full entry for mnemonic.
func (c *Catalog) Instruction(mnemonic string) (*Instruction, bool) {
	ins, ok := c.instructions[mnemonic]
	return ins, ok
}

// SignatureOf returns the parameter list bound to mnemonic.
func (c *Catalog) SignatureOf(mnemonic string) (types.Signature, bool) {
	ins, ok := c.instructions[mnemonic]
	if !ok {
		return nil, false
	}
	return ins.Signature, true
}

// DocOf returns the documentation of mnemonic.
func (c *Catalog) DocOf(mnemonic string) (string, bool) {
	ins, ok := c.instructions[mnemonic]
	if !ok {
		return "", false
	}
	return ins.Doc, true
}

// IsMnemonic reports whether word names a catalog instruction.
func (c *Catalog) IsMnemonic(word string) bool {
	_, ok := c.instructions[word]
	return ok
}

// Mnemonics returns every mnemonic in lexical order.
func (c *Catalog) Mnemonics() []string {
	return c.mnemonics
}

// Vocabulary returns the table for t, or nil when t is not a vocabulary type.
func (c *Catalog) Vocabulary(t types.DataType) *Vocabulary {
	return c.vocabularies[t]
}

// Candidates returns the union of every vocabulary containing name. The
// result is empty for unknown names.
func (c *Catalog) Candidates(name string) types.Union {
	return c.candidates[name]
}

// IsVocabularyName reports whether name belongs to any vocabulary.
func (c *Catalog) IsVocabularyName(name string) bool {
	return !c.candidates[name].Empty()
}

// PrefabName resolves a prefab hash back to its name.
func (c *Catalog) PrefabName(hash int32) (string, bool) {
	name, ok := c.prefabs[hash]
	return name, ok
}

// PrefabNames returns the known prefab names in lexical order.
func (c *Catalog) PrefabNames() []string {
	return c.prefabNames
}

func parseParam(s string) (types.Param, error) {
	kind, tag, _ := strings.Cut(s, ":")
	var p types.Param
	switch kind {
	case "register":
		p = types.P(types.Register)
	case "device":
		p = types.P(types.Device)
	case "number":
		p = types.P(types.Number)
	case "value":
		p = types.P(types.Register, types.Number)
	case "target":
		p = types.P(types.Register, types.Device)
	case "logicType":
		p = types.P(types.LogicType)
	case "slotLogicType":
		p = types.P(types.SlotLogicType)
	case "batchMode":
		p = types.P(types.BatchMode, types.Register, types.Number)
	case "reagentMode":
		p = types.P(types.ReagentMode, types.Register, types.Number)
	case "name":
		p = types.P(types.Name)
	default:
		return types.Param{}, fmt.Errorf("unknown parameter kind %q", kind)
	}
	return p.Tagged(tag), nil
}

func decodeYAML(fsys fs.FS, name string, out any) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// checkClosure verifies two key sets are equal and names the first
// offender in each direction.
func checkClosure(what string, names, docs []string) error {
	var missingDoc, orphanDoc []string
	for _, n := range names {
		if _, found := slices.BinarySearch(docs, n); !found {
			missingDoc = append(missingDoc, n)
		}
	}
	for _, d := range docs {
		if _, found := slices.BinarySearch(names, d); !found {
			orphanDoc = append(orphanDoc, d)
		}
	}
	switch {
	case len(missingDoc) > 0:
		return fmt.Errorf("%s %q has no documentation", what, missingDoc[0])
	case len(orphanDoc) > 0:
		return fmt.Errorf("documentation for unknown %s %q", what, orphanDoc[0])
	}
	return nil
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
