package catalog

import (
	"fmt"
	"io/fs"
	"slices"
	"sort"

	"ic10lsp/internal/types"
)

// Entry is one vocabulary name.
type Entry struct {
	Name    string
	Code    int
	HasCode bool
	Doc     string
}

// Vocabulary is a closed name table with optional numeric codes.
type Vocabulary struct {
	Type    types.DataType
	entries map[string]*Entry
	byCode  map[int]string
	names   []string
}

type vocabularyFile struct {
	Entries []struct {
		Name string `yaml:"name"`
		Code *int   `yaml:"code"`
	} `yaml:"entries"`
	Docs map[string]string `yaml:"docs"`
}

func loadVocabulary(fsys fs.FS, file string, t types.DataType) (*Vocabulary, error) {
	var vf vocabularyFile
	if err := decodeYAML(fsys, file, &vf); err != nil {
		return nil, err
	}
	v := &Vocabulary{
		Type:    t,
		entries: make(map[string]*Entry, len(vf.Entries)),
		byCode:  make(map[int]string, len(vf.Entries)),
		names:   make([]string, 0, len(vf.Entries)),
	}
	for _, e := range vf.Entries {
		if _, dup := v.entries[e.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate name %q", file, e.Name)
		}
		entry := &Entry{Name: e.Name}
		if e.Code != nil {
			if prev, dup := v.byCode[*e.Code]; dup {
				return nil, fmt.Errorf("%s: code %d used by %q and %q", file, *e.Code, prev, e.Name)
			}
			entry.Code, entry.HasCode = *e.Code, true
			v.byCode[*e.Code] = e.Name
		}
		v.entries[e.Name] = entry
		v.names = append(v.names, e.Name)
	}
	sort.Strings(v.names)
	if err := checkClosure(t.String()+" name", v.names, keys(vf.Docs)); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	for name, doc := range vf.Docs {
		v.entries[name].Doc = doc
	}
	return v, nil
}

// Has reports whether name is in the table.
func (v *Vocabulary) Has(name string) bool {
	_, ok := v.entries[name]
	return ok
}

// Entry returns the record for name.
func (v *Vocabulary) Entry(name string) (*Entry, bool) {
	e, ok := v.entries[name]
	return e, ok
}

// DocOf returns the documentation of name.
func (v *Vocabulary) DocOf(name string) (string, bool) {
	e, ok := v.entries[name]
	if !ok {
		return "", false
	}
	return e.Doc, true
}

// NameForCode is the reverse numeric lookup.
func (v *Vocabulary) NameForCode(code int) (string, bool) {
	name, ok := v.byCode[code]
	return name, ok
}

// Names returns every name in lexical order.
func (v *Vocabulary) Names() []string {
	return slices.Clone(v.names)
}
