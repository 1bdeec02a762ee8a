// Package config holds the analysis limits and lint toggles.
//
// Values are layered: Default, then an ic10lsp.toml file, then settings
// pushed by the editor through workspace/didChangeConfiguration. Each layer
// only overrides the keys it sets.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the project configuration file looked up by Find.
const FileName = "ic10lsp.toml"

// Configuration mirrors the in-game editor limits.
type Configuration struct {
	MaxLines              int
	MaxColumns            int
	WarnOverlineComment   bool
	WarnOvercolumnComment bool
}

// Default returns the limits of the stock IC10 chip.
func Default() Configuration {
	return Configuration{
		MaxLines:              128,
		MaxColumns:            90,
		WarnOverlineComment:   true,
		WarnOvercolumnComment: false,
	}
}

var (
	ErrMaxLines   = errors.New("max_lines must be positive")
	ErrMaxColumns = errors.New("max_columns must be positive")
)

// Validate rejects limits no program could satisfy.
func (c Configuration) Validate() error {
	if c.MaxLines <= 0 {
		return fmt.Errorf("%w, got %d", ErrMaxLines, c.MaxLines)
	}
	if c.MaxColumns <= 0 {
		return fmt.Errorf("%w, got %d", ErrMaxColumns, c.MaxColumns)
	}
	return nil
}

// overrides is the shape shared by the TOML file and the LSP settings
// object. Missing keys stay nil and keep the previous value.
type overrides struct {
	MaxLines   *int `toml:"max_lines" json:"max_lines"`
	MaxColumns *int `toml:"max_columns" json:"max_columns"`
	Warnings   struct {
		OverlineComment   *bool `toml:"overline_comment" json:"overline_comment"`
		OvercolumnComment *bool `toml:"overcolumn_comment" json:"overcolumn_comment"`
	} `toml:"warnings" json:"warnings"`
}

func (o overrides) apply(c Configuration) Configuration {
	if o.MaxLines != nil {
		c.MaxLines = *o.MaxLines
	}
	if o.MaxColumns != nil {
		c.MaxColumns = *o.MaxColumns
	}
	if o.Warnings.OverlineComment != nil {
		c.WarnOverlineComment = *o.Warnings.OverlineComment
	}
	if o.Warnings.OvercolumnComment != nil {
		c.WarnOvercolumnComment = *o.Warnings.OvercolumnComment
	}
	return c
}

// LoadFile layers the TOML file at path over base.
func LoadFile(path string, base Configuration) (Configuration, error) {
	var o overrides
	meta, err := toml.DecodeFile(path, &o)
	if err != nil {
		return base, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return base, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	cfg := o.apply(base)
	if err := cfg.Validate(); err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ApplySettings layers an LSP settings object over base. Unknown keys are
// ignored since editors send their whole settings section.
func ApplySettings(raw json.RawMessage, base Configuration) (Configuration, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return base, nil
	}
	var o overrides
	if err := json.Unmarshal(raw, &o); err != nil {
		return base, fmt.Errorf("settings: %w", err)
	}
	cfg := o.apply(base)
	if err := cfg.Validate(); err != nil {
		return base, fmt.Errorf("settings: %w", err)
	}
	return cfg, nil
}

// Find walks up from startDir to locate ic10lsp.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Resolve returns Default layered with the file named by explicit, or with
// the nearest ic10lsp.toml above startDir when explicit is empty.
func Resolve(explicit, startDir string) (Configuration, error) {
	cfg := Default()
	path := explicit
	if path == "" {
		found, ok, err := Find(startDir)
		if err != nil || !ok {
			return cfg, err
		}
		path = found
	}
	return LoadFile(path, cfg)
}
