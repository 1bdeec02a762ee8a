package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	want := Configuration{MaxLines: 128, MaxColumns: 90, WarnOverlineComment: true}
	if got := Default(); got != want {
		t.Fatalf("Default() = %+v", got)
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("default must validate: %v", err)
	}
}

func TestLayering(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "max_columns = 52\n\n[warnings]\novercolumn_comment = true\n")

	cfg, err := LoadFile(path, Default())
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	want := Configuration{MaxLines: 128, MaxColumns: 52, WarnOverlineComment: true, WarnOvercolumnComment: true}
	if cfg != want {
		t.Fatalf("file layer = %+v", cfg)
	}

	cfg, err = ApplySettings(json.RawMessage(`{"max_lines": 20, "warnings": {"overline_comment": false}, "other": 1}`), cfg)
	if err != nil {
		t.Fatalf("ApplySettings: %v", err)
	}
	want = Configuration{MaxLines: 20, MaxColumns: 52, WarnOverlineComment: false, WarnOvercolumnComment: true}
	if cfg != want {
		t.Fatalf("settings layer = %+v", cfg)
	}

	if same, err := ApplySettings(nil, cfg); err != nil || same != cfg {
		t.Fatalf("empty settings must keep the configuration")
	}
}

func TestRejectsInvalidValues(t *testing.T) {
	base := Default()
	got, err := ApplySettings(json.RawMessage(`{"max_columns": 0}`), base)
	if !errors.Is(err, ErrMaxColumns) || got != base {
		t.Fatalf("expected ErrMaxColumns and unchanged config, got %v %+v", err, got)
	}
	if _, err := ApplySettings(json.RawMessage(`{"max_lines": "many"}`), base); err == nil {
		t.Fatalf("expected a decode error")
	}

	dir := t.TempDir()
	if _, err := LoadFile(writeFile(t, dir, "max_lines = -1\n"), base); !errors.Is(err, ErrMaxLines) {
		t.Fatalf("expected ErrMaxLines, got %v", err)
	}
	if _, err := LoadFile(writeFile(t, dir, "max_line = 3\n"), base); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, "max_lines = 64\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	got, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find: %v %v", ok, err)
	}
	wantAbs, _ := filepath.Abs(want)
	if got != wantAbs {
		t.Fatalf("Find = %s, want %s", got, wantAbs)
	}
	cfg, err := Resolve("", nested)
	if err != nil || cfg.MaxLines != 64 {
		t.Fatalf("Resolve = %+v, %v", cfg, err)
	}
}
