package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ic10lsp/internal/config"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return dir
}

func TestListFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.ic10":         "yield\n",
		"a.ic10":         "yield\n",
		"notes.txt":      "x",
		"sub/c.ic10":     "yield\n",
		".hidden/d.ic10": "yield\n",
	})
	got, err := ListFiles([]string{dir, filepath.Join(dir, "a.ic10"), filepath.Join(dir, "notes.txt")})
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	want := []string{"a.ic10", "b.ic10", "notes.txt", "sub/c.ic10"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i, w := range want {
		if got[i] != filepath.Join(dir, w) {
			t.Fatalf("file %d = %s, want %s", i, got[i], w)
		}
	}
	if _, err := ListFiles([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Fatalf("expected an error for a missing path")
	}
}

func TestCheckFilesKeepsOrderAndCountsErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"ok.ic10":   "move r0 1\n",
		"bad.ic10":  "foo r0\n",
		"warn.ic10": "j 5\n",
	})
	paths := []string{
		filepath.Join(dir, "ok.ic10"),
		filepath.Join(dir, "bad.ic10"),
		filepath.Join(dir, "missing.ic10"),
		filepath.Join(dir, "warn.ic10"),
	}

	events := make(chan Event, 64)
	res, err := CheckFiles(context.Background(), paths, Options{Jobs: 2, Config: config.Default(), Events: events})
	if err != nil {
		t.Fatalf("CheckFiles: %v", err)
	}
	close(events)

	if len(res.Files) != 4 {
		t.Fatalf("expected 4 results, got %d", len(res.Files))
	}
	for i, p := range paths {
		if res.Files[i].Path != p {
			t.Fatalf("result %d is %s", i, res.Files[i].Path)
		}
	}
	if len(res.Files[0].Diagnostics) != 0 {
		t.Fatalf("ok.ic10: unexpected %v", res.Files[0].Diagnostics)
	}
	if d := res.Files[1].Diagnostics; len(d) != 1 || d[0].Code != diag.SynInvalidInstruction {
		t.Fatalf("bad.ic10: %v", d)
	}
	if res.Files[2].Err == nil {
		t.Fatalf("missing.ic10 must fail to load")
	}
	if d := res.Files[3].Diagnostics; len(d) != 1 || d[0].Code != diag.LintAbsoluteJump {
		t.Fatalf("warn.ic10: %v", d)
	}
	if n := res.ErrorCount(); n != 2 {
		t.Fatalf("ErrorCount = %d, want 2", n)
	}
	if len(res.Timings.Phases) == 0 {
		t.Fatalf("expected merged timings")
	}

	final := make(map[string]Status)
	for ev := range events {
		final[ev.File] = ev.Status
	}
	if final[paths[0]] != StatusDone || final[paths[2]] != StatusError {
		t.Fatalf("unexpected final statuses %v", final)
	}
}

func TestCheckFilesCache(t *testing.T) {
	dir := writeFiles(t, map[string]string{"prog.ic10": "define a 1\ndefine a 2\nlb r0 h Setting 1\n"})
	path := filepath.Join(dir, "prog.ic10")
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	opts := Options{Config: config.Default(), Cache: cache}

	first, err := CheckFiles(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := CheckFiles(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.Files[0].Cached || !second.Files[0].Cached {
		t.Fatalf("expected a miss then a hit")
	}
	a := diag.FormatShortDiagnostics(first.Diagnostics(), first.FileSet, true)
	b := diag.FormatShortDiagnostics(second.Diagnostics(), second.FileSet, true)
	if a != b {
		t.Fatalf("cached diagnostics differ:\n%s\nvs\n%s", a, b)
	}
	var fixes int
	for _, d := range second.Diagnostics() {
		fixes += len(d.Fixes)
	}
	if fixes == 0 {
		t.Fatalf("cached diagnostics lost their fixes")
	}

	opts.Config.MaxColumns = 10
	third, err := CheckFiles(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if third.Files[0].Cached {
		t.Fatalf("a config change must miss the cache")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	fourth, _ := CheckFiles(context.Background(), []string{path}, opts)
	if fourth.Files[0].Cached {
		t.Fatalf("DropAll must clear entries")
	}
}

func TestCacheKey(t *testing.T) {
	f1 := source.NewFile(0, "a.ic10", []byte("yield\n"), 0)
	f2 := source.NewFile(1, "b.ic10", []byte("yield\n"), 0)
	f3 := source.NewFile(0, "a.ic10", []byte("yield\nyield\n"), 0)
	cfg := config.Default()
	if CacheKey(f1, cfg) != CacheKey(f2, cfg) {
		t.Fatalf("the key depends on content only, not on path")
	}
	if CacheKey(f1, cfg) == CacheKey(f3, cfg) {
		t.Fatalf("different content must give different keys")
	}
	cfg.WarnOvercolumnComment = true
	if CacheKey(f1, cfg) == CacheKey(f1, config.Default()) {
		t.Fatalf("config must be part of the key")
	}
}

func TestNilCache(t *testing.T) {
	var c *DiskCache
	var payload DiskPayload
	if ok, err := c.Get(Digest{}, &payload); ok || err != nil {
		t.Fatalf("nil cache Get = %v, %v", ok, err)
	}
	if err := c.Put(Digest{}, &payload); err != nil {
		t.Fatalf("nil cache Put: %v", err)
	}
}

func TestCheckFilesCancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.ic10": "yield\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CheckFiles(ctx, []string{filepath.Join(dir, "a.ic10")}, Options{Config: config.Default()})
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
}
