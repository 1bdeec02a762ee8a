package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"ic10lsp/internal/config"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
	"ic10lsp/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [32]byte

// DiskCache stores analysis results on disk keyed by CacheKey.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached form of one file's diagnostics. Spans are kept
// as offsets and rebound to the current FileID on load.
type DiskPayload struct {
	Schema      uint16
	Path        string
	Diagnostics []cachedDiagnostic
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Data     string
	Notes    []cachedNote
	Fixes    []cachedFix
}

type cachedNote struct {
	Start, End uint32
	Msg        string
}

type cachedFix struct {
	ID            string
	Title         string
	Applicability uint8
	Preferred     bool
	Edits         []cachedEdit
}

type cachedEdit struct {
	Start, End uint32
	NewText    string
	OldText    string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// CacheKey derives the key for f analysed under cfg. The tool version is
// mixed in so a new catalog never serves stale results.
func CacheKey(f *source.File, cfg config.Configuration) Digest {
	h := sha256.New()
	h.Write([]byte(version.Version))
	var buf [8]byte
	binary.LittleEndian.PutUint16(buf[:2], diskCacheSchemaVersion)
	h.Write(buf[:2])
	h.Write(f.Hash[:])
	for _, v := range []int{cfg.MaxLines, cfg.MaxColumns, boolInt(cfg.WarnOverlineComment), boolInt(cfg.WarnOvercolumnComment)} {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		h.Write(buf[:])
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Rename so readers never see a partial entry.
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache. Payloads from
// another schema version count as a miss.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

func toDiskPayload(path string, ds []diag.Diagnostic) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        path,
		Diagnostics: make([]cachedDiagnostic, len(ds)),
	}
	for i, d := range ds {
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Data:     d.Data,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			cf := cachedFix{ID: f.ID, Title: f.Title, Applicability: uint8(f.Applicability), Preferred: f.IsPreferred}
			for _, e := range f.Edits {
				cf.Edits = append(cf.Edits, cachedEdit{Start: e.Span.Start, End: e.Span.End, NewText: e.NewText, OldText: e.OldText})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		payload.Diagnostics[i] = cd
	}
	return payload
}

// diagnostics rebinds the cached spans to file.
func (p *DiskPayload) diagnostics(file source.FileID) []diag.Diagnostic {
	span := func(start, end uint32) source.Span {
		return source.Span{File: file, Start: start, End: end}
	}
	out := make([]diag.Diagnostic, len(p.Diagnostics))
	for i, cd := range p.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  span(cd.Start, cd.End),
			Data:     cd.Data,
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: span(n.Start, n.End), Msg: n.Msg})
		}
		for _, cf := range cd.Fixes {
			f := diag.Fix{ID: cf.ID, Title: cf.Title, Applicability: diag.FixApplicability(cf.Applicability), IsPreferred: cf.Preferred}
			for _, e := range cf.Edits {
				f.Edits = append(f.Edits, diag.TextEdit{Span: span(e.Start, e.End), NewText: e.NewText, OldText: e.OldText})
			}
			d.Fixes = append(d.Fixes, f)
		}
		out[i] = d
	}
	return out
}
