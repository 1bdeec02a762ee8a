package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns the files of one batch run so diagnostics can carry a
// compact FileID instead of a path.
type FileSet struct {
	files   []*File
	index   map[string]FileID
	baseDir string
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// SetBaseDir sets the directory relative paths are printed against.
func (fs *FileSet) SetBaseDir(dir string) {
	fs.baseDir = dir
}

// BaseDir returns the base directory, defaulting to the working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fs.baseDir
}

// Add stores content under path and returns its id. A later Add with the
// same path shadows the earlier one for GetByPath.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	f := NewFile(FileID(n), path, content, flags)
	fs.files = append(fs.files, f)
	fs.index[f.Path] = f.ID
	return f.ID
}

// AddVirtual adds an in-memory file.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Load reads path from disk.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return fs.Add(path, content, 0), nil
}

// Get returns the file for id, or nil for an unknown id.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return fs.files[id]
}

// GetByPath returns the latest file loaded under path.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fs.index[normalizePath(path)]; ok {
		return fs.files[id], true
	}
	return nil, false
}

// Files returns every file in insertion order.
func (fs *FileSet) Files() []*File {
	return fs.files
}

// Resolve converts a span into 1-based line and column positions. Spans
// of unknown files resolve to zero positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.LineCol(span.Start), f.LineCol(span.End)
}
