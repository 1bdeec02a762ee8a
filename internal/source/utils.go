package source

import (
	"bytes"
	"path/filepath"

	"fortio.org/safecast"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalizeCRLF turns every "\r\n" into "\n". A lone '\r' is content and
// stays.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, []byte("\r\n")) {
		return content, false
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), true
}

func removeBOM(content []byte) ([]byte, bool) {
	rest, ok := bytes.CutPrefix(content, utf8BOM)
	return rest, ok
}

// buildLineIndex records the offset of every '\n'.
func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for off := 0; ; {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return idx
		}
		off += i
		n, err := safecast.Conv[uint32](off)
		if err != nil {
			return idx
		}
		idx = append(idx, n)
		off++
	}
}

// normalizePath cleans p and uses forward slashes so paths compare equal
// across platforms.
func normalizePath(p string) string {
	if p == "" {
		return p
	}
	return filepath.ToSlash(filepath.Clean(p))
}
