package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
)

// uriToPath maps a workspace URI to an absolute local path. Bare paths
// pass through; non-file schemes yield "".
func uriToPath(uri string) string {
	if uri == "" {
		return ""
	}
	path := uri
	if strings.Contains(uri, "://") {
		u, err := url.Parse(uri)
		if err != nil || u.Scheme != "file" {
			return ""
		}
		path = u.Path
		// file:///C:/x parses to /C:/x.
		if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
			path = path[1:]
		}
	}
	abs, err := filepath.Abs(filepath.FromSlash(path))
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
