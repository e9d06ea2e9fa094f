package paths

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Resolve joins rel onto root and rejects results that leave root.
// Catalog entries and scanned files are always resolved through it.
func Resolve(root, rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("path %q must be relative", rel)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %q: %w", root, err)
	}
	full := filepath.Join(absRoot, rel)
	if !Within(absRoot, full) {
		return "", fmt.Errorf("path %q escapes %q", rel, root)
	}
	return full, nil
}

// Within reports whether path is root or lies below it. Both must be clean
// absolute paths.
func Within(root, path string) bool {
	if path == root {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(root, string(filepath.Separator))+string(filepath.Separator))
}

// Stem returns the file name without directory and extension:
// "apps/About Me.html" -> "About Me".
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Slash converts a path relative to a scan root into the forward-slash
// form glob patterns are matched against.
func Slash(rel string) string {
	return filepath.ToSlash(rel)
}
