package watch

import (
	"os"
	"path/filepath"
	"strings"
)

func isDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// ExtFilter accepts files with one of exts (case-insensitive) and any path
// listed in extra.
func ExtFilter(exts []string, extra ...string) Filter {
	want := make(map[string]bool, len(exts))
	for _, e := range exts {
		want[strings.ToLower(e)] = true
	}
	files := make(map[string]bool, len(extra))
	for _, f := range extra {
		if abs, err := filepath.Abs(f); err == nil {
			f = abs
		}
		files[f] = true
	}
	return func(path string) bool {
		if abs, err := filepath.Abs(path); err == nil && files[abs] {
			return true
		}
		return want[strings.ToLower(filepath.Ext(path))]
	}
}
