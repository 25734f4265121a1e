package document

import (
	"path/filepath"
	"strings"
)

// TranslatedPath inserts "-translated-to-<language>" before the final
// extension of path.
func TranslatedPath(path, language string) string {
	ext := filepath.Ext(path)
	if ext == filepath.Base(path) {
		ext = ""
	}
	return strings.TrimSuffix(path, ext) + "-translated-to-" + language + ext
}
