package prompt

import (
	"errors"
	"strings"

	"autotranslate/src/fsutil"
	"autotranslate/src/translationflow"
)

const DefaultPath = "auto-translator-prompt.txt"

// Load reads the system instruction sent with every batch.
func Load(store fsutil.FileStore, path string) (string, error) {
	data, err := store.ReadFile(path)
	if err != nil {
		return "", &translationflow.ConfigurationError{Op: "load prompt " + path, Err: err}
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", &translationflow.ConfigurationError{Op: "load prompt " + path, Err: errors.New("prompt is empty")}
	}
	return string(data), nil
}
