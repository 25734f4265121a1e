package document

import (
	"fmt"
	"io"
	"strings"

	"autotranslate/src/fsutil"
	"autotranslate/src/translationflow"
)

// Lines is a plain-text source whose units are raw lines. Translations are
// appended to the output file exactly as received.
type Lines struct {
	store      fsutil.FileStore
	lines      []string
	outputPath string
	out        io.WriteCloser
}

// OpenLines loads the plain-text file at path.
func OpenLines(store fsutil.FileStore, path, outputPath string) (*Lines, error) {
	data, err := store.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &Lines{
		store:      store,
		lines:      SplitLines(string(data)),
		outputPath: outputPath,
	}, nil
}

// SplitLines splits text into lines, keeping each trailing newline.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (l *Lines) Variant() translationflow.Variant {
	return translationflow.LineVariant
}

func (l *Lines) Len() int {
	return len(l.lines)
}

func (l *Lines) Payload(first, last int) string {
	return strings.Join(l.lines[first:last], "")
}

func (l *Lines) Merge(result string) error {
	if l.out == nil {
		out, err := l.store.OpenAppend(l.outputPath)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", l.outputPath, err)
		}
		l.out = out
	}
	if _, err := io.WriteString(l.out, result); err != nil {
		return fmt.Errorf("failed to append to %s: %w", l.outputPath, err)
	}
	return nil
}

func (l *Lines) Save() error {
	if l.out == nil {
		return nil
	}
	err := l.out.Close()
	l.out = nil
	return err
}

var _ translationflow.Document = (*Lines)(nil)
