package fsutil

import "io"

// FileStore provides the file operations used to load sources and write
// translated artifacts
type FileStore interface {
	// ReadFile reads a file and returns its contents
	ReadFile(path string) ([]byte, error)

	// OpenAppend opens a file for appending, creating it when missing
	OpenAppend(path string) (io.WriteCloser, error)

	// WriteFile replaces the contents of a file
	WriteFile(path string, data []byte) error

	// Exists reports whether path names an existing file
	Exists(path string) (bool, error)
}
