package document

import (
	"path/filepath"
	"strings"

	"autotranslate/src/fsutil"
	"autotranslate/src/translationflow"
)

const DocxExt = ".docx"

// Open loads path as the variant its extension selects: .docx files are read
// as runs, everything else as lines. The output goes to outputPath.
func Open(store fsutil.FileStore, path, outputPath string) (translationflow.Document, error) {
	var (
		doc translationflow.Document
		err error
	)
	if IsDocx(path) {
		doc, err = OpenRuns(store, path, outputPath)
	} else {
		doc, err = OpenLines(store, path, outputPath)
	}
	if err != nil {
		return nil, &translationflow.ConfigurationError{Op: "load input", Err: err}
	}
	return doc, nil
}

func IsDocx(path string) bool {
	return strings.EqualFold(filepath.Ext(path), DocxExt)
}
