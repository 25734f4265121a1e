package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"autotranslate/src/fsutil"
	"autotranslate/src/log"
	"autotranslate/src/translationflow"
)

const documentPart = "word/document.xml"

var textElementRe = regexp.MustCompile(`(?s)<w:t(?:\s[^>/]*)?>(.*?)</w:t>`)

// run is a <w:t> element; start and end delimit it in the document part.
type run struct {
	start, end int
}

type part struct {
	header zip.FileHeader
	data   []byte
}

// Runs is a .docx source whose units are the text runs of its paragraphs.
// Every run starts out tagged with its index; a merge replaces the text of
// runs whose index comes back in a translation result.
type Runs struct {
	store      fsutil.FileStore
	outputPath string

	parts   []part
	body    []byte
	runs    []run
	source  []string
	current []string
}

// OpenRuns loads the .docx file at path.
func OpenRuns(store fsutil.FileStore, path, outputPath string) (*Runs, error) {
	data, err := store.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s as a document archive: %w", path, err)
	}

	d := &Runs{store: store, outputPath: outputPath}
	found := false
	for _, f := range zr.File {
		content, err := readPart(f)
		if err != nil {
			return nil, err
		}
		d.parts = append(d.parts, part{
			header: zip.FileHeader{Name: f.Name, Method: f.Method, Modified: f.Modified},
			data:   content,
		})
		if f.Name == documentPart {
			d.body = content
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("%s has no %s part", path, documentPart)
	}

	d.extractRuns()
	return d, nil
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", f.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", f.Name, err)
	}
	return content, nil
}

func (d *Runs) extractRuns() {
	for _, loc := range textElementRe.FindAllSubmatchIndex(d.body, -1) {
		text := html.UnescapeString(string(d.body[loc[2]:loc[3]]))
		if strings.TrimSpace(text) == "" {
			continue
		}
		index := len(d.runs)
		d.runs = append(d.runs, run{start: loc[0], end: loc[1]})
		d.source = append(d.source, Tag(index, text))
	}
	d.current = append([]string(nil), d.source...)
}

func (d *Runs) Variant() translationflow.Variant {
	return translationflow.RunVariant
}

func (d *Runs) Len() int {
	return len(d.runs)
}

func (d *Runs) Payload(first, last int) string {
	return strings.Join(d.source[first:last], "\n")
}

// Merge matches the fragments of result to runs by index. It scans the whole
// document, so indices outside the current batch are applied as well.
func (d *Runs) Merge(result string) error {
	fragments := ParseFragments(result)

	applied := 0
	for i, text := range d.current {
		if _, tagged := Untag(i, text); !tagged {
			continue
		}
		translated, ok := fragments[i]
		if !ok {
			continue
		}
		d.current[i] = translated
		applied++
	}
	log.Debug("merged translated runs", "fragments", len(fragments), "applied", applied)
	return nil
}

// Text returns the current text of run i: the translation once merged, the
// tagged source otherwise.
func (d *Runs) Text(i int) string {
	return d.current[i]
}

// Save writes a copy of the source archive with translated runs replaced.
// Runs that were never matched keep their source element.
func (d *Runs) Save() error {
	body, err := d.render()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range d.parts {
		header := p.header
		w, err := zw.CreateHeader(&header)
		if err != nil {
			return fmt.Errorf("failed to create part %s: %w", p.header.Name, err)
		}
		data := p.data
		if p.header.Name == documentPart {
			data = body
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write part %s: %w", p.header.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}

	return d.store.WriteFile(d.outputPath, buf.Bytes())
}

func (d *Runs) render() ([]byte, error) {
	var out bytes.Buffer
	prev := 0
	for i, r := range d.runs {
		out.Write(d.body[prev:r.start])
		if _, tagged := Untag(i, d.current[i]); tagged {
			out.Write(d.body[r.start:r.end])
		} else {
			out.WriteString(`<w:t xml:space="preserve">`)
			if err := xml.EscapeText(&out, []byte(d.current[i])); err != nil {
				return nil, fmt.Errorf("failed to escape run %d: %w", i, err)
			}
			out.WriteString(`</w:t>`)
		}
		prev = r.end
	}
	out.Write(d.body[prev:])
	return out.Bytes(), nil
}

var _ translationflow.Document = (*Runs)(nil)
