package document_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"autotranslate/src/document"
	"autotranslate/src/fsutil"
	"autotranslate/src/translationflow"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: nil},
		{name: "trailing newline", text: "a\nb\n", want: []string{"a\n", "b\n"}},
		{name: "no trailing newline", text: "a\nb", want: []string{"a\n", "b"}},
		{name: "blank lines are units", text: "a\n\nb\n", want: []string{"a\n", "\n", "b\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, document.SplitLines(tt.text))
		})
	}
}

func TestLinesMergeAppendsVerbatim(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(src, []byte("one\ntwo\nthree\n"), 0644))
	out := document.TranslatedPath(src, "french")

	doc, err := document.Open(fsutil.NewLocalFileStore(), src, out)
	require.NoError(t, err)
	require.Equal(t, translationflow.LineVariant, doc.Variant())
	require.Equal(t, 3, doc.Len())
	require.Equal(t, "one\ntwo\n", doc.Payload(0, 2))

	require.NoError(t, doc.Merge("un\n<1>deux</1>"))
	require.NoError(t, doc.Merge("\ntrois\n"))
	require.NoError(t, doc.Save())
	require.NoError(t, doc.Save())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "un\n<1>deux</1>\ntrois\n", string(data))
}

func TestLinesSaveWithoutMergeCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(src, nil, 0644))
	out := filepath.Join(dir, "empty-translated-to-french.txt")

	doc, err := document.Open(fsutil.NewLocalFileStore(), src, out)
	require.NoError(t, err)
	require.Zero(t, doc.Len())
	require.NoError(t, doc.Save())

	_, err = os.Stat(out)
	require.True(t, os.IsNotExist(err))
}

func TestOpenMissingInput(t *testing.T) {
	_, err := document.Open(fsutil.NewLocalFileStore(), filepath.Join(t.TempDir(), "missing.txt"), "out.txt")

	var cfgErr *translationflow.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "load input", cfgErr.Op)
}
