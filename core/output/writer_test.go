package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"diffly/core/diff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForKnownFormats(t *testing.T) {
	for _, format := range []string{"json", "sql", "html"} {
		w, ok := For(format)
		require.True(t, ok, format)
		assert.Equal(t, format, w.Extension())
	}
}

func TestForUnknownFormat(t *testing.T) {
	_, ok := For("yaml")
	assert.False(t, ok)
}

func TestAllCoversEveryFormat(t *testing.T) {
	exts := make([]string, 0)
	for _, w := range All() {
		exts = append(exts, w.Extension())
	}
	assert.ElementsMatch(t, []string{"json", "sql", "html"}, exts)
}

func TestJSONWriterRoundTrip(t *testing.T) {
	cs := sampleChangeset("mysql")
	out, err := JSONWriter{}.Format(cs)
	require.NoError(t, err)

	var decoded diff.Changeset
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, cs.ChangesetID, decoded.ChangesetID)
	assert.Equal(t, cs.Summary, decoded.Summary)
	assert.Len(t, decoded.Tables, 2)
}

func TestHTMLWriterReport(t *testing.T) {
	out, err := HTMLWriter{}.Format(sampleChangeset("mysql"))
	require.NoError(t, err)

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<h2>users</h2>")
	assert.Contains(t, out, "alicia")
	assert.Contains(t, out, "staging")
	assert.NotContains(t, out, "empty_table")
}

func TestHTMLWriterEscapesContent(t *testing.T) {
	cs := sampleChangeset("mysql")
	cs.Tables[0].Updates[0].ChangedColumns[0].After = "<script>alert(1)</script>"
	out, err := HTMLWriter{}.Format(cs)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>alert(1)</script>")
}

func TestWriteToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	cs := sampleChangeset("mysql")

	path, err := WriteToFile(JSONWriter{}, cs, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, cs.ChangesetID+".json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), cs.ChangesetID)
}
