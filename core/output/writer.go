package output

import (
	"fmt"
	"os"
	"path/filepath"

	"diffly/core/diff"
)

// Writer renders a changeset into one output format.
type Writer interface {
	// Format renders the changeset as the writer's format.
	Format(cs *diff.Changeset) (string, error)
	// Extension is the file extension without dot ("json", "sql", "html").
	Extension() string
}

// All returns every available writer. Adding a format means adding it
// here and nowhere else.
func All() []Writer {
	return []Writer{JSONWriter{}, SQLWriter{}, HTMLWriter{}}
}

// For returns the writer for a format name, or false for an unknown one.
func For(format string) (Writer, bool) {
	switch format {
	case "json":
		return JSONWriter{}, true
	case "sql":
		return SQLWriter{}, true
	case "html":
		return HTMLWriter{}, true
	default:
		return nil, false
	}
}

// WriteToFile renders the changeset and writes it to
// <dir>/<changeset_id>.<ext>, creating the directory if needed. Returns
// the written path.
func WriteToFile(w Writer, cs *diff.Changeset, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	content, err := w.Format(cs)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, cs.ChangesetID+"."+w.Extension())
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
