package output

import (
	"encoding/json"
	"fmt"

	"diffly/core/diff"
)

// JSONWriter renders the changeset as indented JSON, the canonical
// machine-readable form.
type JSONWriter struct{}

func (JSONWriter) Format(cs *diff.Changeset) (string, error) {
	data, err := json.MarshalIndent(cs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode changeset %s: %w", cs.ChangesetID, err)
	}
	return string(data), nil
}

func (JSONWriter) Extension() string { return "json" }
