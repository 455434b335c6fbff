package conflict

import (
	"diffly/core/diff"
	"diffly/core/row"
)

// Status tags the outcome of a conflict-aware diff run.
type Status string

const (
	// StatusClean means no concurrent target changes collide with the
	// changeset; it can be applied directly.
	StatusClean Status = "clean"
	// StatusConflicted means at least one cell was modified on both sides
	// since the baseline, with different values.
	StatusConflicted Status = "conflicted"
)

// Report is a single detected conflicting cell. The changeset already
// reflects auto-merged changes; reports are additional information for the
// operator who must pick a value.
type Report struct {
	TableName string `json:"table_name"`
	// PK identifies the conflicting row; columns are pulled from the base
	// row, falling back to the current one.
	PK          row.Map `json:"pk"`
	Column      string  `json:"column"`
	BaseValue   any     `json:"base_value"`
	SourceValue any     `json:"source_value"`
	TargetValue any     `json:"target_value"`
}

// Result is the tagged outcome of a conflict check. Callers branch on the
// status explicitly; there is no default path that ignores conflicts.
type Result struct {
	Status    Status          `json:"status"`
	Changeset *diff.Changeset `json:"changeset"`
	Conflicts []Report        `json:"conflicts,omitempty"`
}

// IsClean reports whether the run detected no conflicts.
func (r Result) IsClean() bool {
	return r.Status == StatusClean
}
