package diff

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Changeset is the run-level result: every configured table's diff in
// configuration order, plus provenance metadata and derived summary
// counts. Built once from a completed list of table diffs; immutable
// thereafter.
type Changeset struct {
	ChangesetID  string `json:"changeset_id"`
	SourceSchema string `json:"source_schema"`
	TargetSchema string `json:"target_schema"`
	// Driver is the database driver the changeset was produced from
	// ("mysql", "postgres", "sqlite"). The SQL writer uses it to pick the
	// output dialect.
	Driver    string      `json:"driver"`
	CreatedAt string      `json:"created_at"`
	Tables    []TableDiff `json:"tables"`
	Summary   Summary     `json:"summary"`
}

// Summary holds the derived counts over all table diffs.
type Summary struct {
	TotalInserts   int `json:"total_inserts"`
	TotalUpdates   int `json:"total_updates"`
	TotalDeletes   int `json:"total_deletes"`
	TotalChanges   int `json:"total_changes"`
	TablesAffected int `json:"tables_affected"`
}

// NewChangeset assembles a changeset from a finished list of table diffs.
// The identifier is a sortable token (timestamp + uuid); it carries no
// semantic weight for the diff or conflict algorithms.
func NewChangeset(sourceSchema, targetSchema, driver string, tables []TableDiff) *Changeset {
	var s Summary
	for _, t := range tables {
		s.TotalInserts += len(t.Inserts)
		s.TotalUpdates += len(t.Updates)
		s.TotalDeletes += len(t.Deletes)
		if !t.IsEmpty() {
			s.TablesAffected++
		}
	}
	s.TotalChanges = s.TotalInserts + s.TotalUpdates + s.TotalDeletes

	now := time.Now().UTC()
	return &Changeset{
		ChangesetID: fmt.Sprintf("cs_%s_%s",
			now.Format("20060102_150405"),
			strings.ReplaceAll(uuid.NewString(), "-", "")),
		SourceSchema: sourceSchema,
		TargetSchema: targetSchema,
		Driver:       driver,
		CreatedAt:    now.Format(time.RFC3339),
		Tables:       tables,
		Summary:      s,
	}
}
