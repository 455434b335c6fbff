package diff

import (
	"encoding/json"
	"strings"
	"testing"

	"diffly/core/row"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTables() []TableDiff {
	return []TableDiff{
		{
			TableName:  "users",
			PrimaryKey: []string{"id"},
			Inserts: []RowChange{{
				PK:   row.Map{"id": float64(1)},
				Data: row.Map{"id": float64(1), "name": "Alice"},
			}},
			Updates: []RowUpdate{{
				PK:     row.Map{"id": float64(2)},
				Before: row.Map{"id": float64(2), "name": "Bobby"},
				After:  row.Map{"id": float64(2), "name": "Bob"},
				ChangedColumns: []ColumnDiff{{
					Column: "name", Before: "Bobby", After: "Bob",
				}},
			}},
		},
		{
			TableName:  "orders",
			PrimaryKey: []string{"id"},
			Deletes: []RowChange{{
				PK:   row.Map{"id": float64(9)},
				Data: row.Map{"id": float64(9), "total": 10.5},
			}},
		},
		{
			TableName:  "empty",
			PrimaryKey: []string{"id"},
		},
	}
}

func TestNewChangesetSummary(t *testing.T) {
	cs := NewChangeset("staging", "prod", "mysql", sampleTables())

	assert.Equal(t, 1, cs.Summary.TotalInserts)
	assert.Equal(t, 1, cs.Summary.TotalUpdates)
	assert.Equal(t, 1, cs.Summary.TotalDeletes)
	assert.Equal(t, 3, cs.Summary.TotalChanges)
	assert.Equal(t, 2, cs.Summary.TablesAffected)

	assert.Equal(t, "staging", cs.SourceSchema)
	assert.Equal(t, "prod", cs.TargetSchema)
	assert.Equal(t, "mysql", cs.Driver)
	assert.True(t, strings.HasPrefix(cs.ChangesetID, "cs_"))
	assert.NotEmpty(t, cs.CreatedAt)
}

func TestChangesetIDsAreUnique(t *testing.T) {
	a := NewChangeset("s", "t", "mysql", nil)
	b := NewChangeset("s", "t", "mysql", nil)

	assert.NotEqual(t, a.ChangesetID, b.ChangesetID)
}

func TestChangesetRoundTrip(t *testing.T) {
	cs := NewChangeset("staging", "prod", "mysql", sampleTables())

	data, err := json.Marshal(cs)
	require.NoError(t, err)

	var back Changeset
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, cs.ChangesetID, back.ChangesetID)
	assert.Equal(t, cs.Summary, back.Summary)
	require.Len(t, back.Tables, len(cs.Tables))

	for i, tbl := range cs.Tables {
		got := back.Tables[i]
		assert.Equal(t, tbl.TableName, got.TableName)
		require.Len(t, got.Inserts, len(tbl.Inserts))
		for j := range tbl.Inserts {
			assert.True(t, row.Equal(tbl.Inserts[j].Data, got.Inserts[j].Data))
		}
		require.Len(t, got.Updates, len(tbl.Updates))
		for j := range tbl.Updates {
			assert.True(t, row.Equal(tbl.Updates[j].Before, got.Updates[j].Before))
			assert.True(t, row.Equal(tbl.Updates[j].After, got.Updates[j].After))
		}
		require.Len(t, got.Deletes, len(tbl.Deletes))
		for j := range tbl.Deletes {
			assert.True(t, row.Equal(tbl.Deletes[j].Data, got.Deletes[j].Data))
		}
	}
}
