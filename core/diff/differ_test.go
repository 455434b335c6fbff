package diff

import (
	"testing"

	"diffly/core/row"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffTableClassifiesChanges(t *testing.T) {
	source := []row.Map{
		{"id": float64(1), "name": "Alice"},
		{"id": float64(2), "name": "Bob"},
	}
	target := []row.Map{
		{"id": float64(2), "name": "Bobby"},
		{"id": float64(3), "name": "Charlie"},
	}

	d := NewTableDiffer().DiffTable(source, target, []string{"id"}, "users")

	require.Len(t, d.Inserts, 1)
	assert.Equal(t, float64(1), d.Inserts[0].PK["id"])

	require.Len(t, d.Deletes, 1)
	assert.Equal(t, float64(3), d.Deletes[0].PK["id"])

	require.Len(t, d.Updates, 1)
	upd := d.Updates[0]
	assert.Equal(t, float64(2), upd.PK["id"])
	require.Len(t, upd.ChangedColumns, 1)
	assert.Equal(t, "name", upd.ChangedColumns[0].Column)
	assert.Equal(t, "Bobby", upd.ChangedColumns[0].Before)
	assert.Equal(t, "Bob", upd.ChangedColumns[0].After)
	assert.Equal(t, target[0], upd.Before)
	assert.Equal(t, source[1], upd.After)
}

func TestDiffTableIdentity(t *testing.T) {
	rows := []row.Map{
		{"id": float64(1), "x": float64(10)},
		{"id": float64(2), "x": float64(20)},
	}

	d := NewTableDiffer().DiffTable(rows, rows, []string{"id"}, "items")

	assert.Empty(t, d.Inserts)
	assert.Empty(t, d.Updates)
	assert.Empty(t, d.Deletes)
	assert.True(t, d.IsEmpty())
}

func TestDiffTablePartition(t *testing.T) {
	pk := []string{"id"}
	source := []row.Map{
		{"id": float64(1), "v": "a"},
		{"id": float64(2), "v": "changed"},
		{"id": float64(4), "v": "same"},
	}
	target := []row.Map{
		{"id": float64(2), "v": "original"},
		{"id": float64(3), "v": "gone"},
		{"id": float64(4), "v": "same"},
	}

	d := NewTableDiffer().DiffTable(source, target, pk, "t")

	classified := make(map[string]int)
	for _, ins := range d.Inserts {
		classified[row.PKKey(ins.Data, pk)]++
	}
	for _, del := range d.Deletes {
		classified[row.PKKey(del.Data, pk)]++
	}
	for _, upd := range d.Updates {
		classified[row.PKKey(upd.After, pk)]++
	}

	// Inserts, deletes and updates are disjoint by PK key.
	for key, n := range classified {
		assert.Equalf(t, 1, n, "key %s classified more than once", key)
	}

	// Every source/target key is either classified or unchanged.
	union := make(map[string]struct{})
	for _, r := range append(append([]row.Map{}, source...), target...) {
		union[row.PKKey(r, pk)] = struct{}{}
	}
	for key := range classified {
		assert.Contains(t, union, key)
	}
	assert.Len(t, union, 4)
	assert.Len(t, classified, 3) // id=4 is unchanged
}

func TestDiffTableFloatTolerance(t *testing.T) {
	tests := []struct {
		name       string
		source     float64
		target     float64
		wantChange bool
	}{
		{"sub-tolerance noise ignored", 1.0000000001, 1.0, false},
		{"real change detected", 0.2, 0.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := []row.Map{{"id": float64(1), "rate": tt.source}}
			target := []row.Map{{"id": float64(1), "rate": tt.target}}

			d := NewTableDiffer().DiffTable(source, target, []string{"id"}, "rates")

			if tt.wantChange {
				require.Len(t, d.Updates, 1)
				assert.Equal(t, "rate", d.Updates[0].ChangedColumns[0].Column)
			} else {
				assert.Empty(t, d.Updates)
			}
		})
	}
}

func TestDiffTableJSONKeyOrderInsensitive(t *testing.T) {
	source := []row.Map{{
		"id":   float64(1),
		"meta": map[string]any{"a": float64(1), "b": []any{float64(1), float64(2)}, "c": map[string]any{"x": float64(10)}},
	}}
	target := []row.Map{{
		"id":   float64(1),
		"meta": map[string]any{"b": []any{float64(1), float64(2)}, "a": float64(1), "c": map[string]any{"x": float64(10)}},
	}}

	d := NewTableDiffer().DiffTable(source, target, []string{"id"}, "docs")

	assert.True(t, d.IsEmpty())
}

func TestDiffTableSparseRowsUseColumnUnion(t *testing.T) {
	// Source carries a column the target lacks: compared against null.
	source := []row.Map{{"id": float64(1), "extra": "x"}}
	target := []row.Map{{"id": float64(1)}}

	d := NewTableDiffer().DiffTable(source, target, []string{"id"}, "t")

	require.Len(t, d.Updates, 1)
	require.Len(t, d.Updates[0].ChangedColumns, 1)
	cd := d.Updates[0].ChangedColumns[0]
	assert.Equal(t, "extra", cd.Column)
	assert.Nil(t, cd.Before)
	assert.Equal(t, "x", cd.After)
}

func TestDiffTableMissingPKColumnDegeneratesToNull(t *testing.T) {
	// No panic: the missing PK column becomes the NULL sentinel in the key.
	source := []row.Map{{"name": "orphan"}}
	target := []row.Map{}

	d := NewTableDiffer().DiffTable(source, target, []string{"id"}, "t")

	require.Len(t, d.Inserts, 1)
	assert.Empty(t, d.Inserts[0].PK)
}

func TestDiffTablePKCollisionLastWins(t *testing.T) {
	source := []row.Map{
		{"id": float64(1), "v": "first"},
		{"id": float64(1), "v": "second"},
	}
	target := []row.Map{{"id": float64(1), "v": "second"}}

	d := NewTableDiffer().DiffTable(source, target, []string{"id"}, "t")

	assert.True(t, d.IsEmpty())
}

func TestDiffTableChangedColumnsSorted(t *testing.T) {
	source := []row.Map{{"id": float64(1), "zeta": "2", "alpha": "2", "mid": "2"}}
	target := []row.Map{{"id": float64(1), "zeta": "1", "alpha": "1", "mid": "1"}}

	d := NewTableDiffer().DiffTable(source, target, []string{"id"}, "t")

	require.Len(t, d.Updates, 1)
	var cols []string
	for _, cd := range d.Updates[0].ChangedColumns {
		cols = append(cols, cd.Column)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, cols)
}
