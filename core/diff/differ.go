package diff

import (
	"sort"

	"diffly/core/row"
)

// TableDiffer is the reference Differ implementation. It is a pure
// function over its inputs: no I/O, no shared state, safe for concurrent
// use from every table worker.
type TableDiffer struct{}

// NewTableDiffer returns the stateless table differ.
func NewTableDiffer() TableDiffer {
	return TableDiffer{}
}

// DiffTable classifies rows by PK key. Keys present only in source become
// inserts, only in target deletes; keys present on both sides with at
// least one differing column become updates. Two rows with the same PK key
// within one side let the later row win, a data-quality condition of the
// source system that is not validated here.
func (TableDiffer) DiffTable(source, target []row.Map, pkCols []string, tableName string) TableDiff {
	sourceIndex := indexByPK(source, pkCols)
	targetIndex := indexByPK(target, pkCols)

	var inserts, deletes []RowChange
	var updates []RowUpdate

	for _, key := range sortedKeys(sourceIndex) {
		sourceRow := sourceIndex[key]
		targetRow, inTarget := targetIndex[key]
		if !inTarget {
			inserts = append(inserts, RowChange{
				PK:   row.ExtractPK(sourceRow, pkCols),
				Data: sourceRow,
			})
			continue
		}

		changed := diffColumns(sourceRow, targetRow)
		if len(changed) > 0 {
			updates = append(updates, RowUpdate{
				PK:             row.ExtractPK(sourceRow, pkCols),
				Before:         targetRow,
				After:          sourceRow,
				ChangedColumns: changed,
			})
		}
	}

	for _, key := range sortedKeys(targetIndex) {
		if _, inSource := sourceIndex[key]; !inSource {
			targetRow := targetIndex[key]
			deletes = append(deletes, RowChange{
				PK:   row.ExtractPK(targetRow, pkCols),
				Data: targetRow,
			})
		}
	}

	return TableDiff{
		TableName:  tableName,
		PrimaryKey: pkCols,
		Inserts:    inserts,
		Updates:    updates,
		Deletes:    deletes,
	}
}

// diffColumns compares two rows over the union of their column names,
// missing values defaulting to null. The structural hash is a fast
// pre-check only: matching hashes skip the cell, differing hashes fall
// through to the exact tolerant comparison, so a hash collision can cost a
// missed fast path but never a wrong delta.
func diffColumns(source, target row.Map) []ColumnDiff {
	cols := make(map[string]struct{}, len(source)+len(target))
	for c := range source {
		cols[c] = struct{}{}
	}
	for c := range target {
		cols[c] = struct{}{}
	}

	names := make([]string, 0, len(cols))
	for c := range cols {
		names = append(names, c)
	}
	sort.Strings(names)

	var diffs []ColumnDiff
	for _, col := range names {
		sourceVal := source[col]
		targetVal := target[col]

		if row.Hash(sourceVal) == row.Hash(targetVal) {
			continue
		}
		if !row.Equal(sourceVal, targetVal) {
			diffs = append(diffs, ColumnDiff{
				Column: col,
				Before: targetVal,
				After:  sourceVal,
			})
		}
	}
	return diffs
}

func indexByPK(rows []row.Map, pkCols []string) map[string]row.Map {
	index := make(map[string]row.Map, len(rows))
	for _, r := range rows {
		index[row.PKKey(r, pkCols)] = r
	}
	return index
}

func sortedKeys(index map[string]row.Map) []string {
	keys := make([]string, 0, len(index))
	for k := range index {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
