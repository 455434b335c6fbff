package conflict

import (
	"sort"

	"diffly/core/diff"
	"diffly/core/fingerprint"
	"diffly/core/row"
)

// BaselineProvider exposes the stored baseline snapshot, one row
// collection per table. Get returns false when no baseline exists for the
// table, a recognised condition rather than an error.
type BaselineProvider interface {
	Get(table string) ([]row.Map, bool)
}

// Service performs the three-way merge. It is a pure function over its
// inputs and safe for concurrent use; the baseline and fingerprints are
// read-only for the duration of a check.
type Service struct{}

// NewService returns the conflict service.
func NewService() Service {
	return Service{}
}

// Check enriches a two-way changeset with conflict reports.
//
// Per table: if the current target fingerprint equals the stored baseline
// fingerprint the target has not changed since capture and the table is
// skipped outright. If no baseline rows exist the table is skipped by
// policy. Otherwise base, current, and source (reconstructed from the
// changeset's inserts and updates) are indexed by PK key and every cell
// the source touched is classified: a conflict is recorded iff the target
// changed it, the source changed it, and the two sides disagree.
func (Service) Check(
	cs *diff.Changeset,
	baseline BaselineProvider,
	storedFingerprints map[string]string,
	currentTargetRows map[string][]row.Map,
	pkColsByTable map[string][]string,
) Result {
	var conflicts []Report

	for _, tableDiff := range cs.Tables {
		pkCols, ok := pkColsByTable[tableDiff.TableName]
		if !ok {
			continue
		}

		// Fast path: unchanged fingerprint means no conflict is possible
		// for this table. Deliberate trade-off inherited from the design:
		// the fingerprint is trusted, not re-verified per row.
		storedFP, hasFP := storedFingerprints[tableDiff.TableName]
		currentRows, hasCurrent := currentTargetRows[tableDiff.TableName]
		if hasFP && hasCurrent && fingerprint.Compute(currentRows) == storedFP {
			continue
		}

		baseRows, hasBase := baseline.Get(tableDiff.TableName)
		if !hasBase {
			continue
		}
		if !hasCurrent {
			continue
		}

		conflicts = append(conflicts, mergeTable(tableDiff, baseRows, currentRows, pkCols)...)
	}

	if len(conflicts) == 0 {
		return Result{Status: StatusClean, Changeset: cs}
	}
	return Result{Status: StatusConflicted, Changeset: cs, Conflicts: conflicts}
}

// mergeTable runs the full three-way merge for one table. Only PK keys
// present in the source index matter: conflicts require the diffing system
// to have touched the row, so target-only edits auto-merge.
func mergeTable(tableDiff diff.TableDiff, baseRows, currentRows []row.Map, pkCols []string) []Report {
	baseIndex := indexRows(baseRows, pkCols)
	currentIndex := indexRows(currentRows, pkCols)

	sourceIndex := make(map[string]row.Map, len(tableDiff.Inserts)+len(tableDiff.Updates))
	for _, ins := range tableDiff.Inserts {
		sourceIndex[row.PKKey(ins.Data, pkCols)] = ins.Data
	}
	for _, upd := range tableDiff.Updates {
		sourceIndex[row.PKKey(upd.After, pkCols)] = upd.After
	}

	keys := make([]string, 0, len(sourceIndex))
	for k := range sourceIndex {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var reports []Report
	for _, key := range keys {
		sourceRow := sourceIndex[key]
		baseRow := baseIndex[key]
		currentRow := currentIndex[key]

		for _, col := range unionColumns(baseRow, currentRow, sourceRow) {
			baseVal := lookup(baseRow, col)
			currentVal := lookup(currentRow, col)
			sourceVal := lookup(sourceRow, col)

			targetChanged := !row.Equal(currentVal, baseVal)
			sourceChanged := !row.Equal(sourceVal, baseVal)

			if targetChanged && sourceChanged && !row.Equal(sourceVal, currentVal) {
				reports = append(reports, Report{
					TableName:   tableDiff.TableName,
					PK:          reportPK(baseRow, currentRow, pkCols),
					Column:      col,
					BaseValue:   baseVal,
					SourceValue: sourceVal,
					TargetValue: currentVal,
				})
			}
		}
	}
	return reports
}

func indexRows(rows []row.Map, pkCols []string) map[string]row.Map {
	index := make(map[string]row.Map, len(rows))
	for _, r := range rows {
		index[row.PKKey(r, pkCols)] = r
	}
	return index
}

// unionColumns collects the sorted union of column names across whichever
// of the three row states are present (nil maps contribute nothing).
func unionColumns(rows ...row.Map) []string {
	set := make(map[string]struct{})
	for _, r := range rows {
		for col := range r {
			set[col] = struct{}{}
		}
	}
	cols := make([]string, 0, len(set))
	for col := range set {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// lookup treats a missing row or column as null.
func lookup(r row.Map, col string) any {
	if r == nil {
		return nil
	}
	return r[col]
}

// reportPK reconstructs the PK value map for a report from the base row,
// falling back to the current row per column.
func reportPK(baseRow, currentRow row.Map, pkCols []string) row.Map {
	pk := make(row.Map, len(pkCols))
	for _, col := range pkCols {
		if v, ok := baseRow[col]; ok {
			pk[col] = v
			continue
		}
		if v, ok := currentRow[col]; ok {
			pk[col] = v
		}
	}
	return pk
}
