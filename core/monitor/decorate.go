package monitor

import (
	"context"
	"time"

	"diffly/core/diff"
	"diffly/core/row"
)

// Repository wraps a diff.RowRepository, recording one fetch timing per
// call into the shared report before forwarding the result untouched.
type Repository struct {
	inner  diff.RowRepository
	report *Report
}

// WrapRepository instruments a repository with the given report.
func WrapRepository(inner diff.RowRepository, report *Report) *Repository {
	return &Repository{inner: inner, report: report}
}

func (r *Repository) FetchRows(ctx context.Context, schema, table string, pkCols, excluded []string) ([]row.Map, error) {
	start := time.Now()
	rows, err := r.inner.FetchRows(ctx, schema, table, pkCols, excluded)
	if err != nil {
		return nil, err
	}
	r.report.Record(Timing{
		Op:       OpFetch,
		Schema:   schema,
		Table:    table,
		Rows:     len(rows),
		Duration: time.Since(start),
	})
	return rows, nil
}

// Differ wraps a diff.Differ, recording one diff timing per table.
type Differ struct {
	inner  diff.Differ
	report *Report
}

// WrapDiffer instruments a differ with the given report.
func WrapDiffer(inner diff.Differ, report *Report) *Differ {
	return &Differ{inner: inner, report: report}
}

func (d *Differ) DiffTable(source, target []row.Map, pkCols []string, tableName string) diff.TableDiff {
	start := time.Now()
	result := d.inner.DiffTable(source, target, pkCols, tableName)
	d.report.Record(Timing{
		Op:       OpDiff,
		Table:    tableName,
		Rows:     len(source) + len(target),
		Duration: time.Since(start),
	})
	return result
}
