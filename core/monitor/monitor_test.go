package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"diffly/core/diff"
	"diffly/core/row"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportConcurrentAppends(t *testing.T) {
	report := NewReport()

	var wg sync.WaitGroup
	const workers = 16
	const perWorker = 50

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				report.Record(Timing{Op: OpFetch, Table: "t"})
			}
		}()
	}
	wg.Wait()

	assert.Len(t, report.Timings(), workers*perWorker)
}

type staticRepo struct {
	rows []row.Map
	err  error
}

func (s staticRepo) FetchRows(ctx context.Context, schema, table string, pkCols, excluded []string) ([]row.Map, error) {
	return s.rows, s.err
}

func TestWrappedRepositoryRecordsFetch(t *testing.T) {
	report := NewReport()
	repo := WrapRepository(staticRepo{rows: []row.Map{{"id": float64(1)}}}, report)

	rows, err := repo.FetchRows(context.Background(), "staging", "users", []string{"id"}, nil)

	require.NoError(t, err)
	assert.Len(t, rows, 1)

	timings := report.Timings()
	require.Len(t, timings, 1)
	assert.Equal(t, OpFetch, timings[0].Op)
	assert.Equal(t, "staging", timings[0].Schema)
	assert.Equal(t, "users", timings[0].Table)
	assert.Equal(t, 1, timings[0].Rows)
}

func TestWrappedRepositoryForwardsErrorWithoutRecording(t *testing.T) {
	report := NewReport()
	fetchErr := errors.New("boom")
	repo := WrapRepository(staticRepo{err: fetchErr}, report)

	_, err := repo.FetchRows(context.Background(), "s", "t", nil, nil)

	assert.ErrorIs(t, err, fetchErr)
	assert.Empty(t, report.Timings())
}

func TestWrappedDifferRecordsDiff(t *testing.T) {
	report := NewReport()
	d := WrapDiffer(diff.NewTableDiffer(), report)

	source := []row.Map{{"id": float64(1), "v": "a"}}
	target := []row.Map{{"id": float64(1), "v": "b"}}
	result := d.DiffTable(source, target, []string{"id"}, "items")

	assert.Len(t, result.Updates, 1)

	timings := report.Timings()
	require.Len(t, timings, 1)
	assert.Equal(t, OpDiff, timings[0].Op)
	assert.Equal(t, "items", timings[0].Table)
	assert.Equal(t, 2, timings[0].Rows)
}
