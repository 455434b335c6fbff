package diff

import (
	"context"
	"sync"

	"diffly/core/row"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service orchestrates a full diff run: one worker per configured table,
// each fetching source and target rows concurrently before running the
// diff. The first fetch error fails the whole run; sibling workers are
// cancelled cooperatively through the group context.
type Service struct {
	source RowRepository
	target RowRepository
	differ Differ
	log    *zap.Logger
}

// NewService wires a diff service from its collaborators. Pass the
// monitor-wrapped repositories and differ to collect per-table timings.
func NewService(source, target RowRepository, differ Differ, log *zap.Logger) *Service {
	return &Service{
		source: source,
		target: target,
		differ: differ,
		log:    log,
	}
}

// Run fetches and diffs every configured table concurrently and assembles
// the changeset. Table diffs are collected back into the configuration
// order regardless of completion order, so summaries and rendered output
// are stable across runs with the same configuration.
func (s *Service) Run(ctx context.Context, sourceSchema, targetSchema, driver string, tables []TableConfig) (*Changeset, error) {
	g, ctx := errgroup.WithContext(ctx)

	// Indexed by table position to preserve configuration order.
	diffs := make([]TableDiff, len(tables))

	for i, tc := range tables {
		g.Go(func() error {
			var (
				sourceRows, targetRows []row.Map
				sourceErr, targetErr   error
				wg                     sync.WaitGroup
			)

			wg.Add(2)
			go func() {
				defer wg.Done()
				sourceRows, sourceErr = s.source.FetchRows(ctx, sourceSchema, tc.Name, tc.PrimaryKey, tc.ExcludedColumns)
			}()
			go func() {
				defer wg.Done()
				targetRows, targetErr = s.target.FetchRows(ctx, targetSchema, tc.Name, tc.PrimaryKey, tc.ExcludedColumns)
			}()
			wg.Wait()

			if sourceErr != nil {
				return sourceErr
			}
			if targetErr != nil {
				return targetErr
			}

			diffs[i] = s.differ.DiffTable(sourceRows, targetRows, tc.PrimaryKey, tc.Name)
			s.log.Debug("Table diffed",
				zap.String("table", tc.Name),
				zap.Int("source_rows", len(sourceRows)),
				zap.Int("target_rows", len(targetRows)),
				zap.Int("inserts", len(diffs[i].Inserts)),
				zap.Int("updates", len(diffs[i].Updates)),
				zap.Int("deletes", len(diffs[i].Deletes)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewChangeset(sourceSchema, targetSchema, driver, diffs), nil
}
