package snapshot

import (
	"context"
	"time"

	"diffly/core/diff"
	"diffly/core/fingerprint"
	"diffly/core/row"

	"golang.org/x/sync/errgroup"
)

// Archive is the persisted interchange form of one baseline snapshot:
// pure data, no behavior, JSON round-trippable.
type Archive struct {
	Schema     string `json:"schema"`
	CapturedAt string `json:"captured_at"`
	// Tables maps table name to the rows captured for it.
	Tables map[string][]row.Map `json:"tables"`
	// Fingerprints maps table name to the content fingerprint computed
	// from its captured rows.
	Fingerprints map[string]string `json:"fingerprints"`
}

// Provider wraps the archive's rows as a baseline lookup for the conflict
// service.
func (a *Archive) Provider() MapProvider {
	return MapProvider(a.Tables)
}

// MapProvider is an in-memory baseline provider backed by a table→rows
// map. It implements conflict.BaselineProvider.
type MapProvider map[string][]row.Map

// Get returns the baseline rows for a table, or false if none were
// captured.
func (m MapProvider) Get(table string) ([]row.Map, bool) {
	rows, ok := m[table]
	return rows, ok
}

// Service captures point-in-time snapshots of one database side.
type Service struct {
	repo diff.RowRepository
}

// NewService wires a snapshot service over the (typically target) side's
// row repository.
func NewService(repo diff.RowRepository) *Service {
	return &Service{repo: repo}
}

// Capture fetches every configured table's rows concurrently and bundles
// them with their fingerprints. A fetch failure for any table fails the
// capture; a partial baseline would silently weaken later conflict
// detection.
func (s *Service) Capture(ctx context.Context, schema string, tables []diff.TableConfig) (*Archive, error) {
	g, ctx := errgroup.WithContext(ctx)

	rowsByTable := make([][]row.Map, len(tables))
	for i, tc := range tables {
		g.Go(func() error {
			rows, err := s.repo.FetchRows(ctx, schema, tc.Name, tc.PrimaryKey, tc.ExcludedColumns)
			if err != nil {
				return err
			}
			rowsByTable[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	archive := &Archive{
		Schema:       schema,
		CapturedAt:   time.Now().UTC().Format(time.RFC3339),
		Tables:       make(map[string][]row.Map, len(tables)),
		Fingerprints: make(map[string]string, len(tables)),
	}
	for i, tc := range tables {
		archive.Tables[tc.Name] = rowsByTable[i]
		archive.Fingerprints[tc.Name] = fingerprint.Compute(rowsByTable[i])
	}
	return archive, nil
}
