package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"diffly/core/diff"
	"diffly/core/fingerprint"
	"diffly/core/row"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepository struct {
	rows map[string][]row.Map
	fail map[string]error
}

func (s *stubRepository) FetchRows(ctx context.Context, schema, table string, pkCols, excluded []string) ([]row.Map, error) {
	if err, ok := s.fail[table]; ok {
		return nil, err
	}
	return s.rows[table], nil
}

func TestCaptureBuildsArchive(t *testing.T) {
	repo := &stubRepository{rows: map[string][]row.Map{
		"users":  {{"id": float64(1), "name": "alice"}},
		"orders": {{"id": float64(10), "total": 19.99}, {"id": float64(11), "total": 5.0}},
	}}
	svc := NewService(repo)

	archive, err := svc.Capture(context.Background(), "app", []diff.TableConfig{
		{Name: "users", PrimaryKey: []string{"id"}},
		{Name: "orders", PrimaryKey: []string{"id"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "app", archive.Schema)
	assert.NotEmpty(t, archive.CapturedAt)
	assert.Len(t, archive.Tables["users"], 1)
	assert.Len(t, archive.Tables["orders"], 2)
	assert.Equal(t, fingerprint.Compute(repo.rows["users"]), archive.Fingerprints["users"])
	assert.Equal(t, fingerprint.Compute(repo.rows["orders"]), archive.Fingerprints["orders"])
}

func TestCapturePropagatesFetchError(t *testing.T) {
	fetchErr := errors.New("connection reset")
	repo := &stubRepository{
		rows: map[string][]row.Map{"users": {{"id": float64(1)}}},
		fail: map[string]error{"orders": fetchErr},
	}
	svc := NewService(repo)

	archive, err := svc.Capture(context.Background(), "app", []diff.TableConfig{
		{Name: "users", PrimaryKey: []string{"id"}},
		{Name: "orders", PrimaryKey: []string{"id"}},
	})
	require.ErrorIs(t, err, fetchErr)
	assert.Nil(t, archive)
}

func TestCaptureEmptyTableGetsEmptyFingerprint(t *testing.T) {
	repo := &stubRepository{rows: map[string][]row.Map{}}
	svc := NewService(repo)

	archive, err := svc.Capture(context.Background(), "app", []diff.TableConfig{
		{Name: "users", PrimaryKey: []string{"id"}},
	})
	require.NoError(t, err)
	assert.Equal(t, fingerprint.Compute(nil), archive.Fingerprints["users"])
}

func TestArchiveJSONRoundTrip(t *testing.T) {
	archive := &Archive{
		Schema:     "app",
		CapturedAt: "2024-01-02T03:04:05Z",
		Tables: map[string][]row.Map{
			"users": {{"id": float64(1), "name": "alice", "meta": map[string]any{"vip": true}}},
		},
		Fingerprints: map[string]string{"users": fingerprint.Compute([]row.Map{{"id": float64(1)}})},
	}

	data, err := json.Marshal(archive)
	require.NoError(t, err)

	var restored Archive
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, archive.Schema, restored.Schema)
	assert.Equal(t, archive.Fingerprints, restored.Fingerprints)
	assert.True(t, row.Equal(archive.Tables["users"][0], restored.Tables["users"][0]))
}

func TestProviderLookup(t *testing.T) {
	archive := &Archive{
		Tables: map[string][]row.Map{"users": {{"id": float64(1)}}},
	}
	provider := archive.Provider()

	rows, ok := provider.Get("users")
	assert.True(t, ok)
	assert.Len(t, rows, 1)

	_, ok = provider.Get("orders")
	assert.False(t, ok)
}
