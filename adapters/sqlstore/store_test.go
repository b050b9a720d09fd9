package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"launchdash/domain/launch"
	"launchdash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open("sqlite", filepath.Join(t.TempDir(), "launches.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	records := []launch.Record{
		{FlightNumber: 7, Site: "VAFB SLC-4E", PayloadMassKg: 500, BoosterVersion: "F9 v1.1", BoosterCategory: "v1.1", Outcome: launch.Failure},
		{FlightNumber: 3, Site: "CCAFS LC-40", PayloadMassKg: 525.5, BoosterVersion: "F9 v1.0", BoosterCategory: "v1.0", Outcome: launch.Success},
	}

	require.NoError(t, store.ReplaceAll(ctx, records))

	ds, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, ds.Records(), "records must come back in import order")
	assert.Equal(t, "database:sqlite3", store.Describe())
}

func TestStoreReplaceAllSwapsTable(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceAll(ctx, []launch.Record{
		{Site: "A", PayloadMassKg: 1, BoosterCategory: "FT", Outcome: launch.Success},
		{Site: "A", PayloadMassKg: 2, BoosterCategory: "FT", Outcome: launch.Success},
	}))
	require.NoError(t, store.ReplaceAll(ctx, []launch.Record{
		{Site: "B", PayloadMassKg: 3, BoosterCategory: "B5", Outcome: launch.Failure},
	}))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStoreRejectsInvalidRecordAtomically(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.ReplaceAll(ctx, []launch.Record{
		{Site: "A", PayloadMassKg: 1, BoosterCategory: "FT", Outcome: launch.Success},
	}))

	err := store.ReplaceAll(ctx, []launch.Record{
		{Site: "B", PayloadMassKg: 1, BoosterCategory: "FT", Outcome: launch.Success},
		{Site: "B", PayloadMassKg: -1, BoosterCategory: "FT", Outcome: launch.Success},
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	ds, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, ds.Sites())
}

func TestStoreLoadEmptyTable(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeDatasetLoad, errors.GetCode(err))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))

	_, err = Open("postgres", "")
	require.Error(t, err)
}
