package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLite_CreateAndGetRun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, RunKindCluster, 120)
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)
	assert.Equal(t, RunStatusRunning, run.Status)
	assert.Equal(t, 120, run.PointCount)

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, RunKindCluster, got.Kind)
	assert.Equal(t, RunStatusRunning, got.Status)
	assert.Equal(t, 120, got.PointCount)
	assert.Nil(t, got.Result)
	assert.Empty(t, got.Error)
}

func TestSQLite_CompleteRun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, RunKindMoran, 50)
	require.NoError(t, err)

	result := map[string]any{"moran_i": 0.42}
	require.NoError(t, st.CompleteRun(ctx, run.ID, result))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusComplete, got.Status)

	var decoded map[string]float64
	require.NoError(t, json.Unmarshal(got.Result, &decoded))
	assert.InDelta(t, 0.42, decoded["moran_i"], 1e-9)
}

func TestSQLite_FailRun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, RunKindHotspot, 10)
	require.NoError(t, err)

	require.NoError(t, st.FailRun(ctx, run.ID, eris.New("value count mismatch")))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusFailed, got.Status)
	assert.Contains(t, got.Error, "value count mismatch")
}

func TestSQLite_CompleteRun_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	err := st.CompleteRun(context.Background(), "no-such-run", map[string]int{"n": 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_GetRun_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetRun(context.Background(), "no-such-run")
	require.Error(t, err)
}

func TestSQLite_ListRuns_Filters(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	c1, err := st.CreateRun(ctx, RunKindCluster, 5)
	require.NoError(t, err)
	_, err = st.CreateRun(ctx, RunKindCluster, 6)
	require.NoError(t, err)
	m1, err := st.CreateRun(ctx, RunKindMoran, 7)
	require.NoError(t, err)

	require.NoError(t, st.CompleteRun(ctx, c1.ID, [][]int{{0, 1}}))

	all, err := st.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	clusters, err := st.ListRuns(ctx, RunFilter{Kind: RunKindCluster})
	require.NoError(t, err)
	assert.Len(t, clusters, 2)

	complete, err := st.ListRuns(ctx, RunFilter{Status: RunStatusComplete})
	require.NoError(t, err)
	require.Len(t, complete, 1)
	assert.Equal(t, c1.ID, complete[0].ID)

	moranRunning, err := st.ListRuns(ctx, RunFilter{Kind: RunKindMoran, Status: RunStatusRunning})
	require.NoError(t, err)
	require.Len(t, moranRunning, 1)
	assert.Equal(t, m1.ID, moranRunning[0].ID)
}

func TestSQLite_ListRuns_Limit(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := st.CreateRun(ctx, RunKindAnalyze, i)
		require.NoError(t, err)
	}

	runs, err := st.ListRuns(ctx, RunFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSQLite_ListRuns_Empty(t *testing.T) {
	st := newTestSQLiteStore(t)

	runs, err := st.ListRuns(context.Background(), RunFilter{})
	require.NoError(t, err)
	assert.Empty(t, runs)
}
