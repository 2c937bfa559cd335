// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkrish/concept-engine/pkg/types"
)

func newTestSQLite(t *testing.T) *SQLiteIndex {
	t.Helper()
	s, err := NewSQLiteIndex(types.IndexConfig{
		Backend: types.BackendSQLite,
		Path:    filepath.Join(t.TempDir(), "concepts.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecords() []types.ChunkRecord {
	return []types.ChunkRecord{
		{ID: "diode_0", Topic: "diode", Stage: types.StageDefinition,
			Summary: "a two terminal device", Content: "diode text",
			Embedding: []float32{1, 0, 0}},
		{ID: "diode_1", Topic: "diode", Stage: types.StageWorking,
			Summary: "conducts in one direction", Content: "more diode text",
			Embedding: []float32{0.6, 0.8, 0}},
		{ID: "relay_0", Topic: "relay", Stage: types.StageGeneral,
			Summary: "an electromechanical switch", Content: "relay text",
			Embedding: []float32{0, 1, 0}},
	}
}

func TestSQLiteQueryAscendingDistance(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)
	require.NoError(t, s.Add(ctx, testRecords()))

	matches, err := s.Query(ctx, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "diode", matches[0].Topic)
	assert.Equal(t, types.StageDefinition, matches[0].Stage)
	assert.InDelta(t, 0, matches[0].Distance, 1e-5)

	for i := 1; i < len(matches); i++ {
		assert.LessOrEqual(t, matches[i-1].Distance, matches[i].Distance,
			"matches not in ascending distance order")
	}
}

func TestSQLiteQueryTopK(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)
	require.NoError(t, s.Add(ctx, testRecords()))

	matches, err := s.Query(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestSQLiteQueryEmptyIndex(t *testing.T) {
	s := newTestSQLite(t)
	matches, err := s.Query(context.Background(), []float32{1, 0, 0}, 30)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSQLiteAddRejectsMissingEmbedding(t *testing.T) {
	s := newTestSQLite(t)
	err := s.Add(context.Background(), []types.ChunkRecord{
		{ID: "x_0", Topic: "x"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no embedding")
}

func TestSQLiteCountTopicsRecords(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)
	require.NoError(t, s.Add(ctx, testRecords()))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	topics, err := s.Topics(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"diode", "relay"}, topics)

	records, err := s.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "diode_0", records[0].ID)
	assert.Equal(t, []float32{1, 0, 0}, records[0].Embedding)
}

func TestSQLiteAddReplacesExisting(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)
	require.NoError(t, s.Add(ctx, testRecords()))

	// Re-adding the same IDs must not grow the index.
	require.NoError(t, s.Add(ctx, testRecords()))
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCosineDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, 2},
		{"mismatched lengths", []float32{1, 0}, []float32{1}, 2},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineDistance(tt.a, tt.b), 1e-5)
		})
	}
}
