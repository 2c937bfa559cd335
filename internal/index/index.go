// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index provides the semantic index client consumed by the
// explanation engine, with interchangeable chromem and sqlite backends
// behind a common interface.
package index

import (
	"context"
	"math"

	"github.com/hkrish/concept-engine/pkg/types"
)

// Client answers nearest-neighbor queries against the chunk index.
// Implementations must be safe for concurrent read queries; the engine
// opens one client at startup and shares it across requests.
type Client interface {
	// Query returns up to k matches sorted by ascending distance
	// (lower = more similar). An empty index yields zero matches, not
	// an error.
	Query(ctx context.Context, embedding []float32, k int) ([]types.ChunkMatch, error)
}

// Embedder turns text into a query vector. langchaingo embedders satisfy
// this directly.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Store is a Client with a write path, used by the loader and by tests.
// The serving path never writes.
type Store interface {
	Client

	// Add inserts or replaces chunk records.
	Add(ctx context.Context, records []types.ChunkRecord) error

	// Count returns the number of indexed chunks.
	Count(ctx context.Context) (int, error)

	Close() error
}

// Browser lists index contents. Only the sqlite backend supports
// browsing; chromem does not expose document enumeration.
type Browser interface {
	// Topics returns the distinct topics present in the index, sorted.
	Topics(ctx context.Context) ([]string, error)

	// Records returns all indexed chunks, for export.
	Records(ctx context.Context) ([]types.ChunkRecord, error)
}

// cosineDistance returns 1 - cosine similarity between two vectors, so
// that lower means more similar, matching the index contract. Mismatched
// or zero-length vectors map to the maximum distance.
func cosineDistance(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 2
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 2
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return float32(1 - sim)
}
