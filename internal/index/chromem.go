// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"

	"github.com/hkrish/concept-engine/pkg/types"
)

const defaultCollection = "crs"

// Metadata keys on each indexed document. These match the metadata layout
// the upstream chunking pipeline writes.
const (
	metaTopic   = "topic"
	metaStage   = "stage"
	metaSummary = "summary"
)

// ChromemIndex is a chromem-go backed semantic index. The embedded
// collection supports concurrent read queries without external locking.
type ChromemIndex struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewChromemIndex opens (or creates) a chromem collection at cfg.Path.
// With cfg.InMemory set the index lives in memory only.
func NewChromemIndex(cfg types.IndexConfig) (*ChromemIndex, error) {
	var db *chromem.DB
	var err error
	if cfg.InMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(cfg.Path, false)
		if err != nil {
			return nil, fmt.Errorf("opening chromem database at %s: %w", cfg.Path, err)
		}
	}

	name := cfg.Collection
	if name == "" {
		name = defaultCollection
	}

	// The embedding func is never used: documents arrive with embeddings
	// attached and queries supply their own vector.
	collection, err := db.GetOrCreateCollection(name, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("opening collection %s: %w", name, err)
	}

	return &ChromemIndex{db: db, collection: collection}, nil
}

// Query returns up to k matches sorted by ascending distance. chromem
// reports cosine similarity, so distance is 1 - similarity.
func (c *ChromemIndex) Query(ctx context.Context, embedding []float32, k int) ([]types.ChunkMatch, error) {
	if n := c.collection.Count(); k > n {
		k = n
	}
	if k <= 0 {
		return nil, nil
	}

	results, err := c.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: embedding,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("querying chromem collection: %w", err)
	}

	matches := make([]types.ChunkMatch, 0, len(results))
	for _, r := range results {
		matches = append(matches, types.ChunkMatch{
			Topic:    r.Metadata[metaTopic],
			Stage:    types.ParseStage(r.Metadata[metaStage]),
			Summary:  r.Metadata[metaSummary],
			Distance: 1 - r.Similarity,
		})
	}
	return matches, nil
}

// Add inserts chunk records into the collection. Every record must carry
// an embedding; the loader fills missing ones before calling Add.
func (c *ChromemIndex) Add(ctx context.Context, records []types.ChunkRecord) error {
	docs := make([]chromem.Document, 0, len(records))
	for _, rec := range records {
		if len(rec.Embedding) == 0 {
			return fmt.Errorf("record %s has no embedding", rec.ID)
		}
		docs = append(docs, chromem.Document{
			ID:      rec.ID,
			Content: rec.Content,
			Metadata: map[string]string{
				metaTopic:   rec.Topic,
				metaStage:   string(rec.Stage),
				metaSummary: rec.Summary,
			},
			Embedding: rec.Embedding,
		})
	}
	if len(docs) == 0 {
		return nil
	}
	if err := c.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("adding documents to chromem collection: %w", err)
	}
	return nil
}

// Count returns the number of indexed chunks.
func (c *ChromemIndex) Count(ctx context.Context) (int, error) {
	return c.collection.Count(), nil
}

// Close is a no-op: chromem persists on write and holds no connection.
func (c *ChromemIndex) Close() error { return nil }
