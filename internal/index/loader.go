// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/hkrish/concept-engine/pkg/types"
)

// LoadSummary holds counts from an index load run.
type LoadSummary struct {
	Loaded   int
	Embedded int
	Skipped  int
}

// Total returns the number of records processed.
func (s LoadSummary) Total() int {
	return s.Loaded + s.Skipped
}

// chunkFile is the on-disk layout of a chunk record file. The upstream
// pipeline emits records already classified and summarized; this loader
// only materializes them into the index.
type chunkFile struct {
	Chunks []types.ChunkRecord `yaml:"chunks"`
}

// ReadRecords parses a YAML chunk record file.
func ReadRecords(path string) ([]types.ChunkRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chunk file %s: %w", path, err)
	}
	var f chunkFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing chunk file %s: %w", path, err)
	}
	return f.Chunks, nil
}

// Load validates records, embeds any record without a stored vector, and
// writes the batch into the store. Records with a blank topic are skipped.
// Progress lines go to w.
func Load(ctx context.Context, store Store, embedder Embedder, records []types.ChunkRecord, w io.Writer) (LoadSummary, error) {
	var summary LoadSummary
	counts := make(map[string]int)
	batch := make([]types.ChunkRecord, 0, len(records))

	for _, rec := range records {
		if rec.Topic == "" {
			fmt.Fprintf(w, "skipped record with blank topic\n")
			summary.Skipped++
			continue
		}

		rec.Stage = types.ParseStage(string(rec.Stage))
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("%s_%d", rec.Topic, counts[rec.Topic])
		}
		counts[rec.Topic]++

		if len(rec.Embedding) == 0 {
			text := rec.Content
			if text == "" {
				text = rec.Summary
			}
			emb, err := embedder.EmbedQuery(ctx, text)
			if err != nil {
				return summary, fmt.Errorf("embedding record %s: %w", rec.ID, err)
			}
			rec.Embedding = emb
			summary.Embedded++
		}

		batch = append(batch, rec)
		summary.Loaded++
	}

	if len(batch) > 0 {
		if err := store.Add(ctx, batch); err != nil {
			return summary, err
		}
	}

	fmt.Fprintf(w, "loaded: %d (embedded: %d), skipped: %d\n",
		summary.Loaded, summary.Embedded, summary.Skipped)
	return summary, nil
}

// ExportYAML writes every indexed chunk record to w as YAML.
func ExportYAML(ctx context.Context, b Browser, w io.Writer) error {
	records, err := b.Records(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(chunkFile{Chunks: records})
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
