// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hkrish/concept-engine/pkg/types"
)

// SQLiteIndex is a sqlite-backed semantic index. Embeddings are stored as
// JSON arrays and queries run an exhaustive cosine scan, which is fine at
// the corpus sizes this system indexes (thousands of chunks). WAL mode
// allows concurrent read queries across requests.
type SQLiteIndex struct {
	db *sql.DB
}

// NewSQLiteIndex opens or creates the index database at cfg.Path and
// creates the schema if it does not exist.
func NewSQLiteIndex(cfg types.IndexConfig) (*SQLiteIndex, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteIndex{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}

func (s *SQLiteIndex) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			stage TEXT NOT NULL,
			summary TEXT,
			content TEXT,
			embedding TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_topic ON chunks(topic)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Add inserts or replaces chunk records inside one transaction.
func (s *SQLiteIndex) Add(ctx context.Context, records []types.ChunkRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO chunks (id, topic, stage, summary, content, embedding)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if len(rec.Embedding) == 0 {
			return fmt.Errorf("record %s has no embedding", rec.ID)
		}
		embJSON, err := json.Marshal(rec.Embedding)
		if err != nil {
			return fmt.Errorf("encoding embedding for %s: %w", rec.ID, err)
		}
		_, err = stmt.ExecContext(ctx,
			rec.ID, rec.Topic, string(rec.Stage), rec.Summary, rec.Content, string(embJSON))
		if err != nil {
			return fmt.Errorf("inserting chunk %s: %w", rec.ID, err)
		}
	}
	return tx.Commit()
}

// Query scans every stored embedding, scores it against the query vector,
// and returns the k nearest chunks sorted by ascending distance.
func (s *SQLiteIndex) Query(ctx context.Context, embedding []float32, k int) ([]types.ChunkMatch, error) {
	if k <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT topic, stage, summary, embedding FROM chunks`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var matches []types.ChunkMatch
	for rows.Next() {
		var topic, stage, embJSON string
		var summary sql.NullString
		if err := rows.Scan(&topic, &stage, &summary, &embJSON); err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}

		var emb []float32
		if err := json.Unmarshal([]byte(embJSON), &emb); err != nil {
			return nil, fmt.Errorf("decoding embedding for topic %s: %w", topic, err)
		}

		matches = append(matches, types.ChunkMatch{
			Topic:    topic,
			Stage:    types.ParseStage(stage),
			Summary:  summary.String,
			Distance: cosineDistance(embedding, emb),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunk rows: %w", err)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// Count returns the number of indexed chunks.
func (s *SQLiteIndex) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}

// Topics returns the distinct topics present in the index, sorted.
func (s *SQLiteIndex) Topics(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT topic FROM chunks ORDER BY topic`)
	if err != nil {
		return nil, fmt.Errorf("querying topics: %w", err)
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scanning topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// Records returns every indexed chunk, for export.
func (s *SQLiteIndex) Records(ctx context.Context) ([]types.ChunkRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, stage, summary, content, embedding FROM chunks ORDER BY topic, id`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []types.ChunkRecord
	for rows.Next() {
		var rec types.ChunkRecord
		var stage, embJSON string
		var summary, content sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Topic, &stage, &summary, &content, &embJSON); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec.Stage = types.ParseStage(stage)
		rec.Summary = summary.String
		rec.Content = content.String
		if err := json.Unmarshal([]byte(embJSON), &rec.Embedding); err != nil {
			return nil, fmt.Errorf("decoding embedding for %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
