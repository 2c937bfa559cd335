// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ChunkMatch is one nearest-neighbor result from the semantic index.
// Matches are immutable once returned and live only for the duration of
// a single assembly or ranking pass.
type ChunkMatch struct {
	// Topic identifies the source document the chunk was cut from.
	Topic string `json:"topic" yaml:"topic"`

	// Stage is the chunk's learning-stage label.
	Stage Stage `json:"stage" yaml:"stage"`

	// Summary is the pre-generated summary of the chunk. May be empty.
	Summary string `json:"summary" yaml:"summary"`

	// Distance is the similarity distance to the query vector; lower is
	// more relevant. Only meaningful for related-topic queries.
	Distance float32 `json:"distance" yaml:"distance"`
}

// ChunkRecord is one indexed chunk: the raw text plus the metadata the
// upstream pipeline resolved for it (topic, stage, summary). Embedding is
// optional in load files; the loader fills it in when absent.
type ChunkRecord struct {
	// ID is a stable identifier, conventionally "{topic}_{n}". The loader
	// assigns one when empty.
	ID string `json:"id" yaml:"id"`

	// Topic identifies the source document. Required.
	Topic string `json:"topic" yaml:"topic"`

	// Stage is the chunk's learning-stage label.
	Stage Stage `json:"stage" yaml:"stage"`

	// Summary is the pre-generated chunk summary.
	Summary string `json:"summary" yaml:"summary"`

	// Content is the chunk text that gets embedded.
	Content string `json:"content" yaml:"content"`

	// Embedding is the chunk's vector. Omitted from load files when the
	// loader should embed Content itself.
	Embedding []float32 `json:"embedding,omitempty" yaml:"embedding,omitempty"`
}

// Explanation is the engine's response for one query: the assembled,
// stage-ordered explanation text plus ranked related topics.
type Explanation struct {
	Topic         string   `json:"topic" yaml:"topic"`
	TimeMinutes   int      `json:"time_minutes" yaml:"time_minutes"`
	Explanation   string   `json:"explanation" yaml:"explanation"`
	RelatedTopics []string `json:"related_topics" yaml:"related_topics"`
}
