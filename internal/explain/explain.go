// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package explain turns a topic query and a study duration into a
// stage-ordered, word-budgeted explanation plus a ranked list of related
// topics, using nearest-neighbor matches from a semantic chunk index.
package explain

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/hkrish/concept-engine/internal/index"
	"github.com/hkrish/concept-engine/pkg/types"
)

// Engine answers explanation requests against an injected index client
// and embedder. All state is request-scoped; the Engine itself is safe
// to share across concurrent requests as long as the index client
// supports concurrent reads.
type Engine struct {
	index    index.Client
	embedder index.Embedder
	shuffle  func(n int, swap func(i, j int))
}

// New constructs an Engine using the system randomness source for the
// related-topic exploration pass.
func New(idx index.Client, emb index.Embedder) *Engine {
	return NewWithShuffle(idx, emb, rand.Shuffle)
}

// NewWithShuffle constructs an Engine with an injected shuffle so tests
// can make the exploration pass deterministic.
func NewWithShuffle(idx index.Client, emb index.Embedder, shuffle func(n int, swap func(i, j int))) *Engine {
	return &Engine{index: idx, embedder: emb, shuffle: shuffle}
}

// Explain produces the full response for one request. The explanation
// and the related-topic list each embed the query and query the index
// independently. Upstream embedding or index failures propagate to the
// caller; zero matches are a normal outcome and yield the fallback
// sentence and an empty topic list. timeMinutes is assumed validated
// positive by the caller.
func (e *Engine) Explain(ctx context.Context, query string, timeMinutes int) (types.Explanation, error) {
	explanation, err := e.explanation(ctx, query, timeMinutes)
	if err != nil {
		return types.Explanation{}, err
	}

	related, err := e.relatedTopics(ctx, query)
	if err != nil {
		return types.Explanation{}, err
	}

	return types.Explanation{
		Topic:         query,
		TimeMinutes:   timeMinutes,
		Explanation:   explanation,
		RelatedTopics: related,
	}, nil
}

func (e *Engine) explanation(ctx context.Context, query string, timeMinutes int) (string, error) {
	embedding, err := e.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embedding query: %w", err)
	}

	matches, err := e.index.Query(ctx, embedding, topKExplanation)
	if err != nil {
		return "", fmt.Errorf("querying index for explanation: %w", err)
	}

	return assembleExplanation(query, timeMinutes, matches), nil
}

func (e *Engine) relatedTopics(ctx context.Context, query string) ([]string, error) {
	embedding, err := e.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	matches, err := e.index.Query(ctx, embedding, topKRelatedSearch)
	if err != nil {
		return nil, fmt.Errorf("querying index for related topics: %w", err)
	}

	return rankRelatedTopics(query, matches, e.shuffle), nil
}
