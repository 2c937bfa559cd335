// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package explain

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hkrish/concept-engine/pkg/types"
)

// noShuffle keeps the exploration pass in batch order.
func noShuffle(n int, swap func(i, j int)) {}

// reverseShuffle reverses the slice, proving the injected source is used.
func reverseShuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

func relatedMatches(topics ...string) []types.ChunkMatch {
	matches := make([]types.ChunkMatch, len(topics))
	for i, topic := range topics {
		matches[i] = types.ChunkMatch{Topic: topic, Distance: float32(i) * 0.1}
	}
	return matches
}

func TestRankRelatedEmptyMatches(t *testing.T) {
	got := rankRelatedTopics("anything", nil, noShuffle)
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestRankRelatedExcludesQueryTopic(t *testing.T) {
	// Query topic matches case-insensitively after formatting.
	matches := relatedMatches("zener_diode", "rectifier", "zener diode")
	got := rankRelatedTopics("Zener Diode", matches, noShuffle)

	if len(got) != 1 || got[0] != "Rectifier" {
		t.Errorf("rankRelatedTopics() = %v, want [Rectifier]", got)
	}
}

func TestRankRelatedRelevancePassOrder(t *testing.T) {
	// A and B are the closest matches; C equals the query and is skipped.
	matches := relatedMatches("amplifier", "oscillator", "filter")
	got := rankRelatedTopics("filter", matches, noShuffle)

	if len(got) < 2 || got[0] != "Amplifier" || got[1] != "Oscillator" {
		t.Errorf("phase 1 order = %v, want [Amplifier Oscillator ...]", got)
	}
	for _, topic := range got {
		if strings.EqualFold(topic, "filter") {
			t.Errorf("query topic leaked into results: %v", got)
		}
	}
}

func TestRankRelatedCapAndNoDuplicates(t *testing.T) {
	topics := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		topics = append(topics, fmt.Sprintf("topic_%d", i))
	}
	// Duplicate matches for the same topics, as multiple chunks per
	// document produce.
	topics = append(topics, topics...)
	got := rankRelatedTopics("something else", relatedMatches(topics...), noShuffle)

	if len(got) != maxRelatedTiles {
		t.Errorf("len = %d, want %d", len(got), maxRelatedTiles)
	}
	seen := make(map[string]bool)
	for _, topic := range got {
		if seen[topic] {
			t.Errorf("duplicate entry %q in %v", topic, got)
		}
		seen[topic] = true
	}
}

func TestRankRelatedPhaseOneStopsAtHalfCap(t *testing.T) {
	topics := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		topics = append(topics, fmt.Sprintf("topic_%d", i))
	}
	got := rankRelatedTopics("other", relatedMatches(topics...), reverseShuffle)

	// Phase 1 fills exactly half the cap in index order.
	want := []string{"Topic 0", "Topic 1", "Topic 2", "Topic 3", "Topic 4", "Topic 5"}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("phase 1 slot %d = %q, want %q (full: %v)", i, got[i], w, got)
		}
	}
	// Phase 2 ran in reversed order, so the back half starts from the
	// highest-numbered topics.
	if got[6] != "Topic 19" {
		t.Errorf("phase 2 ignored injected shuffle: got[6] = %q, want Topic 19", got[6])
	}
}

func TestRankRelatedExplorationFillsRemainder(t *testing.T) {
	// Fewer distinct topics than the cap: every distinct topic except the
	// query appears exactly once.
	matches := relatedMatches("a", "b", "c", "query", "a", "b")
	got := rankRelatedTopics("query", matches, noShuffle)

	if len(got) != 3 {
		t.Errorf("len = %d, want 3: %v", len(got), got)
	}
}
