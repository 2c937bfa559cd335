// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package explain

import (
	"strings"

	"github.com/hkrish/concept-engine/pkg/types"
)

const (
	// topKExplanation is the match count requested for assembly queries.
	topKExplanation = 30

	// topKRelatedSearch is the match count requested for related-topic
	// queries.
	topKRelatedSearch = 40

	// maxRelatedTiles caps the related-topic list.
	maxRelatedTiles = 12
)

// rankRelatedTopics selects up to maxRelatedTiles distinct related topics
// from a relevance-ordered match batch, excluding the query itself.
//
// Phase 1 walks matches in index order (ascending distance) and takes the
// closest topics, stopping at half the cap so pure semantic proximity
// never fills the whole list. Phase 2 shuffles the distinct topics of the
// same batch and appends until the cap, injecting variety from the
// candidate pool instead of always surfacing the same tiles.
func rankRelatedTopics(query string, matches []types.ChunkMatch, shuffle func(n int, swap func(i, j int))) []string {
	ranked := []string{}
	seen := make(map[string]struct{})
	queryLower := strings.ToLower(query)

	for _, m := range matches {
		if m.Topic == "" {
			continue
		}
		clean := formatTopic(m.Topic)
		if strings.ToLower(clean) == queryLower {
			continue
		}
		if _, dup := seen[clean]; !dup {
			ranked = append(ranked, clean)
			seen[clean] = struct{}{}
		}
		if len(ranked) >= maxRelatedTiles/2 {
			break
		}
	}

	topics := distinctTopics(matches)
	shuffle(len(topics), func(i, j int) {
		topics[i], topics[j] = topics[j], topics[i]
	})

	for _, t := range topics {
		clean := formatTopic(t)
		_, dup := seen[clean]
		if !dup && strings.ToLower(clean) != queryLower {
			ranked = append(ranked, clean)
			seen[clean] = struct{}{}
		}
		if len(ranked) >= maxRelatedTiles {
			break
		}
	}

	return ranked
}

// distinctTopics returns the distinct raw topic names in batch order.
func distinctTopics(matches []types.ChunkMatch) []string {
	seen := make(map[string]struct{})
	var topics []string
	for _, m := range matches {
		if m.Topic == "" {
			continue
		}
		if _, dup := seen[m.Topic]; dup {
			continue
		}
		seen[m.Topic] = struct{}{}
		topics = append(topics, m.Topic)
	}
	return topics
}

// formatTopic converts a raw topic identifier into a display name:
// underscores become spaces and each word is title-cased.
func formatTopic(topic string) string {
	return titleCase(strings.ReplaceAll(topic, "_", " "))
}
