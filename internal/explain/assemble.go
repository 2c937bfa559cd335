// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package explain

import (
	"fmt"
	"strings"

	"github.com/hkrish/concept-engine/pkg/types"
)

// wordsPerMinute converts requested study time into the explanation word
// budget.
const wordsPerMinute = 120

// assembleExplanation turns relevance-ranked matches into a stage-ordered,
// word-budgeted explanation. Summaries are cleaned, deduplicated globally
// across stages, bucketed by stage, then emitted in canonical stage order.
// Each stage gets floor(maxWords * weight) words; the line that crosses a
// budget is kept whole rather than truncated mid-line, and once the global
// budget is reached no further stages are emitted. The per-stage quota
// keeps a verbose stage (typically "working") from crowding out shorter
// ones.
func assembleExplanation(query string, timeMinutes int, matches []types.ChunkMatch) string {
	maxWords := timeMinutes * wordsPerMinute

	buckets := make(map[types.Stage][]string, len(types.StageOrder))
	seen := make(map[string]struct{})

	for _, m := range matches {
		summary := CleanText(m.Summary)
		if summary == "" {
			continue
		}
		key := normalizeKey(summary)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		stage := types.ParseStage(string(m.Stage))
		buckets[stage] = append(buckets[stage], summary)
	}

	var sections []string
	usedWords := 0

	for _, stage := range types.StageOrder {
		lines := buckets[stage]
		if len(lines) == 0 {
			continue
		}

		stageBudget := int(float64(maxWords) * types.StageWeights[stage])
		stageWords := 0
		var paragraph []string

		for _, line := range lines {
			paragraph = append(paragraph, line)
			w := len(strings.Fields(line))
			stageWords += w
			usedWords += w

			// Budgets are checked after appending: overshoot allowed.
			if stageWords >= stageBudget || usedWords >= maxWords {
				break
			}
		}

		sections = append(sections, "\n"+types.StageTitles[stage]+":\n")
		sections = append(sections, strings.Join(paragraph, " ")+"\n")

		if usedWords >= maxWords {
			break
		}
	}

	if len(sections) == 0 {
		return fmt.Sprintf("%s is an important electronics topic.", query)
	}
	return strings.TrimSpace(strings.Join(sections, "\n"))
}
