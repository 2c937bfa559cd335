// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Stage is the pedagogical category assigned to an indexed chunk. Stages
// organize explanation output and carry the per-stage word budget weight.
type Stage string

const (
	StageDefinition    Stage = "definition"
	StageTypes         Stage = "types"
	StageConstruction  Stage = "construction"
	StageWorking       Stage = "working"
	StageFormulas      Stage = "formulas"
	StageApplications  Stage = "applications"
	StageAdvantages    Stage = "advantages"
	StageDisadvantages Stage = "disadvantages"
	StageGeneral       Stage = "general"
)

// StageOrder is the canonical order in which stage sections appear in an
// assembled explanation, regardless of match order.
var StageOrder = []Stage{
	StageDefinition, StageTypes, StageConstruction, StageWorking,
	StageFormulas, StageApplications, StageAdvantages,
	StageDisadvantages, StageGeneral,
}

// StageTitles maps each stage to its human-readable section heading.
var StageTitles = map[Stage]string{
	StageDefinition:    "Definition",
	StageTypes:         "Types",
	StageConstruction:  "Construction / Structure",
	StageWorking:       "Working Principle",
	StageFormulas:      "Key Formulas",
	StageApplications:  "Applications",
	StageAdvantages:    "Advantages",
	StageDisadvantages: "Limitations",
	StageGeneral:       "Additional Notes",
}

// StageWeights allocates the explanation word budget across stages.
// The weights sum to 1.0 over StageOrder.
var StageWeights = map[Stage]float64{
	StageDefinition:    0.12,
	StageTypes:         0.12,
	StageConstruction:  0.14,
	StageWorking:       0.20,
	StageFormulas:      0.14,
	StageApplications:  0.14,
	StageAdvantages:    0.07,
	StageDisadvantages: 0.07,
	StageGeneral:       0.10,
}

// ParseStage maps a raw metadata value onto a known Stage. Unknown or
// missing values fall back to StageGeneral rather than being rejected.
func ParseStage(s string) Stage {
	stage := Stage(s)
	if _, ok := StageWeights[stage]; ok {
		return stage
	}
	return StageGeneral
}
