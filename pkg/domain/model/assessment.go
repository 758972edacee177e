package model

import (
	"math"

	"github.com/biaslens-dev/biaslens/pkg/domain/types"
)

// CategoryScores maps each detected bias category to an integer score
// in [0,100]. A category with no surviving indicators is absent from
// the map, which is distinct from a detected-but-low-confidence score
// near zero.
type CategoryScores map[types.Category]int

// Assessment is the bounded risk assessment derived from category
// scores. Overall equals the rounded mean of the category scores, or 0
// when no categories are present.
type Assessment struct {
	Overall    int             `json:"overall" firestore:"overall"`
	Level      types.RiskLevel `json:"level" firestore:"level"`
	Categories CategoryScores  `json:"categories" firestore:"categories"`
}

// NewAssessment computes the overall score and risk level from the
// given category scores.
func NewAssessment(scores CategoryScores) *Assessment {
	if len(scores) == 0 {
		return &Assessment{
			Overall:    0,
			Level:      types.RiskLevelLow,
			Categories: CategoryScores{},
		}
	}

	sum := 0
	for _, s := range scores {
		sum += s
	}
	overall := int(math.Round(float64(sum) / float64(len(scores))))

	return &Assessment{
		Overall:    overall,
		Level:      types.RiskLevelForScore(overall),
		Categories: scores,
	}
}
