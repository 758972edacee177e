package detector

import (
	"math"

	"github.com/biaslens-dev/biaslens/pkg/domain/model"
	"github.com/biaslens-dev/biaslens/pkg/domain/types"
)

// aggregateScores groups indicators by category and computes each
// category score as the rounded mean of its confidences, scaled to
// [0,100]. Categories with no indicators are absent from the map.
func aggregateScores(indicators []*model.Indicator) model.CategoryScores {
	sums := map[types.Category]float64{}
	counts := map[types.Category]int{}
	for _, ind := range indicators {
		sums[ind.Category] += ind.Confidence
		counts[ind.Category]++
	}

	scores := make(model.CategoryScores, len(sums))
	for category, sum := range sums {
		mean := sum / float64(counts[category])
		scores[category] = int(math.Round(mean * 100))
	}
	return scores
}
