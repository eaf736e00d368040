package recommendation

import (
	"sort"

	"github.com/artpar/deploykit/internal/core/project"
	"github.com/artpar/deploykit/internal/core/recipe"
)

// =============================================================================
// Recommendation Generation and Ranking
// =============================================================================

// Generate builds one recommendation per applicable recipe and returns them
// ranked. The scorer decides applicability and priority; this function only
// assembles and orders the results.
func Generate(definitions []*recipe.Definition, proj *project.Definition, scorer project.Scorer) []*Recommendation {
	recommendations := make([]*Recommendation, 0, len(definitions))
	for _, def := range definitions {
		priority, applicable := scorer.Score(def, proj)
		if !applicable {
			continue
		}
		recommendations = append(recommendations, New(def, proj, priority))
	}
	Rank(recommendations)
	return recommendations
}

// Rank orders recommendations by descending computed priority, breaking ties
// on recipe id so the order is stable across runs.
func Rank(recommendations []*Recommendation) {
	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].ComputedPriority != recommendations[j].ComputedPriority {
			return recommendations[i].ComputedPriority > recommendations[j].ComputedPriority
		}
		return recommendations[i].Recipe.ID < recommendations[j].Recipe.ID
	})
}
