package stats

import (
	"sort"

	"github.com/verte-zerg/lexdrill/internal/model"
)

// HardestWords returns up to top words with the lowest first-attempt
// accuracy. Ties go to the word asked more often, then alphabetically. Words
// that were never missed are left out.
func HardestWords(aggs []model.WordAggregate, top int) []model.WordAggregate {
	candidates := make([]model.WordAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Incorrect > 0 {
			candidates = append(candidates, agg)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai := Accuracy(candidates[i].Correct, candidates[i].Incorrect)
		aj := Accuracy(candidates[j].Correct, candidates[j].Incorrect)
		if ai != aj {
			return ai < aj
		}
		ti := candidates[i].Correct + candidates[i].Incorrect
		tj := candidates[j].Correct + candidates[j].Incorrect
		if ti != tj {
			return ti > tj
		}
		return candidates[i].Word < candidates[j].Word
	})
	if top > 0 && top < len(candidates) {
		candidates = candidates[:top]
	}
	return candidates
}
