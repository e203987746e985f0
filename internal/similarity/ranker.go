package similarity

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/temcen/songmatch/pkg/models"
)

// RankedResult pairs a catalog entry with its similarity to a query.
type RankedResult struct {
	Index      int
	Song       models.Song
	Similarity float64
}

// CosineSimilarity returns a·b / (|a||b|). A zero-norm operand yields 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

// Rank scores every row of view against query and returns the n most similar
// entries. Ties keep catalog order. The row at exclude is omitted entirely.
// Fewer than n results are returned when the view has fewer candidates.
func Rank(query FeatureVector, view View, exclude int, n int) ([]RankedResult, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: result count must be positive, got %d", ErrContractViolation, n)
	}

	q := query[:]
	results := make([]RankedResult, 0, view.Len())
	for _, i := range view.indices {
		if i == exclude {
			continue
		}
		results = append(results, RankedResult{
			Index:      i,
			Similarity: CosineSimilarity(q, view.space.matrix.RawRowView(i)),
		})
	}

	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Similarity != results[b].Similarity {
			return results[a].Similarity > results[b].Similarity
		}
		return results[a].Index < results[b].Index
	})

	if len(results) > n {
		results = results[:n]
	}
	for k := range results {
		results[k].Song = view.space.entries[results[k].Index]
	}
	return results, nil
}
