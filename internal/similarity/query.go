package similarity

import (
	"fmt"

	"github.com/temcen/songmatch/pkg/models"
)

// NeutralDanceability is the danceability used for synthesized mood queries.
const NeutralDanceability = 0.5

// NoExclusion disables self-match exclusion in Rank.
const NoExclusion = -1

// Query is a normalized query vector. Exclude is the catalog index the query
// was taken from, or NoExclusion.
type Query struct {
	Vector  FeatureVector
	Exclude int
}

// ByReference builds a query from an existing catalog entry.
func ByReference(space *Space, id models.Identity) (Query, error) {
	idx, err := space.Lookup(id)
	if err != nil {
		return Query{}, err
	}
	return Query{Vector: space.Vector(idx), Exclude: idx}, nil
}

// ByMood synthesizes a query for mood within a genre view. Tempo is the mean
// raw tempo of the view; the vector is normalized with the space's global
// parameters so it lives in the same space as every candidate.
func ByMood(mood string, view View) (Query, error) {
	profile, err := LookupMood(mood)
	if err != nil {
		return Query{}, err
	}
	if view.Len() == 0 {
		return Query{}, fmt.Errorf("%w: cannot derive tempo for mood %q", ErrEmptyGenre, profile.Name)
	}

	raw := []float64{
		NeutralDanceability,
		profile.Energy,
		view.meanRaw(2),
		profile.Valence,
	}
	v, err := view.space.params.Transform(raw)
	if err != nil {
		return Query{}, err
	}
	return Query{Vector: v, Exclude: NoExclusion}, nil
}

// ByFeatures normalizes an externally supplied raw feature tuple. Values
// outside their documented range are rejected, never clamped.
func ByFeatures(space *Space, raw models.AudioFeatures) (Query, error) {
	if err := raw.Validate(); err != nil {
		return Query{}, fmt.Errorf("%w: %v", ErrContractViolation, err)
	}
	v, err := space.params.Transform(raw.Vector())
	if err != nil {
		return Query{}, err
	}
	return Query{Vector: v, Exclude: NoExclusion}, nil
}
