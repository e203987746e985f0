package similarity

import "errors"

// Errors returned by the recommender core. Details are attached with
// fmt.Errorf("%w: ...") so callers match with errors.Is.
var (
	// ErrConfiguration is returned when the catalog cannot define a feature
	// space: no rows, or a feature column with zero variance.
	ErrConfiguration = errors.New("configuration error")

	// ErrNotFound is returned when no catalog entry matches an identity.
	ErrNotFound = errors.New("song not found")

	// ErrInvalidMood is returned for a mood name outside the registry.
	ErrInvalidMood = errors.New("invalid mood")

	// ErrEmptyGenre is returned when a genre filter selects no songs.
	ErrEmptyGenre = errors.New("genre has no songs")

	// ErrContractViolation is returned for malformed caller input: wrong
	// dimensionality, out-of-range features or a non-positive result count.
	ErrContractViolation = errors.New("contract violation")
)
