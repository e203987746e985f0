package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temcen/songmatch/pkg/models"
)

func TestByReference(t *testing.T) {
	space := newSpace(t, mixedCatalog())

	q, err := ByReference(space, models.Identity{Title: "bloom"})
	require.NoError(t, err)
	assert.Equal(t, 5, q.Exclude)
	assert.Equal(t, space.Vector(5), q.Vector)

	_, err = ByReference(space, models.Identity{Title: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestByMood_UsesGlobalParametersAndGenreTempo(t *testing.T) {
	space := newSpace(t, mixedCatalog())
	rock := space.Genre("rock")

	q, err := ByMood("Energetic", rock)
	require.NoError(t, err)
	assert.Equal(t, NoExclusion, q.Exclude)

	meanTempo := (160.0 + 140.0 + 150.0) / 3
	want, err := space.Params().Transform([]float64{NeutralDanceability, 0.9, meanTempo, 0.7})
	require.NoError(t, err)
	for j := range want {
		assert.InDelta(t, want[j], q.Vector[j], 1e-12)
	}
}

func TestByMood_Errors(t *testing.T) {
	space := newSpace(t, mixedCatalog())

	_, err := ByMood("sad", space.Genre("polka"))
	assert.ErrorIs(t, err, ErrEmptyGenre)

	_, err = ByMood("furious", space.Genre("rock"))
	assert.ErrorIs(t, err, ErrInvalidMood)
}

func TestByFeatures(t *testing.T) {
	space := newSpace(t, mixedCatalog())

	raw := models.AudioFeatures{Danceability: 0.6, Energy: 0.7, Tempo: 128, Valence: 0.5}
	q, err := ByFeatures(space, raw)
	require.NoError(t, err)
	want, err := space.Params().Transform(raw.Vector())
	require.NoError(t, err)
	assert.Equal(t, want, q.Vector)
	assert.Equal(t, NoExclusion, q.Exclude)
}

func TestByFeatures_RejectsOutOfRange(t *testing.T) {
	space := newSpace(t, mixedCatalog())

	tests := []struct {
		name string
		raw  models.AudioFeatures
	}{
		{"danceability above one", models.AudioFeatures{Danceability: 1.5, Energy: 0.5, Tempo: 120, Valence: 0.5}},
		{"negative energy", models.AudioFeatures{Danceability: 0.5, Energy: -0.1, Tempo: 120, Valence: 0.5}},
		{"zero tempo", models.AudioFeatures{Danceability: 0.5, Energy: 0.5, Tempo: 0, Valence: 0.5}},
		{"valence NaN", models.AudioFeatures{Danceability: 0.5, Energy: 0.5, Tempo: 120, Valence: math.NaN()}},
		{"infinite tempo", models.AudioFeatures{Danceability: 0.5, Energy: 0.5, Tempo: math.Inf(1), Valence: 0.5}},
		{"negative infinite tempo", models.AudioFeatures{Danceability: 0.5, Energy: 0.5, Tempo: math.Inf(-1), Valence: 0.5}},
		{"infinite energy", models.AudioFeatures{Danceability: 0.5, Energy: math.Inf(1), Tempo: 120, Valence: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ByFeatures(space, tt.raw)
			assert.ErrorIs(t, err, ErrContractViolation)
			assert.Equal(t, Query{}, q)
		})
	}
}

func TestLookupMood(t *testing.T) {
	p, err := LookupMood("  HAPPY ")
	require.NoError(t, err)
	assert.Equal(t, MoodProfile{Name: "happy", Energy: 0.8, Valence: 0.9}, p)

	_, err = LookupMood("")
	assert.ErrorIs(t, err, ErrInvalidMood)

	assert.Equal(t, []string{"chill", "energetic", "happy", "sad"}, MoodNames())
}
