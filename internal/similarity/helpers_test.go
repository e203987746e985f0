package similarity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temcen/songmatch/pkg/models"
)

func song(title, artist, genre string, d, e, t, v float64) models.Song {
	return models.Song{
		Identity: models.Identity{Title: title, Artist: artist, Genre: genre},
		Features: models.AudioFeatures{Danceability: d, Energy: e, Tempo: t, Valence: v},
	}
}

func exampleCatalog() []models.Song {
	return []models.Song{
		song("A", "Artist One", "pop", 0.8, 0.8, 120, 0.9),
		song("B", "Artist Two", "blues", 0.1, 0.2, 90, 0.1),
		song("C", "Artist Three", "pop", 0.75, 0.78, 118, 0.88),
	}
}

func mixedCatalog() []models.Song {
	return []models.Song{
		song("Sunrise", "Lumen", "pop", 0.72, 0.81, 124, 0.86),
		song("Rainfall", "Grey Skies", "acoustic", 0.31, 0.22, 78, 0.18),
		song("Overdrive", "Voltage", "rock", 0.55, 0.95, 160, 0.62),
		song("Drift", "Lowtide", "chill", 0.48, 0.35, 92, 0.52),
		song("Sunrise", "Another Band", "rock", 0.40, 0.60, 140, 0.30),
		song("Bloom", "Petal", "pop", 0.66, 0.58, 110, 0.74),
		song("Static", "Voltage", "rock", 0.52, 0.88, 150, 0.41),
	}
}

func newSpace(t *testing.T, entries []models.Song) *Space {
	t.Helper()
	s, err := NewSpace(entries)
	require.NoError(t, err)
	return s
}

func titles(results []RankedResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Song.Title
	}
	return out
}
