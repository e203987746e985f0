package services

import (
	"context"

	"github.com/temcen/songmatch/internal/catalog"
	"github.com/temcen/songmatch/pkg/models"
)

// CatalogLoader produces the filtered catalog a feature space is built from.
type CatalogLoader interface {
	Load(ctx context.Context) ([]models.Song, catalog.Stats, error)
}

// LiveLookup resolves a free-text query to a track with raw audio features.
type LiveLookup interface {
	Lookup(ctx context.Context, query string) (*models.LiveTrack, error)
}

// RecommendationServiceInterface is the query surface used by the HTTP and
// CLI front ends.
type RecommendationServiceInterface interface {
	SimilarTo(ctx context.Context, id models.Identity, n int) (*models.RecommendationResponse, error)
	ByMood(ctx context.Context, mood, genre string, n int) (*models.RecommendationResponse, error)
	ByFeatures(ctx context.Context, raw models.AudioFeatures, n int) (*models.RecommendationResponse, error)
	FromLive(ctx context.Context, query string, n int) (*models.LiveRecommendationResponse, error)
	TopInGenre(ctx context.Context, genre string, n int) (*models.GenreChartResponse, error)
	Genres(ctx context.Context) ([]string, error)
	Sample(ctx context.Context, n int) ([]models.Identity, error)
	Stats(ctx context.Context) (*CatalogStats, error)
	Moods() []models.MoodInfo
	Reload(ctx context.Context) (*catalog.Stats, error)
}
