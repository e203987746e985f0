package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/temcen/songmatch/internal/catalog"
	"github.com/temcen/songmatch/internal/services"
	"github.com/temcen/songmatch/pkg/models"
)

// MockRecommendationService is a mock implementation
type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) SimilarTo(ctx context.Context, id models.Identity, n int) (*models.RecommendationResponse, error) {
	args := m.Called(ctx, id, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecommendationResponse), args.Error(1)
}

func (m *MockRecommendationService) ByMood(ctx context.Context, mood, genre string, n int) (*models.RecommendationResponse, error) {
	args := m.Called(ctx, mood, genre, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecommendationResponse), args.Error(1)
}

func (m *MockRecommendationService) ByFeatures(ctx context.Context, raw models.AudioFeatures, n int) (*models.RecommendationResponse, error) {
	args := m.Called(ctx, raw, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecommendationResponse), args.Error(1)
}

func (m *MockRecommendationService) FromLive(ctx context.Context, query string, n int) (*models.LiveRecommendationResponse, error) {
	args := m.Called(ctx, query, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LiveRecommendationResponse), args.Error(1)
}

func (m *MockRecommendationService) TopInGenre(ctx context.Context, genre string, n int) (*models.GenreChartResponse, error) {
	args := m.Called(ctx, genre, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GenreChartResponse), args.Error(1)
}

func (m *MockRecommendationService) Genres(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRecommendationService) Sample(ctx context.Context, n int) ([]models.Identity, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Identity), args.Error(1)
}

func (m *MockRecommendationService) Stats(ctx context.Context) (*services.CatalogStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CatalogStats), args.Error(1)
}

func (m *MockRecommendationService) Moods() []models.MoodInfo {
	args := m.Called()
	return args.Get(0).([]models.MoodInfo)
}

func (m *MockRecommendationService) Reload(ctx context.Context) (*catalog.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Stats), args.Error(1)
}
