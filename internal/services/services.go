package services

import (
	"github.com/sirupsen/logrus"

	"github.com/temcen/songmatch/internal/config"
)

type Services struct {
	Health         *HealthService
	Recommendation *RecommendationService
}

// New wires the services. live may be nil when the live lookup is disabled.
func New(cfg *config.Config, logger *logrus.Logger, loader CatalogLoader, live LiveLookup) *Services {
	recommendation := NewRecommendationService(loader, live, &cfg.Recommendation, logger)

	return &Services{
		Health:         NewHealthService(logger, recommendation),
		Recommendation: recommendation,
	}
}
