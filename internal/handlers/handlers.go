package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/temcen/songmatch/internal/services"
)

type Handlers struct {
	Health         *HealthHandler
	Recommendation *RecommendationHandler
	Catalog        *CatalogHandler
	Admin          *AdminHandler
}

func New(logger *logrus.Logger, services *services.Services) *Handlers {
	return &Handlers{
		Health:         NewHealthHandler(logger, services.Health),
		Recommendation: NewRecommendationHandler(services.Recommendation, logger),
		Catalog:        NewCatalogHandler(services.Recommendation, logger),
		Admin:          NewAdminHandler(logger, services.Recommendation),
	}
}
