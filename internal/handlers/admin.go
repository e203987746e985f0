package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/temcen/songmatch/internal/middleware"
	"github.com/temcen/songmatch/internal/services"
)

// AdminHandler handles admin-related requests
type AdminHandler struct {
	logger  *logrus.Logger
	service services.RecommendationServiceInterface
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(logger *logrus.Logger, service services.RecommendationServiceInterface) *AdminHandler {
	return &AdminHandler{
		logger:  logger,
		service: service,
	}
}

// Reload rebuilds the feature space from the catalog source.
func (h *AdminHandler) Reload(c *gin.Context) {
	stats, err := h.service.Reload(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Warn("Admin reload failed")
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"songs":   stats.Kept,
		"subject": c.GetString(middleware.AdminSubjectKey),
	}).Info("Catalog reloaded via admin endpoint")
	c.JSON(http.StatusOK, gin.H{
		"status": "reloaded",
		"load":   stats,
	})
}
