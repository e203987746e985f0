package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/temcen/songmatch/internal/services"
	"github.com/temcen/songmatch/pkg/models"
)

type RecommendationHandler struct {
	service   services.RecommendationServiceInterface
	validator *validator.Validate
	logger    *logrus.Logger
}

func NewRecommendationHandler(service services.RecommendationServiceInterface, logger *logrus.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// Similar handles GET /songs/similar?title=&artist=&count=.
func (h *RecommendationHandler) Similar(c *gin.Context) {
	var req models.SimilarSongsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "INVALID_QUERY", "Invalid query parameters", err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		respondBadRequest(c, "VALIDATION_FAILED", "A song title is required and count must be between 1 and 100", err)
		return
	}

	resp, err := h.service.SimilarTo(c.Request.Context(), models.Identity{Title: req.Title, Artist: req.Artist}, req.Count)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Mood handles GET /recommendations/mood?mood=&genre=&count=.
func (h *RecommendationHandler) Mood(c *gin.Context) {
	var req models.MoodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "INVALID_QUERY", "Invalid query parameters", err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		respondBadRequest(c, "VALIDATION_FAILED", "Both mood and genre are required and count must be between 1 and 100", err)
		return
	}

	resp, err := h.service.ByMood(c.Request.Context(), req.Mood, req.Genre, req.Count)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Features handles POST /recommendations/features with a raw feature tuple.
func (h *RecommendationHandler) Features(c *gin.Context) {
	var req models.FeaturesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Debug("Invalid JSON in features request")
		respondBadRequest(c, "INVALID_JSON", "Invalid JSON format", err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		respondBadRequest(c, "VALIDATION_FAILED", "All four audio features are required", err)
		return
	}

	resp, err := h.service.ByFeatures(c.Request.Context(), req.Features(), req.Count)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Live handles GET /recommendations/live?q=&count=.
func (h *RecommendationHandler) Live(c *gin.Context) {
	var req models.LiveRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "INVALID_QUERY", "Invalid query parameters", err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		respondBadRequest(c, "VALIDATION_FAILED", "A search query is required and count must be between 1 and 100", err)
		return
	}

	resp, err := h.service.FromLive(c.Request.Context(), req.Query, req.Count)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
