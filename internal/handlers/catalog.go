package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/temcen/songmatch/internal/services"
	"github.com/temcen/songmatch/pkg/models"
)

const maxListCount = 100

type CatalogHandler struct {
	service services.RecommendationServiceInterface
	logger  *logrus.Logger
}

func NewCatalogHandler(service services.RecommendationServiceInterface, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger,
	}
}

func (h *CatalogHandler) Genres(c *gin.Context) {
	genres, err := h.service.Genres(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"genres": genres, "count": len(genres)})
}

func (h *CatalogHandler) TopInGenre(c *gin.Context) {
	count, ok := parseCount(c)
	if !ok {
		return
	}

	chart, err := h.service.TopInGenre(c.Request.Context(), c.Param("genre"), count)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, chart)
}

func (h *CatalogHandler) Moods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"moods": h.service.Moods()})
}

func (h *CatalogHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *CatalogHandler) Sample(c *gin.Context) {
	count, ok := parseCount(c)
	if !ok {
		return
	}

	songs, err := h.service.Sample(c.Request.Context(), count)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

// parseCount reads the optional count parameter. Zero means the service
// default. It writes a 400 and returns false when the value is unusable.
func parseCount(c *gin.Context) (int, bool) {
	countStr := c.Query("count")
	if countStr == "" {
		return 0, true
	}
	count, err := strconv.Atoi(countStr)
	if err != nil || count < 1 || count > maxListCount {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse(
			"INVALID_COUNT", "count must be a whole number between 1 and 100", countStr))
		return 0, false
	}
	return count, true
}
