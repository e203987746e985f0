package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/temcen/songmatch/internal/services"
	"github.com/temcen/songmatch/internal/similarity"
	"github.com/temcen/songmatch/internal/spotify"
	"github.com/temcen/songmatch/pkg/models"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// errorMappings is checked in order; the first match wins.
var errorMappings = []errorMapping{
	{similarity.ErrNotFound, http.StatusNotFound, "SONG_NOT_FOUND",
		"That song is not in the catalog. Check the title and artist spelling."},
	{similarity.ErrInvalidMood, http.StatusBadRequest, "INVALID_MOOD",
		"Unknown mood. Choose one of: " + strings.Join(similarity.MoodNames(), ", ") + "."},
	{similarity.ErrEmptyGenre, http.StatusNotFound, "EMPTY_GENRE",
		"No songs were found for that genre."},
	{similarity.ErrContractViolation, http.StatusUnprocessableEntity, "INVALID_FEATURES",
		"The request could not be matched: features must be in range and the count positive."},
	{similarity.ErrConfiguration, http.StatusInternalServerError, "CATALOG_INVALID",
		"The catalog cannot be used for similarity search."},
	{spotify.ErrTrackNotFound, http.StatusNotFound, "TRACK_NOT_FOUND",
		"No track matched that search."},
	{spotify.ErrFeaturesUnavailable, http.StatusNotFound, "FEATURES_UNAVAILABLE",
		"Audio features are not available for the matched track."},
	{spotify.ErrMalformedFeatures, http.StatusBadGateway, "MALFORMED_FEATURES",
		"The lookup service returned incomplete audio features."},
	{spotify.ErrUnavailable, http.StatusBadGateway, "LIVE_LOOKUP_FAILED",
		"The lookup service could not be reached. Try again later."},
	{services.ErrCatalogNotLoaded, http.StatusServiceUnavailable, "CATALOG_NOT_LOADED",
		"The catalog is still loading. Try again shortly."},
	{services.ErrLiveLookupDisabled, http.StatusServiceUnavailable, "LIVE_LOOKUP_DISABLED",
		"Live lookups are not configured on this server."},
}

// respondError writes the envelope for err. Unknown errors become a 500 and
// are logged; their text is not exposed.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			c.JSON(m.status, models.NewErrorResponse(m.code, m.message, err.Error()))
			return
		}
	}

	logger.WithError(err).WithField("path", c.FullPath()).Error("Unhandled request error")
	c.JSON(http.StatusInternalServerError, models.NewErrorResponse(
		"INTERNAL_ERROR", "Something went wrong while processing the request.", ""))
}

func respondBadRequest(c *gin.Context, code, message string, err error) {
	c.JSON(http.StatusBadRequest, models.NewErrorResponse(code, message, err.Error()))
}
