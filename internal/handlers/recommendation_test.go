package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/temcen/songmatch/internal/services"
	"github.com/temcen/songmatch/internal/similarity"
	"github.com/temcen/songmatch/internal/spotify"
	"github.com/temcen/songmatch/pkg/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel) // Reduce noise in tests
	return logger
}

func sampleResponse(mode string) *models.RecommendationResponse {
	return &models.RecommendationResponse{
		QueryID: uuid.New(),
		Mode:    mode,
		Recommendations: []models.Recommendation{
			{Position: 1, Title: "Bloom", Artist: "Petal", Genre: "pop", Similarity: 0.99},
			{Position: 2, Title: "Overdrive", Artist: "Voltage", Genre: "rock", Similarity: 0.39},
		},
		GeneratedAt: time.Now(),
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorBody {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestRecommendationHandler_Similar(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockService := new(MockRecommendationService)
	handler := NewRecommendationHandler(mockService, testLogger())

	mockService.On("SimilarTo", mock.Anything, models.Identity{Title: "Sunrise", Artist: "Lumen"}, 2).
		Return(sampleResponse(services.ModeSimilar), nil)
	mockService.On("SimilarTo", mock.Anything, models.Identity{Title: "Sunrise"}, 0).
		Return(sampleResponse(services.ModeSimilar), nil)
	mockService.On("SimilarTo", mock.Anything, models.Identity{Title: "Nope"}, 0).
		Return(nil, fmt.Errorf("%w: %q", similarity.ErrNotFound, "Nope"))

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedCode   string
	}{
		{"title and artist", "?title=Sunrise&artist=Lumen&count=2", http.StatusOK, ""},
		{"default count", "?title=Sunrise", http.StatusOK, ""},
		{"missing title", "?artist=Lumen", http.StatusBadRequest, "VALIDATION_FAILED"},
		{"count too large", "?title=Sunrise&count=500", http.StatusBadRequest, "VALIDATION_FAILED"},
		{"count not a number", "?title=Sunrise&count=many", http.StatusBadRequest, "INVALID_QUERY"},
		{"unknown song", "?title=Nope", http.StatusNotFound, "SONG_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/api/v1/songs/similar", handler.Similar)

			req, _ := http.NewRequest("GET", "/api/v1/songs/similar"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Code)
				return
			}

			var resp models.RecommendationResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Len(t, resp.Recommendations, 2)
			assert.Equal(t, "Bloom", resp.Recommendations[0].Title)
		})
	}
}

func TestRecommendationHandler_Mood(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockService := new(MockRecommendationService)
	handler := NewRecommendationHandler(mockService, testLogger())

	mockService.On("ByMood", mock.Anything, "happy", "pop", 3).Return(sampleResponse(services.ModeMood), nil)
	mockService.On("ByMood", mock.Anything, "grumpy", "pop", 0).Return(nil, similarity.ErrInvalidMood)
	mockService.On("ByMood", mock.Anything, "sad", "polka", 0).Return(nil, similarity.ErrEmptyGenre)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedCode   string
	}{
		{"valid", "?mood=happy&genre=pop&count=3", http.StatusOK, ""},
		{"missing genre", "?mood=happy", http.StatusBadRequest, "VALIDATION_FAILED"},
		{"invalid mood", "?mood=grumpy&genre=pop", http.StatusBadRequest, "INVALID_MOOD"},
		{"empty genre", "?mood=sad&genre=polka", http.StatusNotFound, "EMPTY_GENRE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/api/v1/recommendations/mood", handler.Mood)

			req, _ := http.NewRequest("GET", "/api/v1/recommendations/mood"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				body := decodeError(t, w)
				assert.Equal(t, tt.expectedCode, body.Code)
				assert.NotEmpty(t, body.Message)
			}
		})
	}
}

func TestRecommendationHandler_InvalidMoodMessageListsMoods(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockService := new(MockRecommendationService)
	mockService.On("ByMood", mock.Anything, "grumpy", "pop", 0).Return(nil, similarity.ErrInvalidMood)

	router := gin.New()
	router.GET("/mood", NewRecommendationHandler(mockService, testLogger()).Mood)

	req, _ := http.NewRequest("GET", "/mood?mood=grumpy&genre=pop", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Contains(t, decodeError(t, w).Message, "chill, energetic, happy, sad")
}

func TestRecommendationHandler_Features(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockService := new(MockRecommendationService)
	handler := NewRecommendationHandler(mockService, testLogger())

	valid := models.AudioFeatures{Danceability: 0.7, Energy: 0.8, Tempo: 120, Valence: 0.6}
	outOfRange := models.AudioFeatures{Danceability: 1.7, Energy: 0.8, Tempo: 120, Valence: 0.6}
	mockService.On("ByFeatures", mock.Anything, valid, 4).Return(sampleResponse(services.ModeFeatures), nil)
	mockService.On("ByFeatures", mock.Anything, outOfRange, 0).
		Return(nil, fmt.Errorf("%w: danceability 1.7 outside [0, 1]", similarity.ErrContractViolation))

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "valid",
			body:           `{"danceability":0.7,"energy":0.8,"tempo":120,"valence":0.6,"count":4}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing tempo",
			body:           `{"danceability":0.7,"energy":0.8,"valence":0.6}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:           "out of range",
			body:           `{"danceability":1.7,"energy":0.8,"tempo":120,"valence":0.6}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "INVALID_FEATURES",
		},
		{
			name:           "malformed json",
			body:           `{"danceability":`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/api/v1/recommendations/features", handler.Features)

			req, _ := http.NewRequest("POST", "/api/v1/recommendations/features", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Code)
			}
		})
	}
	mockService.AssertExpectations(t)
}

func TestRecommendationHandler_Live(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockService := new(MockRecommendationService)
	handler := NewRecommendationHandler(mockService, testLogger())

	live := &models.LiveRecommendationResponse{
		RecommendationResponse: *sampleResponse(services.ModeLive),
		Track:                  models.LiveTrack{ID: "abc", Title: "Live One", Artist: "Somebody"},
	}
	mockService.On("FromLive", mock.Anything, "live one", 0).Return(live, nil)
	mockService.On("FromLive", mock.Anything, "ghost", 0).Return(nil, spotify.ErrTrackNotFound)
	mockService.On("FromLive", mock.Anything, "down", 0).Return(nil, spotify.ErrUnavailable)
	mockService.On("FromLive", mock.Anything, "off", 0).Return(nil, services.ErrLiveLookupDisabled)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedCode   string
	}{
		{"found", "?q=live+one", http.StatusOK, ""},
		{"missing query", "", http.StatusBadRequest, "VALIDATION_FAILED"},
		{"no match", "?q=ghost", http.StatusNotFound, "TRACK_NOT_FOUND"},
		{"upstream down", "?q=down", http.StatusBadGateway, "LIVE_LOOKUP_FAILED"},
		{"disabled", "?q=off", http.StatusServiceUnavailable, "LIVE_LOOKUP_DISABLED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/api/v1/recommendations/live", handler.Live)

			req, _ := http.NewRequest("GET", "/api/v1/recommendations/live"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Code)
				return
			}

			var resp models.LiveRecommendationResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "abc", resp.Track.ID)
			assert.Equal(t, services.ModeLive, resp.Mode)
		})
	}
}
