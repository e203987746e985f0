package models

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is a ranked catalog entry as returned to clients.
type Recommendation struct {
	Position   int     `json:"position"`
	Title      string  `json:"title"`
	Artist     string  `json:"artist"`
	Genre      string  `json:"genre"`
	Popularity *int    `json:"popularity,omitempty"`
	Similarity float64 `json:"similarity"`
}

type RecommendationResponse struct {
	QueryID         uuid.UUID        `json:"query_id"`
	Mode            string           `json:"mode"`
	Seed            *Identity        `json:"seed,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

type SimilarSongsRequest struct {
	Title  string `form:"title" validate:"required,min=1,max=255"`
	Artist string `form:"artist" validate:"max=255"`
	Count  int    `form:"count" validate:"omitempty,min=1,max=100"`
}

type MoodRequest struct {
	Mood  string `form:"mood" validate:"required"`
	Genre string `form:"genre" validate:"required,min=1,max=100"`
	Count int    `form:"count" validate:"omitempty,min=1,max=100"`
}

// FeaturesRequest carries an externally supplied raw vector. Range checks are
// left to the recommender so out-of-range input surfaces as a contract error.
type FeaturesRequest struct {
	Danceability *float64 `json:"danceability" validate:"required"`
	Energy       *float64 `json:"energy" validate:"required"`
	Tempo        *float64 `json:"tempo" validate:"required"`
	Valence      *float64 `json:"valence" validate:"required"`
	Count        int      `json:"count" validate:"omitempty,min=1,max=100"`
}

// Features converts a validated request into raw features.
func (r FeaturesRequest) Features() AudioFeatures {
	return AudioFeatures{
		Danceability: *r.Danceability,
		Energy:       *r.Energy,
		Tempo:        *r.Tempo,
		Valence:      *r.Valence,
	}
}

type LiveRequest struct {
	Query string `form:"q" validate:"required,min=1,max=255"`
	Count int    `form:"count" validate:"omitempty,min=1,max=100"`
}

// LiveTrack is the display metadata of a track matched by the live lookup.
type LiveTrack struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Artist   string        `json:"artist"`
	Album    string        `json:"album,omitempty"`
	ImageURL string        `json:"image_url,omitempty"`
	URL      string        `json:"url,omitempty"`
	Features AudioFeatures `json:"features"`
}

type LiveRecommendationResponse struct {
	RecommendationResponse
	Track LiveTrack `json:"track"`
}

// ChartEntry is a song at a position in a genre chart.
type ChartEntry struct {
	Position int `json:"position"`
	Song
}

type GenreChartResponse struct {
	Genre string       `json:"genre"`
	Songs []ChartEntry `json:"songs"`
}

type MoodInfo struct {
	Name    string  `json:"name"`
	Energy  float64 `json:"energy"`
	Valence float64 `json:"valence"`
}
