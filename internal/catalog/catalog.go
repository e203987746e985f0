// Package catalog loads song catalogs from tabular sources and drops rows the
// recommender cannot use.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/temcen/songmatch/pkg/models"
)

// Columns are the source columns a catalog row is built from.
var Columns = []string{
	"track_name",
	"artists",
	"track_genre",
	"popularity",
	"danceability",
	"energy",
	"tempo",
	"valence",
}

// ErrMissingColumn is returned when a source lacks a required column.
var ErrMissingColumn = errors.New("catalog: missing required column")

// Record is one catalog row as read from a source. Nil fields were absent or
// unparseable in the source.
type Record struct {
	Title        *string
	Artist       *string
	Genre        *string
	Popularity   *int
	Danceability *float64
	Energy       *float64
	Tempo        *float64
	Valence      *float64
}

// Source reads raw catalog records.
type Source interface {
	Records(ctx context.Context) ([]Record, error)
	Close() error
}

// Stats reports what a load kept and dropped.
type Stats struct {
	Read       int `json:"read"`
	Kept       int `json:"kept"`
	Incomplete int `json:"incomplete"`
	OutOfRange int `json:"out_of_range"`
	Unpopular  int `json:"unpopular"`
}

// Loader turns source records into catalog entries.
type Loader struct {
	source        Source
	minPopularity int
	logger        *logrus.Logger
}

// NewLoader creates a loader. Rows below minPopularity are dropped; zero keeps
// every row regardless of popularity.
func NewLoader(source Source, minPopularity int, logger *logrus.Logger) *Loader {
	return &Loader{
		source:        source,
		minPopularity: minPopularity,
		logger:        logger,
	}
}

// Load reads and filters the catalog.
func (l *Loader) Load(ctx context.Context) ([]models.Song, Stats, error) {
	records, err := l.source.Records(ctx)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("catalog: read source: %w", err)
	}

	songs, stats := Filter(records, l.minPopularity)

	l.logger.WithFields(logrus.Fields{
		"read":         stats.Read,
		"kept":         stats.Kept,
		"incomplete":   stats.Incomplete,
		"out_of_range": stats.OutOfRange,
		"unpopular":    stats.Unpopular,
	}).Info("Catalog loaded")

	return songs, stats, nil
}

// Close releases the underlying source.
func (l *Loader) Close() error {
	return l.source.Close()
}

// Filter keeps records with every field present, features in range and
// popularity at least minPopularity. Order is preserved.
func Filter(records []Record, minPopularity int) ([]models.Song, Stats) {
	stats := Stats{Read: len(records)}
	songs := make([]models.Song, 0, len(records))

	for _, r := range records {
		song, ok := r.song()
		if !ok {
			stats.Incomplete++
			continue
		}
		if err := song.Features.Validate(); err != nil {
			stats.OutOfRange++
			continue
		}
		if minPopularity > 0 && (song.Popularity == nil || *song.Popularity < minPopularity) {
			stats.Unpopular++
			continue
		}
		songs = append(songs, song)
	}

	stats.Kept = len(songs)
	return songs, stats
}

func (r Record) song() (models.Song, bool) {
	if r.Title == nil || strings.TrimSpace(*r.Title) == "" {
		return models.Song{}, false
	}
	if r.Artist == nil || r.Genre == nil {
		return models.Song{}, false
	}
	if r.Danceability == nil || r.Energy == nil || r.Tempo == nil || r.Valence == nil {
		return models.Song{}, false
	}

	return models.Song{
		Identity: models.Identity{
			Title:  *r.Title,
			Artist: *r.Artist,
			Genre:  *r.Genre,
		},
		Features: models.AudioFeatures{
			Danceability: *r.Danceability,
			Energy:       *r.Energy,
			Tempo:        *r.Tempo,
			Valence:      *r.Valence,
		},
		Popularity: r.Popularity,
	}, true
}
