// Package analysis summarizes the audio features of a catalog: per-feature
// distribution statistics, pairwise correlation and genre composition.
package analysis

import (
	"errors"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/temcen/songmatch/pkg/models"
)

// ErrEmptyCatalog is returned when there is nothing to summarize.
var ErrEmptyCatalog = errors.New("analysis: empty catalog")

// FeatureSummary describes the distribution of one raw feature.
type FeatureSummary struct {
	Name   string  `json:"name"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// GenreCount is the number of songs in a genre.
type GenreCount struct {
	Genre string `json:"genre"`
	Songs int    `json:"songs"`
}

// Summary is the catalog-wide feature analysis.
type Summary struct {
	TotalSongs    int              `json:"total_songs"`
	Genres        int              `json:"genres"`
	AvgPopularity *float64         `json:"avg_popularity,omitempty"`
	AvgTempo      float64          `json:"avg_tempo"`
	Features      []FeatureSummary `json:"features"`
	// Correlation is the Pearson correlation matrix in models.FeatureNames order.
	Correlation [][]float64  `json:"correlation"`
	TopGenres   []GenreCount `json:"top_genres"`
}

// Summarize computes a Summary; topGenres bounds the TopGenres list.
func Summarize(songs []models.Song, topGenres int) (*Summary, error) {
	if len(songs) == 0 {
		return nil, ErrEmptyCatalog
	}

	dims := len(models.FeatureNames)
	data := mat.NewDense(len(songs), dims, nil)
	for i, s := range songs {
		data.SetRow(i, s.Features.Vector())
	}

	summary := &Summary{
		TotalSongs: len(songs),
		Features:   make([]FeatureSummary, dims),
	}

	col := make([]float64, len(songs))
	for j, name := range models.FeatureNames {
		mat.Col(col, j, data)
		mean, std := stat.MeanStdDev(col, nil)
		summary.Features[j] = FeatureSummary{
			Name:   name,
			Mean:   mean,
			StdDev: std,
			Min:    floats.Min(col),
			Max:    floats.Max(col),
		}
	}
	summary.AvgTempo = summary.Features[2].Mean

	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, data, nil)
	summary.Correlation = make([][]float64, dims)
	for i := 0; i < dims; i++ {
		summary.Correlation[i] = make([]float64, dims)
		for j := 0; j < dims; j++ {
			v := corr.At(i, j)
			if math.IsNaN(v) {
				// undefined for constant columns
				v = 0
			}
			summary.Correlation[i][j] = v
		}
	}

	var popularity []float64
	for _, s := range songs {
		if s.Popularity != nil {
			popularity = append(popularity, float64(*s.Popularity))
		}
	}
	if len(popularity) > 0 {
		avg := stat.Mean(popularity, nil)
		summary.AvgPopularity = &avg
	}

	counts := CountGenres(songs)
	summary.Genres = len(counts)
	if topGenres > 0 && len(counts) > topGenres {
		counts = counts[:topGenres]
	}
	summary.TopGenres = counts

	return summary, nil
}

// CountGenres counts songs per genre, compared by models.FoldKey as genre
// views are, largest first. Genres
// with equal counts are ordered by name. The first spelling seen is reported.
func CountGenres(songs []models.Song) []GenreCount {
	index := make(map[string]int)
	var counts []GenreCount
	for _, s := range songs {
		key := models.FoldKey(s.Genre)
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			counts[i].Songs++
			continue
		}
		index[key] = len(counts)
		counts = append(counts, GenreCount{Genre: strings.TrimSpace(s.Genre), Songs: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Songs != counts[j].Songs {
			return counts[i].Songs > counts[j].Songs
		}
		return counts[i].Genre < counts[j].Genre
	})
	return counts
}
