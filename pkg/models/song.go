package models

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Feature domain bounds for raw audio features.
const (
	MinUnitFeature = 0.0
	MaxUnitFeature = 1.0
)

// FeatureNames lists raw feature columns in vector order.
var FeatureNames = []string{"danceability", "energy", "tempo", "valence"}

// AudioFeatures is the raw feature tuple describing a song.
type AudioFeatures struct {
	Danceability float64 `json:"danceability" db:"danceability"`
	Energy       float64 `json:"energy" db:"energy"`
	Tempo        float64 `json:"tempo" db:"tempo"`
	Valence      float64 `json:"valence" db:"valence"`
}

// Vector returns the features in (danceability, energy, tempo, valence) order.
func (f AudioFeatures) Vector() []float64 {
	return []float64{f.Danceability, f.Energy, f.Tempo, f.Valence}
}

// Validate reports the first component outside its documented range.
// NaN fails every comparison and is rejected as well, as is an infinite tempo.
func (f AudioFeatures) Validate() error {
	unit := []struct {
		name  string
		value float64
	}{
		{"danceability", f.Danceability},
		{"energy", f.Energy},
		{"valence", f.Valence},
	}
	for _, u := range unit {
		if !(u.value >= MinUnitFeature && u.value <= MaxUnitFeature) {
			return fmt.Errorf("%s %v outside [0, 1]", u.name, u.value)
		}
	}
	if !(f.Tempo > 0) || math.IsInf(f.Tempo, 1) {
		return fmt.Errorf("tempo %v must be positive and finite", f.Tempo)
	}
	return nil
}

// Identity is the display key of a catalog entry. It is not guaranteed unique.
type Identity struct {
	Title  string `json:"title" db:"track_name"`
	Artist string `json:"artist" db:"artists"`
	Genre  string `json:"genre" db:"track_genre"`
}

func (id Identity) String() string {
	if id.Artist == "" {
		return id.Title
	}
	return id.Title + " - " + id.Artist
}

// Song is a catalog entry. Entries are immutable once loaded.
type Song struct {
	Identity
	Features   AudioFeatures `json:"features"`
	Popularity *int          `json:"popularity,omitempty" db:"popularity"`
}

// FoldKey is the comparison key for titles, artists and genres: trimmed,
// NFC-normalized and case-folded.
func FoldKey(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}
