package similarity

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/temcen/songmatch/pkg/models"
)

// Space is the catalog's normalized feature matrix with row-aligned entries.
// A Space is immutable after NewSpace returns and is safe for concurrent use.
type Space struct {
	entries []models.Song
	raw     *mat.Dense
	matrix  *mat.Dense
	params  NormalizationParameters
	titles  []string
	artists []string
}

// NewSpace fits normalization over every entry and stores the transformed rows.
func NewSpace(entries []models.Song) (*Space, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrConfiguration)
	}

	owned := make([]models.Song, len(entries))
	copy(owned, entries)

	raw := mat.NewDense(len(owned), Dimensions, nil)
	for i, e := range owned {
		raw.SetRow(i, e.Features.Vector())
	}

	params, err := fitMatrix(raw)
	if err != nil {
		return nil, err
	}

	s := &Space{
		entries: owned,
		raw:     raw,
		matrix:  mat.NewDense(len(owned), Dimensions, nil),
		params:  params,
		titles:  make([]string, len(owned)),
		artists: make([]string, len(owned)),
	}
	for i := range owned {
		v, err := params.Transform(raw.RawRowView(i))
		if err != nil {
			return nil, err
		}
		s.matrix.SetRow(i, v[:])
		s.titles[i] = identityKey(owned[i].Title)
		s.artists[i] = identityKey(owned[i].Artist)
	}

	return s, nil
}

// Len returns the number of catalog entries.
func (s *Space) Len() int { return len(s.entries) }

// Params returns the global normalization parameters.
func (s *Space) Params() NormalizationParameters { return s.params }

// Entry returns a copy of the entry at index i.
func (s *Space) Entry(i int) models.Song { return s.entries[i] }

// Vector returns the normalized vector at index i.
func (s *Space) Vector(i int) FeatureVector {
	var v FeatureVector
	copy(v[:], s.matrix.RawRowView(i))
	return v
}

// Lookup returns the index of the first entry whose title matches, ignoring
// case and surrounding whitespace. When id.Artist is set the artist must match
// too. Duplicates are not resolved: the earliest catalog row wins.
func (s *Space) Lookup(id models.Identity) (int, error) {
	title := identityKey(id.Title)
	if title == "" {
		return -1, fmt.Errorf("%w: empty title", ErrContractViolation)
	}
	artist := identityKey(id.Artist)

	for i := range s.titles {
		if s.titles[i] != title {
			continue
		}
		if artist != "" && s.artists[i] != artist {
			continue
		}
		return i, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrNotFound, id.String())
}

// All returns a view over every entry.
func (s *Space) All() View {
	idx := make([]int, len(s.entries))
	for i := range idx {
		idx[i] = i
	}
	return View{space: s, indices: idx}
}

// Filter returns a view of the entries whose genre satisfies keep.
func (s *Space) Filter(keep func(genre string) bool) View {
	idx := make([]int, 0)
	for i, e := range s.entries {
		if keep(e.Genre) {
			idx = append(idx, i)
		}
	}
	return View{space: s, indices: idx}
}

// Genre returns a view of the entries in genre, compared case-insensitively.
func (s *Space) Genre(genre string) View {
	key := identityKey(genre)
	return s.Filter(func(g string) bool { return identityKey(g) == key })
}

// View is a read-only subset of a Space. It shares the space's matrix.
type View struct {
	space   *Space
	indices []int
}

// Len returns the number of rows in the view.
func (v View) Len() int { return len(v.indices) }

// Index returns the catalog index of the k-th row of the view.
func (v View) Index(k int) int { return v.indices[k] }

// Space returns the underlying space.
func (v View) Space() *Space { return v.space }

// meanRaw returns the mean raw value of feature column j over the view.
func (v View) meanRaw(j int) float64 {
	col := make([]float64, len(v.indices))
	for k, i := range v.indices {
		col[k] = v.space.raw.At(i, j)
	}
	return stat.Mean(col, nil)
}

func identityKey(s string) string {
	return models.FoldKey(s)
}
