package similarity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestFit_TransformedColumnsAreStandardized(t *testing.T) {
	catalog := mixedCatalog()
	rows := make([][]float64, len(catalog))
	for i, s := range catalog {
		rows[i] = s.Features.Vector()
	}

	params, err := Fit(rows)
	require.NoError(t, err)

	columns := make([][]float64, Dimensions)
	for _, row := range rows {
		v, err := params.Transform(row)
		require.NoError(t, err)
		for j := range v {
			columns[j] = append(columns[j], v[j])
		}
	}

	for j, col := range columns {
		mean, std := stat.PopMeanStdDev(col, nil)
		assert.InDelta(t, 0.0, mean, 1e-9, "column %d mean", j)
		assert.InDelta(t, 1.0, std, 1e-9, "column %d stddev", j)
	}
}

func TestFit_UsesPopulationStdDev(t *testing.T) {
	rows := [][]float64{
		{0.0, 0.0, 100, 0.0},
		{1.0, 1.0, 200, 1.0},
	}

	params, err := Fit(rows)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, params.Mean[0], 1e-12)
	assert.InDelta(t, 150.0, params.Mean[2], 1e-12)
	assert.InDelta(t, 0.5, params.StdDev[0], 1e-12)
	assert.InDelta(t, 50.0, params.StdDev[2], 1e-12)
}

func TestFit_Errors(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]float64
		wantErr error
	}{
		{
			name:    "zero rows",
			rows:    nil,
			wantErr: ErrConfiguration,
		},
		{
			name:    "single row has zero variance",
			rows:    [][]float64{{0.5, 0.5, 120, 0.5}},
			wantErr: ErrConfiguration,
		},
		{
			name: "constant tempo column",
			rows: [][]float64{
				{0.1, 0.2, 120, 0.3},
				{0.4, 0.5, 120, 0.6},
			},
			wantErr: ErrConfiguration,
		},
		{
			name:    "wrong dimensionality",
			rows:    [][]float64{{0.1, 0.2, 120}},
			wantErr: ErrContractViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(tt.rows)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestTransform_DimensionMismatch(t *testing.T) {
	params := NormalizationParameters{
		Mean:   FeatureVector{0, 0, 0, 0},
		StdDev: FeatureVector{1, 1, 1, 1},
	}

	_, err := params.Transform([]float64{1, 2, 3, 4, 5})
	assert.ErrorIs(t, err, ErrContractViolation)

	v, err := params.Transform([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, FeatureVector{1, 2, 3, 4}, v)
}
