package similarity

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Dimensions is the fixed width of every feature vector.
const Dimensions = 4

// FeatureVector is a point in the normalized feature space.
type FeatureVector [Dimensions]float64

// Slice returns the vector as a slice backed by a copy.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, Dimensions)
	copy(out, v[:])
	return out
}

// NormalizationParameters holds per-feature standardization statistics.
// Standard deviations are population deviations (divide by N), matching a
// standard scaler fitted over the whole catalog.
type NormalizationParameters struct {
	Mean   FeatureVector
	StdDev FeatureVector
}

// Fit computes column-wise mean and population standard deviation.
func Fit(rows [][]float64) (NormalizationParameters, error) {
	if len(rows) == 0 {
		return NormalizationParameters{}, fmt.Errorf("%w: cannot fit normalization on zero rows", ErrConfiguration)
	}

	m := mat.NewDense(len(rows), Dimensions, nil)
	for i, row := range rows {
		if len(row) != Dimensions {
			return NormalizationParameters{}, fmt.Errorf("%w: row %d has %d features, want %d",
				ErrContractViolation, i, len(row), Dimensions)
		}
		m.SetRow(i, row)
	}

	return fitMatrix(m)
}

func fitMatrix(m *mat.Dense) (NormalizationParameters, error) {
	var params NormalizationParameters
	rows, _ := m.Dims()
	col := make([]float64, rows)
	for j := 0; j < Dimensions; j++ {
		mat.Col(col, j, m)
		mean, std := stat.PopMeanStdDev(col, nil)
		if !(std > 0) {
			return NormalizationParameters{}, fmt.Errorf("%w: feature %d has zero variance", ErrConfiguration, j)
		}
		params.Mean[j] = mean
		params.StdDev[j] = std
	}
	return params, nil
}

// Transform standardizes one raw row: (value - mean) / stddev per column.
func (p NormalizationParameters) Transform(row []float64) (FeatureVector, error) {
	var v FeatureVector
	if len(row) != Dimensions {
		return v, fmt.Errorf("%w: got %d features, want %d", ErrContractViolation, len(row), Dimensions)
	}
	for j, value := range row {
		v[j] = (value - p.Mean[j]) / p.StdDev[j]
	}
	return v, nil
}
