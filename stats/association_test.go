package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestCovar(t *testing.T) {
	got, err := Covar([]float64{1, 2, 3}, []float64{2, 4, 6})
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)
}

func TestCovarWithItselfIsVariance(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	c, err := Covar(xs, xs)
	require.NoError(t, err)
	v, err := Sample[float64](xs).Variance()
	require.NoError(t, err)
	assert.Equal(t, v, c)
}

func TestCovarErrors(t *testing.T) {
	_, err := Covar([]float64{1, 2}, []float64{1, 2, 3})
	assert.True(t, IsKind(err, LengthMismatch), "got %v", err)

	_, err = Covar([]float64{1}, []float64{1})
	assert.True(t, IsKind(err, InsufficientSize), "got %v", err)
}

func TestCovMatrix(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{2, 4, 6, 8}
	c := []float64{4, 3, 2, 1}

	m, err := CovMatrix(a, b, c)
	require.NoError(t, err)
	require.Len(t, m, 3)

	samples := [][]float64{a, b, c}
	for i := range m {
		require.Len(t, m[i], 3)
		v, err := Sample[float64](samples[i]).Variance()
		require.NoError(t, err)
		assert.InDelta(t, v, m[i][i], 1e-12)
		for j := range m[i] {
			assert.Equal(t, m[i][j], m[j][i])
			assert.InDelta(t, stat.Covariance(samples[i], samples[j], nil), m[i][j], 1e-12)
		}
	}

	_, err = CovMatrix(a, []float64{1, 2})
	assert.True(t, IsKind(err, LengthMismatch), "got %v", err)
	_, err = CovMatrix([]float64{1})
	assert.True(t, IsKind(err, InsufficientSize), "got %v", err)
	_, err = CovMatrix[float64]()
	assert.True(t, IsKind(err, EmptySample), "got %v", err)
}

func TestPearson(t *testing.T) {
	xs := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	ys := make([]float64, len(xs))
	neg := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 2 * x
		neg[i] = -x + 7
	}

	r, err := Pearson(xs, ys)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-12)

	r, err = Correl(xs, neg)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, r, 1e-12)

	zs := []float64{2, 7, 1, 8, 2, 8, 1, 8}
	r, err = Pearson(xs, zs)
	require.NoError(t, err)
	assert.InDelta(t, stat.Correlation(xs, zs, nil), r, 1e-12)
}

func TestPearsonConstantSample(t *testing.T) {
	_, err := Pearson([]float64{1, 2, 3}, []float64{5, 5, 5})
	assert.True(t, IsKind(err, ZeroVariance), "got %v", err)
}
