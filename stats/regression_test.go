package stats

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestLinReg(t *testing.T) {
	fit, err := LinReg([]Point[float64]{{1, 2}, {2, 4}, {3, 6}})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, fit.Intercept, 1e-12)
	assert.InDelta(t, 2.0, fit.Slope, 1e-12)
	assert.InDelta(t, 1.0, fit.R, 1e-12)
}

func TestLinRegMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	xs := make([]float64, 50)
	ys := make([]float64, 50)
	for i := range xs {
		xs[i] = float64(i)
		ys[i] = 1.5 - 0.75*xs[i] + rng.NormFloat64()
	}

	fit, err := LinRegXY(xs, ys)
	require.NoError(t, err)

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	assert.InDelta(t, alpha, fit.Intercept, 1e-9)
	assert.InDelta(t, beta, fit.Slope, 1e-9)
	assert.InDelta(t, stat.Correlation(xs, ys, nil), fit.R, 1e-9)
	assert.Less(t, fit.R, 0.0)
}

func TestLinRegDegenerate(t *testing.T) {
	_, err := LinReg([]Point[float64]{{1, 2}, {1, 3}, {1, 4}})
	assert.True(t, IsKind(err, DegenerateInput), "got %v", err)

	_, err = LinReg([]Point[float64]{{1, 2}})
	assert.True(t, IsKind(err, DegenerateInput), "got %v", err)

	_, err = LinReg([]Point[float64]{{1, 5}, {2, 5}})
	assert.True(t, IsKind(err, DegenerateInput), "got %v", err)

	_, err = LinReg[float64](nil)
	assert.True(t, IsKind(err, EmptySample), "got %v", err)

	_, err = LinRegXY([]float64{1, 2}, []float64{1})
	assert.True(t, IsKind(err, LengthMismatch), "got %v", err)
}
