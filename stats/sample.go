// Package stats computes descriptive statistics over finite in-memory
// samples. Every function is a pure computation: nothing is cached and
// caller-owned slices are never reordered.
package stats

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Sampler is the set of moment primitives shared by unweighted and weighted
// samples. The derived statistics in this package are written against it.
type Sampler[F constraints.Float] interface {
	Mean() (F, error)
	// Variance is the sample's notion of variance. Sample divides by n-1,
	// WeightedSample by the weight total.
	Variance() (F, error)
	// CentralMoment returns the r-th moment about the mean with a population
	// denominator. CentralMoment(1) is 0 for every sample.
	CentralMoment(r int) (F, error)
}

// Sample is an unweighted sequence of observations.
type Sample[F constraints.Float] []F

var (
	_ Sampler[float64] = Sample[float64](nil)
	_ Sampler[float32] = WeightedSample[float32](nil)
)

// welford returns the running mean and the accumulated sum of squared
// deviations in a single pass.
func (s Sample[F]) welford() (mean, m2 F) {
	for i, x := range s {
		delta := x - mean
		mean += delta / F(i+1)
		m2 += delta * (x - mean)
	}
	return mean, m2
}

// Mean returns the arithmetic mean.
func (s Sample[F]) Mean() (F, error) {
	if len(s) == 0 {
		return 0, domainError("Mean", EmptySample)
	}
	mean, _ := s.welford()
	return mean, nil
}

// Variance returns the unbiased sample variance, M2/(n-1).
func (s Sample[F]) Variance() (F, error) {
	switch len(s) {
	case 0:
		return 0, domainError("Variance", EmptySample)
	case 1:
		return 0, domainError("Variance", InsufficientSize)
	}
	_, m2 := s.welford()
	return m2 / F(len(s)-1), nil
}

// CentralMoment returns Σ(x-mean)^r / n.
func (s Sample[F]) CentralMoment(r int) (F, error) {
	if r == 1 {
		return 0, nil
	}
	if r < 1 {
		return 0, domainError("CentralMoment", IndexOutOfRange)
	}
	if len(s) == 0 {
		return 0, domainError("CentralMoment", EmptySample)
	}
	mean, _ := s.welford()
	var sum F
	for _, x := range s {
		sum += powi(x-mean, r)
	}
	return sum / F(len(s)), nil
}

func powi[F constraints.Float](x F, r int) F {
	p := F(1)
	for ; r > 0; r-- {
		p *= x
	}
	return p
}

func sqrt[F constraints.Float](x F) F {
	return F(math.Sqrt(float64(x)))
}
