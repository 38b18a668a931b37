package stats

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Mean returns the mean of any Sampler.
func Mean[F constraints.Float](s Sampler[F]) (F, error) {
	return s.Mean()
}

// SampleVariance returns the variance of s under its own denominator.
func SampleVariance[F constraints.Float](s Sampler[F]) (F, error) {
	return s.Variance()
}

// CentralMoment returns the r-th central moment of s.
func CentralMoment[F constraints.Float](s Sampler[F], r int) (F, error) {
	return s.CentralMoment(r)
}

// StdDev is the square root of the sample's variance.
func StdDev[F constraints.Float](s Sampler[F]) (F, error) {
	v, err := s.Variance()
	if err != nil {
		return 0, err
	}
	return sqrt(v), nil
}

// StdDevP is the population standard deviation, the square root of the
// second central moment.
func StdDevP[F constraints.Float](s Sampler[F]) (F, error) {
	m2, err := s.CentralMoment(2)
	if err != nil {
		return 0, err
	}
	return sqrt(m2), nil
}

// secondMoment returns the second central moment, rejecting a constant
// sample since it divides every shape statistic.
func secondMoment[F constraints.Float](op string, s Sampler[F]) (F, error) {
	m2, err := s.CentralMoment(2)
	if err != nil {
		return 0, err
	}
	if m2 == 0 {
		return 0, domainError(op, ZeroVariance)
	}
	return m2, nil
}

// Skew returns m3 / m2^1.5.
func Skew[F constraints.Float](s Sampler[F]) (F, error) {
	m2, err := secondMoment("Skew", s)
	if err != nil {
		return 0, err
	}
	m3, err := s.CentralMoment(3)
	if err != nil {
		return 0, err
	}
	return m3 / F(math.Pow(float64(m2), 1.5)), nil
}

// Kurt returns the excess kurtosis m4 / m2² - 3, which is 0 for a normal
// distribution.
func Kurt[F constraints.Float](s Sampler[F]) (F, error) {
	m2, err := secondMoment("Kurt", s)
	if err != nil {
		return 0, err
	}
	m4, err := s.CentralMoment(4)
	if err != nil {
		return 0, err
	}
	return m4/(m2*m2) - 3, nil
}

// DevSq returns the sum of squared deviations from the mean.
func DevSq[F constraints.Float](xs []F) (F, error) {
	mean, err := Sample[F](xs).Mean()
	if err != nil {
		return 0, err
	}
	var sum F
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}
	return sum, nil
}

// AvgDev returns the mean absolute deviation from the mean.
func AvgDev[F constraints.Float](xs []F) (F, error) {
	mean, err := Sample[F](xs).Mean()
	if err != nil {
		return 0, err
	}
	var sum F
	for _, x := range xs {
		sum += F(math.Abs(float64(x - mean)))
	}
	return sum / F(len(xs)), nil
}

// PearsonSkew1 is Pearson's mode skewness, 3·(mean - mode) / stddev.
func PearsonSkew1[F constraints.Float](xs []F) (F, error) {
	mode, ok, err := Mode(xs)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domainError("PearsonSkew1", NoMode)
	}
	return pearsonSkew("PearsonSkew1", xs, mode)
}

// PearsonSkew2 is Pearson's median skewness, 3·(mean - median) / stddev.
func PearsonSkew2[F constraints.Float](xs []F) (F, error) {
	median, err := Median(xs)
	if err != nil {
		return 0, err
	}
	return pearsonSkew("PearsonSkew2", xs, median)
}

func pearsonSkew[F constraints.Float](op string, xs []F, center F) (F, error) {
	s := Sample[F](xs)
	mean, err := s.Mean()
	if err != nil {
		return 0, err
	}
	sd, err := StdDev[F](s)
	if err != nil {
		return 0, err
	}
	if sd == 0 {
		return 0, domainError(op, ZeroVariance)
	}
	return 3 * (mean - center) / sd, nil
}
