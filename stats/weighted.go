package stats

import "golang.org/x/exp/constraints"

// Weighted is a single observation carrying a non-negative weight.
type Weighted[F constraints.Float] struct {
	Value  F
	Weight F
}

// WeightedSample is a sequence of weighted observations. Its effective size
// is the sum of the weights, not the number of pairs.
type WeightedSample[F constraints.Float] []Weighted[F]

// moments returns the weighted mean and the weight total. A sample without
// positive total weight has nothing to average over and is reported as
// empty, as is one containing a negative weight.
func (s WeightedSample[F]) moments(op string) (mean, total F, err error) {
	var sum F
	for _, p := range s {
		if p.Weight < 0 {
			return 0, 0, domainError(op, EmptySample)
		}
		sum += p.Value * p.Weight
		total += p.Weight
	}
	if !(total > 0) {
		return 0, 0, domainError(op, EmptySample)
	}
	return sum / total, total, nil
}

// Mean returns Σ(value·weight) / Σweight.
func (s WeightedSample[F]) Mean() (F, error) {
	mean, _, err := s.moments("Mean")
	return mean, err
}

// Variance is the weighted second central moment. It divides by the weight
// total and applies no n-1 style correction.
func (s WeightedSample[F]) Variance() (F, error) {
	return s.centralMoment("Variance", 2)
}

// CentralMoment returns Σ(weight·(value-mean)^r) / Σweight.
func (s WeightedSample[F]) CentralMoment(r int) (F, error) {
	return s.centralMoment("CentralMoment", r)
}

func (s WeightedSample[F]) centralMoment(op string, r int) (F, error) {
	if r == 1 {
		return 0, nil
	}
	if r < 1 {
		return 0, domainError(op, IndexOutOfRange)
	}
	mean, total, err := s.moments(op)
	if err != nil {
		return 0, err
	}
	var sum F
	for _, p := range s {
		sum += p.Weight * powi(p.Value-mean, r)
	}
	return sum / total, nil
}
