package stats

import "golang.org/x/exp/constraints"

// Summary is the five-number summary of a sample together with its mean and
// population standard deviation.
type Summary[F constraints.Float] struct {
	Count  int
	Min    F
	Max    F
	Range  F
	Mean   F
	Median F
	Q1     F
	Q3     F
	StdDev F
}

// Describe summarises xs, sorting a private copy once. A single observation
// is summarised with a standard deviation of 0.
func Describe[F constraints.Float](xs []F) (Summary[F], error) {
	if len(xs) == 0 {
		return Summary[F]{}, domainError("Describe", EmptySample)
	}
	s := sorted(xs)
	n := len(s)

	mean, err := Sample[F](s).Mean()
	if err != nil {
		return Summary[F]{}, err
	}
	sd, err := StdDevP[F](Sample[F](s))
	if err != nil {
		return Summary[F]{}, err
	}
	q1, err := QuantileAsc(0.25, s)
	if err != nil {
		return Summary[F]{}, err
	}
	q3, err := QuantileAsc(0.75, s)
	if err != nil {
		return Summary[F]{}, err
	}

	return Summary[F]{
		Count:  n,
		Min:    s[0],
		Max:    s[n-1],
		Range:  s[n-1] - s[0],
		Mean:   mean,
		Median: medianAsc(s),
		Q1:     q1,
		Q3:     q3,
		StdDev: sd,
	}, nil
}
