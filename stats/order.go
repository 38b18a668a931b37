package stats

import (
	"cmp"
	"math"
	"slices"

	"golang.org/x/exp/constraints"
)

// ModeCount is the number of occurrences of a value in a sample.
type ModeCount[F constraints.Float] struct {
	Count int
	Value F
}

// sorted returns an ascending copy of xs.
func sorted[F constraints.Float](xs []F) []F {
	s := slices.Clone(xs)
	slices.Sort(s)
	return s
}

// Min returns the smallest value in xs.
func Min[F constraints.Float](xs []F) (F, error) {
	if len(xs) == 0 {
		return 0, domainError("Min", EmptySample)
	}
	return slices.Min(xs), nil
}

// Max returns the largest value in xs.
func Max[F constraints.Float](xs []F) (F, error) {
	if len(xs) == 0 {
		return 0, domainError("Max", EmptySample)
	}
	return slices.Max(xs), nil
}

// Range returns max - min.
func Range[F constraints.Float](xs []F) (F, error) {
	if len(xs) == 0 {
		return 0, domainError("Range", EmptySample)
	}
	return slices.Max(xs) - slices.Min(xs), nil
}

// Median returns the middle element of the sorted sample, or the mean of the
// two middle elements when the length is even.
func Median[F constraints.Float](xs []F) (F, error) {
	if len(xs) == 0 {
		return 0, domainError("Median", EmptySample)
	}
	return medianAsc(sorted(xs)), nil
}

func medianAsc[F constraints.Float](s []F) F {
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// Modes groups equal values and returns them ordered by descending count.
// Values with the same count are ordered ascending.
func Modes[F constraints.Float](xs []F) ([]ModeCount[F], error) {
	if len(xs) == 0 {
		return nil, domainError("Modes", EmptySample)
	}
	s := sorted(xs)
	var modes []ModeCount[F]
	for i := 0; i < len(s); {
		j := i + 1
		for j < len(s) && s[j] == s[i] {
			j++
		}
		modes = append(modes, ModeCount[F]{Count: j - i, Value: s[i]})
		i = j
	}
	// Runs are already ascending by value; a stable sort keeps that order
	// among equal counts.
	slices.SortStableFunc(modes, func(a, b ModeCount[F]) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return modes, nil
}

// Mode returns the most frequent value. ok is false when no value occurs
// more than once.
func Mode[F constraints.Float](xs []F) (mode F, ok bool, err error) {
	modes, err := Modes(xs)
	if err != nil {
		return 0, false, err
	}
	if modes[0].Count < 2 {
		return 0, false, nil
	}
	return modes[0].Value, true, nil
}

// IQR returns the sorted sample with ⌊(n+1)/4⌋ elements trimmed from each
// end, i.e. the observations lying between the quartiles. Use
// InterquartileRange for the scalar Q3 - Q1.
func IQR[F constraints.Float](xs []F) ([]F, error) {
	if len(xs) == 0 {
		return nil, domainError("IQR", EmptySample)
	}
	s := sorted(xs)
	k := (len(s) + 1) / 4
	return s[k : len(s)-k], nil
}

// InterquartileRange returns Quantile(0.75) - Quantile(0.25).
func InterquartileRange[F constraints.Float](xs []F) (F, error) {
	if len(xs) == 0 {
		return 0, domainError("InterquartileRange", EmptySample)
	}
	s := sorted(xs)
	q1, err := QuantileAsc(0.25, s)
	if err != nil {
		return 0, err
	}
	q3, err := QuantileAsc(0.75, s)
	if err != nil {
		return 0, err
	}
	return q3 - q1, nil
}

// Quantile returns the element of the sorted sample at index
// round(q·(n-1)). q must lie in [0, 1].
func Quantile[F constraints.Float](q float64, xs []F) (F, error) {
	if err := checkQuantile("Quantile", q, len(xs)); err != nil {
		return 0, err
	}
	return quantileAsc("Quantile", q, sorted(xs))
}

// QuantileAsc is Quantile for a sample that is already sorted ascending.
// The order is not checked; unsorted input yields a meaningless result.
func QuantileAsc[F constraints.Float](q float64, asc []F) (F, error) {
	if err := checkQuantile("QuantileAsc", q, len(asc)); err != nil {
		return 0, err
	}
	return quantileAsc("QuantileAsc", q, asc)
}

func checkQuantile(op string, q float64, n int) error {
	if !(q >= 0 && q <= 1) {
		return domainError(op, QuantileOutOfRange)
	}
	if n == 0 {
		return domainError(op, EmptySample)
	}
	return nil
}

func quantileAsc[F constraints.Float](op string, q float64, asc []F) (F, error) {
	i := int(math.Round(q * float64(len(asc)-1)))
	if i < 0 || i >= len(asc) {
		return 0, domainError(op, IndexOutOfRange)
	}
	return asc[i], nil
}
