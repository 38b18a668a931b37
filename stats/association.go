package stats

import "golang.org/x/exp/constraints"

func checkPair[F constraints.Float](op string, xs, ys []F) error {
	if len(xs) != len(ys) {
		return domainError(op, LengthMismatch)
	}
	if len(xs) < 2 {
		return domainError(op, InsufficientSize)
	}
	return nil
}

// Covar returns the sample covariance Σ(x-mx)(y-my) / (n-1).
func Covar[F constraints.Float](xs, ys []F) (F, error) {
	if err := checkPair("Covar", xs, ys); err != nil {
		return 0, err
	}
	return covar(xs, ys), nil
}

// covar assumes both slices share a length of at least two.
func covar[F constraints.Float](xs, ys []F) F {
	mx, _ := Sample[F](xs).welford()
	my, _ := Sample[F](ys).welford()
	var sum F
	for i := range xs {
		sum += (xs[i] - mx) * (ys[i] - my)
	}
	return sum / F(len(xs)-1)
}

// CovMatrix returns the covariance matrix of the given samples, which must
// all have the same length. Cell [i][j] is Covar(samples[i], samples[j]).
func CovMatrix[F constraints.Float](samples ...[]F) ([][]F, error) {
	if len(samples) == 0 {
		return nil, domainError("CovMatrix", EmptySample)
	}
	for _, s := range samples[1:] {
		if err := checkPair("CovMatrix", samples[0], s); err != nil {
			return nil, err
		}
	}
	if len(samples[0]) < 2 {
		return nil, domainError("CovMatrix", InsufficientSize)
	}
	m := make([][]F, len(samples))
	for i := range m {
		m[i] = make([]F, len(samples))
	}
	for i := range samples {
		for j := i; j < len(samples); j++ {
			c := covar(samples[i], samples[j])
			m[i][j], m[j][i] = c, c
		}
	}
	return m, nil
}

// Pearson returns the Pearson correlation coefficient,
// Covar(xs, ys) / (StdDev(xs)·StdDev(ys)).
func Pearson[F constraints.Float](xs, ys []F) (F, error) {
	if err := checkPair("Pearson", xs, ys); err != nil {
		return 0, err
	}
	sx, err := StdDev[F](Sample[F](xs))
	if err != nil {
		return 0, err
	}
	sy, err := StdDev[F](Sample[F](ys))
	if err != nil {
		return 0, err
	}
	if sx == 0 || sy == 0 {
		return 0, domainError("Pearson", ZeroVariance)
	}
	return covar(xs, ys) / (sx * sy), nil
}

// Correl is an alias for Pearson.
func Correl[F constraints.Float](xs, ys []F) (F, error) {
	return Pearson(xs, ys)
}
