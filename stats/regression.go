package stats

import "golang.org/x/exp/constraints"

// Point is one (x, y) observation.
type Point[F constraints.Float] struct {
	X, Y F
}

// Regression is the result of a simple least-squares fit y = Intercept +
// Slope·x. R is the correlation coefficient of the fitted points.
type Regression[F constraints.Float] struct {
	Intercept F
	Slope     F
	R         F
}

// LinReg fits a line through points by ordinary least squares, computed from
// raw sums in a single pass. Points whose x values, or whose y values, are
// all equal leave the fit undefined.
func LinReg[F constraints.Float](points []Point[F]) (Regression[F], error) {
	if len(points) == 0 {
		return Regression[F]{}, domainError("LinReg", EmptySample)
	}
	var sx, sy, sxx, sxy, syy F
	for _, p := range points {
		sx += p.X
		sy += p.Y
		sxx += p.X * p.X
		sxy += p.X * p.Y
		syy += p.Y * p.Y
	}
	n := F(len(points))
	num := n*sxy - sx*sy
	dx := n*sxx - sx*sx
	dy := n*syy - sy*sy
	if dx == 0 || dy == 0 {
		return Regression[F]{}, domainError("LinReg", DegenerateInput)
	}
	slope := num / dx
	return Regression[F]{
		Intercept: (sy - slope*sx) / n,
		Slope:     slope,
		R:         num / sqrt(dx*dy),
	}, nil
}

// LinRegXY is LinReg over two parallel slices.
func LinRegXY[F constraints.Float](xs, ys []F) (Regression[F], error) {
	if len(xs) != len(ys) {
		return Regression[F]{}, domainError("LinRegXY", LengthMismatch)
	}
	points := make([]Point[F], len(xs))
	for i := range xs {
		points[i] = Point[F]{X: xs[i], Y: ys[i]}
	}
	return LinReg(points)
}
