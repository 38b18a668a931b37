package stats

import "github.com/cockroachdb/errors"

// Kind classifies why a statistic could not be computed.
type Kind int

const (
	EmptySample Kind = iota + 1
	InsufficientSize
	LengthMismatch
	QuantileOutOfRange
	IndexOutOfRange
	NoMode
	ZeroVariance
	DegenerateInput
)

var kindNames = map[Kind]string{
	EmptySample:        "empty sample",
	InsufficientSize:   "insufficient sample size",
	LengthMismatch:     "sample lengths differ",
	QuantileOutOfRange: "quantile outside [0, 1]",
	IndexOutOfRange:    "index out of range",
	NoMode:             "no value repeats",
	ZeroVariance:       "zero variance",
	DegenerateInput:    "degenerate input",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// DomainError is returned when the input violates a precondition of Op.
type DomainError struct {
	Op   string
	Kind Kind
}

func (e *DomainError) Error() string {
	return "stats: " + e.Op + ": " + e.Kind.String()
}

func domainError(op string, kind Kind) error {
	return errors.WithStack(&DomainError{Op: op, Kind: kind})
}

// IsKind reports whether err, or anything it wraps, is a DomainError of the
// given kind.
func IsKind(err error, kind Kind) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Kind == kind
}
