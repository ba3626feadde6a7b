package rtd

import "errors"

var (
	// ErrInvalidBatch reports an empty batch, an empty trace, a non-positive reference
	// quality, or a batch whose natural time or error range has zero width.
	ErrInvalidBatch = errors.New("invalid batch")

	// ErrMalformedTrace reports trace data that cannot be interpreted as a sorted sequence
	// of (timestamp, quality) observations.
	ErrMalformedTrace = errors.New("malformed trace")

	// ErrInvalidScale reports scale fractions outside [0,1] or a window whose low bound
	// is not below its high bound.
	ErrInvalidScale = errors.New("invalid scale")

	// ErrInvalidPlots reports a non-positive number of curve thresholds.
	ErrInvalidPlots = errors.New("invalid number of plots")
)
