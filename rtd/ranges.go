package rtd

import (
	"fmt"
	"math"
)

// Scale selects a sub-window of a batch's natural ranges. Each field is a fraction in [0,1]
// of the natural width, measured from the natural lower bound.
type Scale struct {
	ErrorLow  float64
	ErrorHigh float64
	TimeLow   float64
	TimeHigh  float64
}

// DefaultScale keeps the full natural ranges.
var DefaultScale = Scale{ErrorLow: 0, ErrorHigh: 1, TimeLow: 0, TimeHigh: 1}

// ScaleFromSlice builds a Scale from [error_low, error_high, time_low, time_high].
func ScaleFromSlice(s []float64) (Scale, error) {
	if len(s) != 4 {
		return Scale{}, fmt.Errorf("scale needs 4 fractions, got %d: %w", len(s), ErrInvalidScale)
	}
	scale := Scale{ErrorLow: s[0], ErrorHigh: s[1], TimeLow: s[2], TimeHigh: s[3]}
	if err := scale.Validate(); err != nil {
		return Scale{}, err
	}
	return scale, nil
}

// Validate checks every fraction is in [0,1] and each low bound is below its high bound.
func (s Scale) Validate() error {
	fractions := map[string]float64{
		"error_low": s.ErrorLow, "error_high": s.ErrorHigh,
		"time_low": s.TimeLow, "time_high": s.TimeHigh,
	}
	for _, name := range []string{"error_low", "error_high", "time_low", "time_high"} {
		v := fractions[name]
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v: %w", name, v, ErrInvalidScale)
		}
	}
	if s.ErrorLow >= s.ErrorHigh {
		return fmt.Errorf("error_low %v must be below error_high %v: %w", s.ErrorLow, s.ErrorHigh, ErrInvalidScale)
	}
	if s.TimeLow >= s.TimeHigh {
		return fmt.Errorf("time_low %v must be below time_high %v: %w", s.TimeLow, s.TimeHigh, ErrInvalidScale)
	}
	return nil
}

// Slice returns the scale as [error_low, error_high, time_low, time_high].
func (s Scale) Slice() []float64 {
	return []float64{s.ErrorLow, s.ErrorHigh, s.TimeLow, s.TimeHigh}
}

// Range bounds the sweeps of the curve builders.
type Range struct {
	ErrorStart float64
	ErrorEnd   float64
	TimeStart  float64
	TimeEnd    float64
}

// NaturalRange computes the unscaled error and time windows of a batch:
//   - error upper bound: relative error of the largest first-observation quality
//   - error lower bound: relative error of the largest last-observation quality
//   - time lower bound: the largest first-observation timestamp
//   - time upper bound: the largest last-observation timestamp
//
// A window of zero (or negative) width is reported as ErrInvalidBatch.
func NaturalRange(b *Batch) (Range, error) {
	if err := b.Validate(); err != nil {
		return Range{}, err
	}

	first := b.Traces[0].First()
	last := b.Traces[0].Last()
	maxFirstQuality, maxLastQuality := first.Quality, last.Quality
	minTime, maxTime := first.Time, last.Time
	for i := 1; i < len(b.Traces); i++ {
		first = b.Traces[i].First()
		last = b.Traces[i].Last()
		maxFirstQuality = math.Max(maxFirstQuality, first.Quality)
		maxLastQuality = math.Max(maxLastQuality, last.Quality)
		minTime = math.Max(minTime, first.Time)
		maxTime = math.Max(maxTime, last.Time)
	}

	r := Range{
		ErrorStart: b.RelativeError(maxLastQuality),
		ErrorEnd:   b.RelativeError(maxFirstQuality),
		TimeStart:  minTime,
		TimeEnd:    maxTime,
	}
	if !(r.ErrorEnd > r.ErrorStart) {
		return Range{}, fmt.Errorf("%s: relative error range [%v, %v] has zero width: %w",
			b, r.ErrorStart, r.ErrorEnd, ErrInvalidBatch)
	}
	if !(r.TimeEnd > r.TimeStart) {
		return Range{}, fmt.Errorf("%s: time range [%v, %v] has zero width: %w",
			b, r.TimeStart, r.TimeEnd, ErrInvalidBatch)
	}
	return r, nil
}

// DeriveRange computes the natural range of the batch and narrows it linearly by scale.
func DeriveRange(b *Batch, scale Scale) (Range, error) {
	if err := b.Validate(); err != nil {
		return Range{}, err
	}
	if err := scale.Validate(); err != nil {
		return Range{}, fmt.Errorf("%s: %w", b, err)
	}
	natural, err := NaturalRange(b)
	if err != nil {
		return Range{}, err
	}
	errorWidth := natural.ErrorEnd - natural.ErrorStart
	timeWidth := natural.TimeEnd - natural.TimeStart
	return Range{
		ErrorStart: natural.ErrorStart + scale.ErrorLow*errorWidth,
		ErrorEnd:   natural.ErrorStart + scale.ErrorHigh*errorWidth,
		TimeStart:  natural.TimeStart + scale.TimeLow*timeWidth,
		TimeEnd:    natural.TimeStart + scale.TimeHigh*timeWidth,
	}, nil
}
