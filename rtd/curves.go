package rtd

import (
	"fmt"
	"strconv"
)

// CurveKind names the analysis that produced a Curve.
type CurveKind string

const (
	// CurveQRTD is a qualified run-time distribution: P(solved) over time, one column per error threshold.
	CurveQRTD CurveKind = "qrtd"
	// CurveSQD is a solution-quality distribution: P(solved) over error, one column per time threshold.
	CurveSQD CurveKind = "sqd"
	// CurveConvergence is the mean relative error over time.
	CurveConvergence CurveKind = "convergence"
)

const (
	// SweepPoints is the number of rows in every swept curve.
	SweepPoints = 100
	// DefaultNumPlots is the default number of threshold columns in QRTD and SQD curves.
	DefaultNumPlots = 7
	// ConvergenceLabel heads the single value column of a convergence curve.
	ConvergenceLabel = "mean relative error"
)

// Curve is tabular curve data. Each row is the independent variable followed by one
// dependent value per label. Thresholds holds the numeric labels for QRTD and SQD curves.
type Curve struct {
	Kind       CurveKind
	Labels     []string
	Thresholds []float64
	Rows       [][]float64
}

// Header returns the header row: an empty cell followed by the labels.
func (c *Curve) Header() []string {
	return append([]string{""}, c.Labels...)
}

// Sweep returns count evenly spaced points over the half-open interval [start, end),
// computed as start + i*step with step = (end-start)/count.
func Sweep(start, end float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	step := (end - start) / float64(count)
	points := make([]float64, count)
	for i := range points {
		points[i] = start + float64(i)*step
	}
	return points
}

// QRTD sweeps time over SweepPoints points and, at each, computes the solved probability
// for numPlots relative-error thresholds evenly spaced over the scaled error window.
func QRTD(b *Batch, numPlots int, scale Scale) (*Curve, error) {
	r, err := curveRange(b, numPlots, scale)
	if err != nil {
		return nil, err
	}
	thresholds := Sweep(r.ErrorStart, r.ErrorEnd, numPlots)
	curve := &Curve{
		Kind:       CurveQRTD,
		Labels:     formatLabels(thresholds),
		Thresholds: thresholds,
		Rows:       make([][]float64, 0, SweepPoints),
	}
	for _, timeSec := range Sweep(r.TimeStart, r.TimeEnd, SweepPoints) {
		row := make([]float64, 0, numPlots+1)
		row = append(row, timeSec)
		for _, relErr := range thresholds {
			row = append(row, b.probability(timeSec, relErr))
		}
		curve.Rows = append(curve.Rows, row)
	}
	return curve, nil
}

// SQD sweeps relative error over SweepPoints points and, at each, computes the solved
// probability for numPlots time thresholds evenly spaced over the scaled time window.
func SQD(b *Batch, numPlots int, scale Scale) (*Curve, error) {
	r, err := curveRange(b, numPlots, scale)
	if err != nil {
		return nil, err
	}
	thresholds := Sweep(r.TimeStart, r.TimeEnd, numPlots)
	curve := &Curve{
		Kind:       CurveSQD,
		Labels:     formatLabels(thresholds),
		Thresholds: thresholds,
		Rows:       make([][]float64, 0, SweepPoints),
	}
	for _, relErr := range Sweep(r.ErrorStart, r.ErrorEnd, SweepPoints) {
		row := make([]float64, 0, numPlots+1)
		row = append(row, relErr)
		for _, timeSec := range thresholds {
			row = append(row, b.probability(timeSec, relErr))
		}
		curve.Rows = append(curve.Rows, row)
	}
	return curve, nil
}

// Convergence sweeps time over SweepPoints points and records the batch's mean relative
// error at each.
func Convergence(b *Batch, scale Scale) (*Curve, error) {
	r, err := DeriveRange(b, scale)
	if err != nil {
		return nil, err
	}
	curve := &Curve{
		Kind:   CurveConvergence,
		Labels: []string{ConvergenceLabel},
		Rows:   make([][]float64, 0, SweepPoints),
	}
	for _, timeSec := range Sweep(r.TimeStart, r.TimeEnd, SweepPoints) {
		curve.Rows = append(curve.Rows, []float64{timeSec, b.meanRelativeError(timeSec)})
	}
	return curve, nil
}

func curveRange(b *Batch, numPlots int, scale Scale) (Range, error) {
	if numPlots < 1 {
		return Range{}, fmt.Errorf("%s: num_plots must be at least 1, got %d: %w", b, numPlots, ErrInvalidPlots)
	}
	return DeriveRange(b, scale)
}

// FormatValue renders a curve value in its shortest exact decimal form.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatLabels(values []float64) []string {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = FormatValue(v)
	}
	return labels
}
