package rtd

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// BoxplotResult holds the worst final quality of a batch and, per trace in batch order,
// the running time sample used for box-and-whisker statistics.
type BoxplotResult struct {
	WorstCoverSize float64
	RunningTimes   []float64
}

// Boxplot finds the worst (largest) last-observation quality across the batch. For each
// trace it scans from the start, retaining the timestamp while the observed quality is
// still >= the worst value, and stops at the first observation strictly better than it.
// The retained value starts at the trace's first timestamp.
func Boxplot(b *Batch) (*BoxplotResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	worst := b.Traces[0].Last().Quality
	for i := 1; i < len(b.Traces); i++ {
		worst = math.Max(worst, b.Traces[i].Last().Quality)
	}

	times := make([]float64, len(b.Traces))
	for i := range b.Traces {
		obs := b.Traces[i].Observations
		retained := obs[0].Time
		for _, o := range obs {
			if o.Quality < worst {
				break
			}
			retained = o.Time
		}
		times[i] = retained
	}

	return &BoxplotResult{WorstCoverSize: worst, RunningTimes: times}, nil
}

// RunningTimeSummary is a box-and-whisker summary of running time samples.
// Whiskers extend to the most extreme samples within 1.5 IQR of the quartiles;
// samples beyond them are outliers.
type RunningTimeSummary struct {
	Count        int
	Min          float64
	Q1           float64
	Median       float64
	Q3           float64
	Max          float64
	Mean         float64
	LowerWhisker float64
	UpperWhisker float64
	Outliers     []float64
}

// SummarizeRunningTimes computes box-and-whisker statistics for the given samples.
// Safe for empty input (returns zero-value fields).
func SummarizeRunningTimes(samples []float64) RunningTimeSummary {
	if len(samples) == 0 {
		return RunningTimeSummary{}
	}
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	s := RunningTimeSummary{
		Count:  len(sorted),
		Min:    sorted[0],
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
		Mean:   stat.Mean(sorted, nil),
	}

	iqr := s.Q3 - s.Q1
	lowFence := s.Q1 - 1.5*iqr
	highFence := s.Q3 + 1.5*iqr
	s.LowerWhisker = s.Q1
	s.UpperWhisker = s.Q3
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			s.Outliers = append(s.Outliers, v)
			continue
		}
		s.LowerWhisker = math.Min(s.LowerWhisker, v)
		s.UpperWhisker = math.Max(s.UpperWhisker, v)
	}
	return s
}
