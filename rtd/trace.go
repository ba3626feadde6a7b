package rtd

import (
	"fmt"
	"sort"
)

// Observation is one (timestamp, quality) sample from a solver trace.
// Time is in seconds; lower Quality is better (e.g. a cover size).
type Observation struct {
	Time    float64
	Quality float64
}

// Trace is one run's observations, sorted by non-decreasing Time.
// Quality is expected to be non-increasing over time but this is not enforced.
type Trace struct {
	Source       string // file path or other identifier, used in error messages
	Observations []Observation
}

// First returns the earliest observation. The trace must be non-empty.
func (t *Trace) First() Observation {
	return t.Observations[0]
}

// Last returns the latest observation. The trace must be non-empty.
func (t *Trace) Last() Observation {
	return t.Observations[len(t.Observations)-1]
}

// QualityAt returns the quality of the last observation whose timestamp does not exceed
// timeSec. If timeSec precedes every observation, the first observation's quality is returned.
// Equivalent to a linear scan that stops at the first overshooting sample.
func (t *Trace) QualityAt(timeSec float64) float64 {
	obs := t.Observations
	idx := sort.Search(len(obs), func(i int) bool { return obs[i].Time > timeSec })
	if idx == 0 {
		return obs[0].Quality
	}
	return obs[idx-1].Quality
}

// Batch is the set of repeated runs of one algorithm on one problem instance,
// together with the instance's reference (best-known) quality.
type Batch struct {
	Instance  string
	Algorithm string
	Reference float64
	Traces    []Trace
}

// NewBatch constructs a Batch and validates it.
func NewBatch(instance, algorithm string, reference float64, traces []Trace) (*Batch, error) {
	b := &Batch{
		Instance:  instance,
		Algorithm: algorithm,
		Reference: reference,
		Traces:    traces,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks that the batch has at least one trace, every trace has at least one
// observation, and the reference quality is positive.
func (b *Batch) Validate() error {
	if b == nil {
		return fmt.Errorf("nil batch: %w", ErrInvalidBatch)
	}
	if !(b.Reference > 0) {
		return fmt.Errorf("%s: reference quality must be positive, got %v: %w", b, b.Reference, ErrInvalidBatch)
	}
	if len(b.Traces) == 0 {
		return fmt.Errorf("%s: no traces: %w", b, ErrInvalidBatch)
	}
	for i := range b.Traces {
		if len(b.Traces[i].Observations) == 0 {
			return fmt.Errorf("%s: trace %d (%s) has no observations: %w", b, i, b.Traces[i].Source, ErrInvalidBatch)
		}
	}
	return nil
}

// RelativeError returns (quality - reference) / reference.
func (b *Batch) RelativeError(quality float64) float64 {
	return (quality - b.Reference) / b.Reference
}

// String identifies the batch as algorithm/instance.
func (b *Batch) String() string {
	return fmt.Sprintf("%s/%s", b.Algorithm, b.Instance)
}
