package rtd

// FindProbability returns the fraction of traces in the batch whose quality at timeSec
// (last observation at or before timeSec) is within relErr of the reference.
// The result is in [0,1].
func FindProbability(b *Batch, timeSec, relErr float64) (float64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return b.probability(timeSec, relErr), nil
}

// MeanRelativeError returns the mean, across traces, of the relative error of each trace's
// quality at timeSec.
func MeanRelativeError(b *Batch, timeSec float64) (float64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return b.meanRelativeError(timeSec), nil
}

// probability assumes a validated batch.
func (b *Batch) probability(timeSec, relErr float64) float64 {
	solved := 0
	for i := range b.Traces {
		if b.RelativeError(b.Traces[i].QualityAt(timeSec)) <= relErr {
			solved++
		}
	}
	return float64(solved) / float64(len(b.Traces))
}

// meanRelativeError assumes a validated batch. Errors are summed in trace order.
func (b *Batch) meanRelativeError(timeSec float64) float64 {
	sum := 0.0
	for i := range b.Traces {
		sum += b.RelativeError(b.Traces[i].QualityAt(timeSec))
	}
	return sum / float64(len(b.Traces))
}
