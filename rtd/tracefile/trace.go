// Package tracefile reads solver trace files into rtd batches and writes curve tables.
//
// A trace file is a comma-delimited table with one observation per row:
// timestamp in decimal seconds, then an integer quality. Rows must already be sorted by
// timestamp. Trace files are named <instance>_<ALGO>_<cutoff>[_<seed>].trace and live under
// <root>/<ALGO>/.
package tracefile

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/skim722/Algorithm/rtd"
)

// LoadTrace reads one trace file.
func LoadTrace(path string) (rtd.Trace, error) {
	file, err := os.Open(path)
	if err != nil {
		return rtd.Trace{}, fmt.Errorf("opening trace %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only file

	return ReadTrace(file, path)
}

// ReadTrace parses trace rows from r. source names the trace in errors and logs.
// Returns ErrMalformedTrace for unparsable or unsorted rows and ErrInvalidBatch for a
// trace with no rows.
func ReadTrace(r io.Reader, source string) (rtd.Trace, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	tr := rtd.Trace{Source: source}
	rowIdx := 0
	increases := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowIdx++
		if err != nil {
			return rtd.Trace{}, fmt.Errorf("trace %s row %d: %v: %w", source, rowIdx, err, rtd.ErrMalformedTrace)
		}
		obs, err := parseObservation(record)
		if err != nil {
			return rtd.Trace{}, fmt.Errorf("trace %s row %d: %v: %w", source, rowIdx, err, rtd.ErrMalformedTrace)
		}
		if n := len(tr.Observations); n > 0 {
			prev := tr.Observations[n-1]
			if obs.Time < prev.Time {
				return rtd.Trace{}, fmt.Errorf("trace %s row %d: timestamp %v precedes %v: %w",
					source, rowIdx, obs.Time, prev.Time, rtd.ErrMalformedTrace)
			}
			if obs.Quality > prev.Quality {
				increases++
			}
		}
		tr.Observations = append(tr.Observations, obs)
	}

	if len(tr.Observations) == 0 {
		return rtd.Trace{}, fmt.Errorf("trace %s has no observations: %w", source, rtd.ErrInvalidBatch)
	}
	if increases > 0 {
		logrus.Warnf("trace %s: quality increases %d time(s); expected non-increasing quality", source, increases)
	}
	return tr, nil
}

func parseObservation(record []string) (rtd.Observation, error) {
	if len(record) != 2 {
		return rtd.Observation{}, fmt.Errorf("expected 2 fields (timestamp, quality), got %d", len(record))
	}
	timeSec, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
	if err != nil {
		return rtd.Observation{}, fmt.Errorf("invalid timestamp %q", record[0])
	}
	if math.IsNaN(timeSec) || math.IsInf(timeSec, 0) || timeSec < 0 {
		return rtd.Observation{}, fmt.Errorf("timestamp must be a finite non-negative number, got %q", record[0])
	}
	quality, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
	if err != nil {
		return rtd.Observation{}, fmt.Errorf("invalid quality %q", record[1])
	}
	if quality < 0 {
		return rtd.Observation{}, fmt.Errorf("quality must be non-negative, got %d", quality)
	}
	return rtd.Observation{Time: timeSec, Quality: float64(quality)}, nil
}
