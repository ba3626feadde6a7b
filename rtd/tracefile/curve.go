package tracefile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/skim722/Algorithm/rtd"
)

// BoxplotKind names boxplot output files alongside the rtd curve kinds.
const BoxplotKind = "boxplot"

// OutputName returns the file name for an analysis result, e.g. QRTD_GA_power.csv.
func OutputName(kind, algorithm, instance string) string {
	return fmt.Sprintf("%s_%s_%s.csv", strings.ToUpper(kind), strings.ToUpper(algorithm), NormalizeInstance(instance))
}

// EncodeCurve writes the curve header and rows as CSV. Values use the shortest decimal
// form that round-trips, so identical curves always encode to identical bytes.
func EncodeCurve(w io.Writer, c *rtd.Curve) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(c.Header()); err != nil {
		return fmt.Errorf("writing curve header: %w", err)
	}
	for i, row := range c.Rows {
		if err := writer.Write(formatRow(row)); err != nil {
			return fmt.Errorf("writing curve row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// EncodeBoxplot writes the worst cover size as the header and one running time per row,
// in batch order.
func EncodeBoxplot(w io.Writer, res *rtd.BoxplotResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"", "cover_size", rtd.FormatValue(res.WorstCoverSize)}); err != nil {
		return fmt.Errorf("writing boxplot header: %w", err)
	}
	for i, v := range res.RunningTimes {
		if err := writer.Write([]string{fmt.Sprint(i), rtd.FormatValue(v)}); err != nil {
			return fmt.Errorf("writing boxplot row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCurve writes a curve to path, replacing any existing file.
func WriteCurve(path string, c *rtd.Curve) error {
	return writeFile(path, func(w io.Writer) error { return EncodeCurve(w, c) })
}

// WriteBoxplot writes boxplot samples to path, replacing any existing file.
func WriteBoxplot(path string, res *rtd.BoxplotResult) error {
	return writeFile(path, func(w io.Writer) error { return EncodeBoxplot(w, res) })
}

func writeFile(path string, encode func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := encode(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	logrus.Debugf("wrote %s", path)
	return nil
}

func formatRow(row []float64) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = rtd.FormatValue(v)
	}
	return out
}
