package tracefile

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/skim722/Algorithm/rtd"
)

// TraceExt is the file extension of trace files.
const TraceExt = ".trace"

// TraceName is the parsed form of <instance>_<ALGO>_<cutoff>[_<seed>].trace.
type TraceName struct {
	Instance  string
	Algorithm string
	Cutoff    float64 // solver time limit in seconds
	Seed      int64   // 0 when the name carries no seed
}

// ParseName parses a trace file name. Instance identifiers may themselves contain
// underscores, so the name is read from the right.
func ParseName(path string) (TraceName, error) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, TraceExt) {
		return TraceName{}, fmt.Errorf("trace file %q lacks %s extension", base, TraceExt)
	}
	parts := strings.Split(strings.TrimSuffix(base, TraceExt), "_")

	// With seed: ..._<ALGO>_<cutoff>_<seed>
	if n := len(parts); n >= 4 {
		seed, seedErr := strconv.ParseInt(parts[n-1], 10, 64)
		cutoff, cutoffErr := strconv.ParseFloat(parts[n-2], 64)
		if seedErr == nil && cutoffErr == nil && parts[n-3] != "" {
			return TraceName{
				Instance:  strings.Join(parts[:n-3], "_"),
				Algorithm: parts[n-3],
				Cutoff:    cutoff,
				Seed:      seed,
			}, nil
		}
	}
	// Without seed: ..._<ALGO>_<cutoff>
	if n := len(parts); n >= 3 {
		cutoff, err := strconv.ParseFloat(parts[n-1], 64)
		if err == nil && parts[n-2] != "" {
			return TraceName{
				Instance:  strings.Join(parts[:n-2], "_"),
				Algorithm: parts[n-2],
				Cutoff:    cutoff,
			}, nil
		}
	}
	return TraceName{}, fmt.Errorf("trace file %q does not match <instance>_<ALGO>_<cutoff>[_<seed>]%s", base, TraceExt)
}

// NormalizeInstance strips any directory and extension from an instance identifier,
// so "data/power.graph" and "power" name the same instance.
func NormalizeInstance(instance string) string {
	name, _, _ := strings.Cut(filepath.Base(instance), ".")
	return name
}

// Discover lists the trace files of one algorithm on one instance:
// <root>/<ALGO>/<instance>_*.trace whose parsed instance matches exactly.
// Paths are returned sorted so batch order is deterministic.
func Discover(root, algorithm, instance string) ([]string, error) {
	algo := strings.ToUpper(algorithm)
	instance = NormalizeInstance(instance)
	pattern := filepath.Join(root, algo, instance+"_*"+TraceExt)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", pattern, err)
	}

	var paths []string
	for _, m := range matches {
		name, err := ParseName(m)
		if err != nil {
			logrus.Warnf("skipping %s: %v", m, err)
			continue
		}
		if name.Instance != instance {
			logrus.Debugf("skipping %s: belongs to instance %q", m, name.Instance)
			continue
		}
		logrus.Debugf("discovered %s (algorithm=%s cutoff=%vs seed=%d)", m, name.Algorithm, name.Cutoff, name.Seed)
		paths = append(paths, m)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no trace files match %s: %w", pattern, rtd.ErrInvalidBatch)
	}
	return paths, nil
}

// LoadBatch parses every path into one batch. Files are parsed in parallel; trace order
// follows paths. The first failure aborts the whole batch.
func LoadBatch(ctx context.Context, paths []string, instance, algorithm string, reference float64) (*rtd.Batch, error) {
	traces := make([]rtd.Trace, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tr, err := LoadTrace(path)
			if err != nil {
				return err
			}
			traces[i] = tr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rtd.NewBatch(NormalizeInstance(instance), strings.ToUpper(algorithm), reference, traces)
}

// DiscoverBatch discovers and loads the batch of one algorithm on one instance.
func DiscoverBatch(ctx context.Context, root, algorithm, instance string, reference float64) (*rtd.Batch, error) {
	paths, err := Discover(root, algorithm, instance)
	if err != nil {
		return nil, err
	}
	return LoadBatch(ctx, paths, instance, algorithm, reference)
}
