package experiment

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/skim722/Algorithm/rtd"
	"github.com/skim722/Algorithm/rtd/tracefile"
)

// Result records one completed analysis.
type Result struct {
	Analysis   AnalysisSpec
	OutputPath string
	Curve      *rtd.Curve         // nil for boxplot
	Boxplot    *rtd.BoxplotResult // nil for curves
}

// Runner executes the analyses of a Spec. Each (algorithm, instance) batch is loaded
// once and shared by every analysis that uses it.
type Runner struct {
	Spec      *Spec
	TraceRoot string
	OutputDir string

	batches map[string]*rtd.Batch
}

// NewRunner fills spec defaults, validates it and returns a Runner. Empty traceRoot or outputDir fall back
// to the spec's values, then to "output" and ".".
func NewRunner(spec *Spec, traceRoot, outputDir string) (*Runner, error) {
	if spec == nil {
		return nil, fmt.Errorf("nil analysis spec")
	}
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis spec: %w", err)
	}
	return &Runner{
		Spec:      spec,
		TraceRoot: firstNonEmpty(traceRoot, spec.TraceRoot, "output"),
		OutputDir: firstNonEmpty(outputDir, spec.OutputDir, "."),
		batches:   make(map[string]*rtd.Batch),
	}, nil
}

// Run executes every analysis in declaration order. The first failure aborts the run and
// is returned wrapped with the analysis kind, algorithm and instance.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, 0, len(r.Spec.Analyses))
	for _, a := range r.Spec.Analyses {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := r.runOne(ctx, a)
		if err != nil {
			return results, fmt.Errorf("%s for algorithm %s on instance %s: %w", a.Kind, a.Algorithm, a.Instance, err)
		}
		logrus.Infof("%s %s/%s: wrote %s", a.Kind, a.Algorithm, a.Instance, res.OutputPath)
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, a AnalysisSpec) (Result, error) {
	b, err := r.batch(ctx, a.Algorithm, a.Instance)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		Analysis:   a,
		OutputPath: filepath.Join(r.OutputDir, tracefile.OutputName(a.Kind, a.Algorithm, a.Instance)),
	}

	if a.Kind == KindBoxplot {
		res.Boxplot, err = rtd.Boxplot(b)
		if err != nil {
			return Result{}, err
		}
		return res, tracefile.WriteBoxplot(res.OutputPath, res.Boxplot)
	}

	scale, err := rtd.ScaleFromSlice(a.Scales)
	if err != nil {
		return Result{}, err
	}
	switch a.Kind {
	case KindQRTD:
		res.Curve, err = rtd.QRTD(b, a.NumPlots, scale)
	case KindSQD:
		res.Curve, err = rtd.SQD(b, a.NumPlots, scale)
	case KindConvergence:
		res.Curve, err = rtd.Convergence(b, scale)
	default:
		err = fmt.Errorf("unknown kind %q", a.Kind)
	}
	if err != nil {
		return Result{}, err
	}
	return res, tracefile.WriteCurve(res.OutputPath, res.Curve)
}

func (r *Runner) batch(ctx context.Context, algorithm, instance string) (*rtd.Batch, error) {
	key := algorithm + "/" + instance
	if b, ok := r.batches[key]; ok {
		return b, nil
	}
	reference, ok := r.Spec.Reference(instance)
	if !ok {
		return nil, fmt.Errorf("instance %q has no reference quality", instance)
	}
	b, err := tracefile.DiscoverBatch(ctx, r.TraceRoot, algorithm, instance, reference)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("loaded %s: %d traces, reference %v", key, len(b.Traces), reference)
	r.batches[key] = b
	return b, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
