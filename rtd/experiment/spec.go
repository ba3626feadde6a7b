// Package experiment describes a set of trace analyses in YAML and runs them.
//
// A Spec replaces per-script lists of (algorithm, instance, reference, scale) tuples:
// every analysis names its algorithm and instance, and every instance carries its
// reference quality.
package experiment

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skim722/Algorithm/rtd"
	"github.com/skim722/Algorithm/rtd/tracefile"
)

// Analysis kinds.
const (
	KindQRTD        = string(rtd.CurveQRTD)
	KindSQD         = string(rtd.CurveSQD)
	KindConvergence = string(rtd.CurveConvergence)
	KindBoxplot     = tracefile.BoxplotKind
)

var validKinds = map[string]bool{
	KindQRTD: true, KindSQD: true, KindConvergence: true, KindBoxplot: true,
}

// Spec is the top-level analysis configuration.
// Loaded from YAML via LoadSpec(path).
type Spec struct {
	Version   string         `yaml:"version"`
	TraceRoot string         `yaml:"trace_root,omitempty"`
	OutputDir string         `yaml:"output_dir,omitempty"`
	Instances []InstanceSpec `yaml:"instances"`
	Analyses  []AnalysisSpec `yaml:"analyses"`
}

// InstanceSpec names a problem instance and its reference (best-known) quality.
type InstanceSpec struct {
	Name      string  `yaml:"name"`
	Reference float64 `yaml:"reference"`
}

// AnalysisSpec is one curve or boxplot to compute for an algorithm/instance pair.
type AnalysisSpec struct {
	Kind      string    `yaml:"kind"`
	Algorithm string    `yaml:"algorithm"`
	Instance  string    `yaml:"instance"`
	NumPlots  int       `yaml:"num_plots,omitempty"` // qrtd/sqd only; 0 means rtd.DefaultNumPlots
	Scales    []float64 `yaml:"scales,omitempty"`    // [error_low, error_high, time_low, time_high]
}

// LoadSpec reads and parses a YAML analysis specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading analysis spec: %w", err)
	}
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing analysis spec: %w", err)
	}
	spec.applyDefaults()
	return &spec, nil
}

func (s *Spec) applyDefaults() {
	if s.Version == "" {
		s.Version = "1"
	}
	for i := range s.Instances {
		s.Instances[i].Name = tracefile.NormalizeInstance(s.Instances[i].Name)
	}
	for i := range s.Analyses {
		a := &s.Analyses[i]
		a.Kind = strings.ToLower(a.Kind)
		a.Algorithm = strings.ToUpper(a.Algorithm)
		a.Instance = tracefile.NormalizeInstance(a.Instance)
		if a.NumPlots == 0 && (a.Kind == KindQRTD || a.Kind == KindSQD) {
			a.NumPlots = rtd.DefaultNumPlots
		}
		if len(a.Scales) == 0 && a.Kind != KindBoxplot {
			a.Scales = rtd.DefaultScale.Slice()
		}
	}
}

// Validate checks that all fields in the spec are valid.
func (s *Spec) Validate() error {
	if s.Version != "1" {
		return fmt.Errorf("unsupported version %q; valid: 1", s.Version)
	}
	if len(s.Analyses) == 0 {
		return fmt.Errorf("at least one analysis required")
	}
	seen := make(map[string]bool, len(s.Instances))
	for i, inst := range s.Instances {
		prefix := fmt.Sprintf("instances[%d]", i)
		if inst.Name == "" {
			return fmt.Errorf("%s: name must not be empty", prefix)
		}
		if seen[inst.Name] {
			return fmt.Errorf("%s: duplicate instance %q", prefix, inst.Name)
		}
		seen[inst.Name] = true
		if math.IsNaN(inst.Reference) || math.IsInf(inst.Reference, 0) || inst.Reference <= 0 {
			return fmt.Errorf("%s: reference must be a finite positive number, got %v", prefix, inst.Reference)
		}
	}
	for i := range s.Analyses {
		if err := validateAnalysis(&s.Analyses[i], i, seen); err != nil {
			return err
		}
	}
	return nil
}

func validateAnalysis(a *AnalysisSpec, idx int, instances map[string]bool) error {
	prefix := fmt.Sprintf("analyses[%d]", idx)
	if !validKinds[a.Kind] {
		return fmt.Errorf("%s: unknown kind %q; valid: qrtd, sqd, convergence, boxplot", prefix, a.Kind)
	}
	if a.Algorithm == "" {
		return fmt.Errorf("%s: algorithm must not be empty", prefix)
	}
	if !instances[a.Instance] {
		return fmt.Errorf("%s: instance %q is not declared under instances", prefix, a.Instance)
	}
	switch a.Kind {
	case KindQRTD, KindSQD:
		if a.NumPlots < 1 {
			return fmt.Errorf("%s: num_plots must be at least 1, got %d", prefix, a.NumPlots)
		}
	default:
		if a.NumPlots != 0 {
			return fmt.Errorf("%s: num_plots does not apply to %s", prefix, a.Kind)
		}
	}
	if a.Kind == KindBoxplot {
		if len(a.Scales) != 0 {
			return fmt.Errorf("%s: scales do not apply to boxplot", prefix)
		}
		return nil
	}
	if _, err := rtd.ScaleFromSlice(a.Scales); err != nil {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	return nil
}

// Reference returns the reference quality of the named instance.
func (s *Spec) Reference(instance string) (float64, bool) {
	instance = tracefile.NormalizeInstance(instance)
	for _, inst := range s.Instances {
		if inst.Name == instance {
			return inst.Reference, true
		}
	}
	return 0, false
}
