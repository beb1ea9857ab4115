package popio

import (
	"context"
	"fmt"
	"math"

	"k8s.io/klog/v2"

	"modcell.io/popio/pkg/multiobjective/framework"
)

// Sense tells how objective values in a population are to be read.
type Sense string

const (
	// Minimize treats lower objective values as better.
	Minimize Sense = "Minimize"
	// Maximize treats higher objective values as better. Values are negated
	// before the dominance filter runs.
	Maximize Sense = "Maximize"
)

// DominanceOptions configures KeepNonDominated.
type DominanceOptions struct {
	Sense Sense
	// Tolerance is the per-objective difference under which two designs
	// count as equal.
	Tolerance float64
	// Workers above 1 spreads the filter across goroutines.
	Workers int
}

// PipelineOptions configures the filtering steps applied after decoding.
type PipelineOptions struct {
	// Alpha caps the number of deletions of a retained individual. Nil
	// means no cap.
	Alpha *int
	// KeepDominated skips the dominance filter.
	KeepDominated bool
	DominanceOptions
}

// Report counts what each filtering step removed.
type Report struct {
	Input           int
	Duplicates      int
	AlphaViolations int
	Dominated       int
	Retained        int
}

// Pipeline deduplicates a population, applies the alpha constraint and keeps
// the non-dominated individuals.
type Pipeline struct {
	opts PipelineOptions
}

func NewPipeline(opts PipelineOptions) *Pipeline {
	return &Pipeline{opts: opts}
}

// Run returns a new population holding the surviving individuals, indexed
// from zero in their original relative order. pop is not modified.
func (p *Pipeline) Run(ctx context.Context, pop *Population) (*Population, Report, error) {
	logger := klog.FromContext(ctx)
	report := Report{Input: len(pop.Individuals)}

	inds, n := Deduplicate(pop.Individuals)
	report.Duplicates = n

	inds, n = ApplyAlpha(inds, p.opts.Alpha)
	report.AlphaViolations = n

	if !p.opts.KeepDominated {
		var err error
		inds, n, err = KeepNonDominated(ctx, inds, pop.Models, p.opts.DominanceOptions)
		if err != nil {
			return nil, report, err
		}
		report.Dominated = n
	}

	for i := range inds {
		inds[i].Index = i
	}
	report.Retained = len(inds)
	logger.V(2).Info("Filtered population",
		"input", report.Input,
		"duplicates", report.Duplicates,
		"alphaViolations", report.AlphaViolations,
		"dominated", report.Dominated,
		"retained", report.Retained)

	out := &Population{
		Metadata:     pop.Metadata,
		Models:       pop.Models,
		Individuals:  inds,
		DroppedEmpty: pop.DroppedEmpty,
	}
	return out, report, nil
}

// Deduplicate keeps the first of every group of individuals with equal
// deletions and modules and returns how many were removed.
func Deduplicate(inds []Individual) ([]Individual, int) {
	seen := make(map[string]struct{}, len(inds))
	out := make([]Individual, 0, len(inds))
	for _, ind := range inds {
		key := ind.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ind)
	}
	return out, len(inds) - len(out)
}

// ApplyAlpha drops individuals with more than alpha deletions. A nil alpha
// keeps everything.
func ApplyAlpha(inds []Individual, alpha *int) ([]Individual, int) {
	out := make([]Individual, 0, len(inds))
	for _, ind := range inds {
		if alpha != nil && len(ind.Deletions) > *alpha {
			continue
		}
		out = append(out, ind)
	}
	return out, len(inds) - len(out)
}

// ObjectiveRows builds one row per individual with its objective values in
// models order. A missing value becomes NaN, which the dominance filter never
// ranks against anything.
func ObjectiveRows(inds []Individual, models []string, sense Sense) [][]float64 {
	rows := make([][]float64, len(inds))
	for i, ind := range inds {
		row := make([]float64, len(models))
		for j, m := range models {
			v, ok := ind.Objectives[m]
			switch {
			case !ok:
				v = math.NaN()
			case sense == Maximize:
				v = -v
			}
			row[j] = v
		}
		rows[i] = row
	}
	return rows
}

// KeepNonDominated keeps the individuals whose objective vectors no other
// individual dominates and returns how many were removed.
func KeepNonDominated(ctx context.Context, inds []Individual, models []string, opts DominanceOptions) ([]Individual, int, error) {
	switch opts.Sense {
	case "", Minimize, Maximize:
	default:
		return nil, 0, fmt.Errorf("unknown objective sense %q", opts.Sense)
	}

	m, err := framework.NewObjectiveMatrix(ObjectiveRows(inds, models, opts.Sense))
	if err != nil {
		return nil, 0, err
	}

	filterOpts := []framework.FilterOption{framework.WithEqualityTolerance(opts.Tolerance)}
	var mask []bool
	if opts.Workers > 1 {
		mask, err = framework.NonDominatedConcurrent(ctx, m, opts.Workers, filterOpts...)
		if err != nil {
			return nil, 0, err
		}
	} else {
		mask = framework.NonDominated(m, filterOpts...)
	}

	out := make([]Individual, 0, len(inds))
	for i, keep := range mask {
		if keep {
			out = append(out, inds[i])
		}
	}
	return out, len(inds) - len(out), nil
}
