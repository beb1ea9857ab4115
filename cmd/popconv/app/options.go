package app

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"modcell.io/popio/apis/config/v1alpha1"
	"modcell.io/popio/apis/config/validation"
	"modcell.io/popio/pkg/popio"
)

const envPrefix = "POPCONV_"

// Options has all the params needed to run a conversion.
type Options struct {
	ConfigFile string
	Output     string
	PlotOutput string

	// Args is set by Complete.
	Args *v1alpha1.ConversionArgs

	alpha          int32
	keepDominated  bool
	objectiveSense string
	tolerance      float64
	parallelism    int32
	plotObjectives []string
	metricsFile    string
}

func NewOptions() *Options {
	return &Options{}
}

// AddFlags adds the flags shared by every subcommand.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "Path to a ConversionArgs configuration file.")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output file name. Derived from the input file name when empty.")
}

// AddFilterFlags adds the flags controlling the filtering pipeline.
func (o *Options) AddFilterFlags(fs *pflag.FlagSet) {
	fs.Int32Var(&o.alpha, "alpha", 0, "Maximum number of deletions of a retained design. Unlimited when not set.")
	fs.BoolVar(&o.keepDominated, "keep-dominated", false, "Keep dominated designs.")
	fs.StringVar(&o.objectiveSense, "sense", string(v1alpha1.ObjectiveSenseMinimize), "Objective sense, Minimize or Maximize.")
	fs.Float64Var(&o.tolerance, "tolerance", 0, "Per-objective difference under which two designs are equal.")
	fs.Int32Var(&o.parallelism, "workers", 1, "Number of goroutines used by the dominance filter.")
	fs.StringSliceVar(&o.plotObjectives, "plot-objectives", nil, "Two models whose objectives are plotted against each other.")
	fs.StringVar(&o.PlotOutput, "plot-output", o.PlotOutput, "Plot file name. Derived from the output file name when empty.")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "Write filter counters to this file in the Prometheus text format.")
}

// Complete builds Args from the configuration file, the environment and the
// flags that were set, in that order, then defaults and validates them.
func (o *Options) Complete(fs *pflag.FlagSet, problemPath string) error {
	args := &v1alpha1.ConversionArgs{}
	if o.ConfigFile != "" {
		var err error
		if args, err = loadConfigFile(o.ConfigFile); err != nil {
			return err
		}
	}

	if err := env.ParseWithOptions(args, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if problemPath != "" {
		args.ProblemPath = problemPath
	}
	if fs.Changed("alpha") {
		args.Alpha = ptr.To(o.alpha)
	}
	if fs.Changed("keep-dominated") {
		args.KeepDominated = ptr.To(o.keepDominated)
	}
	if fs.Changed("sense") {
		args.ObjectiveSense = v1alpha1.ObjectiveSense(o.objectiveSense)
	}
	if fs.Changed("tolerance") {
		args.EqualityTolerance = ptr.To(o.tolerance)
	}
	if fs.Changed("workers") {
		args.Parallelism = ptr.To(o.parallelism)
	}
	if fs.Changed("plot-objectives") {
		args.PlotObjectives = o.plotObjectives
	}
	if fs.Changed("metrics-file") {
		args.MetricsFile = o.metricsFile
	}

	v1alpha1.SetDefaults_ConversionArgs(args)
	if err := validation.ValidateConversionArgs(args); err != nil {
		return err
	}
	o.Args = args
	return nil
}

func loadConfigFile(path string) (*v1alpha1.ConversionArgs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	args := &v1alpha1.ConversionArgs{}
	if err := yaml.UnmarshalStrict(data, args); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if args.Kind != "" && args.Kind != v1alpha1.ConversionArgsKind {
		return nil, fmt.Errorf("%s: want kind %s, got %q", path, v1alpha1.ConversionArgsKind, args.Kind)
	}
	if gv := v1alpha1.SchemeGroupVersion.String(); args.APIVersion != "" && args.APIVersion != gv {
		return nil, fmt.Errorf("%s: want apiVersion %s, got %q", path, gv, args.APIVersion)
	}
	return args, nil
}

// pipelineOptions converts defaulted Args to popio options.
func pipelineOptions(args *v1alpha1.ConversionArgs) popio.PipelineOptions {
	opts := popio.PipelineOptions{
		KeepDominated: ptr.Deref(args.KeepDominated, false),
		DominanceOptions: popio.DominanceOptions{
			Sense:     popio.Sense(args.ObjectiveSense),
			Tolerance: ptr.Deref(args.EqualityTolerance, 0),
			Workers:   int(ptr.Deref(args.Parallelism, 1)),
		},
	}
	if args.Alpha != nil {
		opts.Alpha = ptr.To(int(*args.Alpha))
	}
	return opts
}
