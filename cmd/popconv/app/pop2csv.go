package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/klog/v2"

	"modcell.io/popio/pkg/multiobjective/framework"
	"modcell.io/popio/pkg/multiobjective/util"
	"modcell.io/popio/pkg/popio"
	"modcell.io/popio/pkg/problem"
)

func newPop2CSVCommand() *cobra.Command {
	o := NewOptions()
	cmd := &cobra.Command{
		Use:   "pop2csv PROBLEM_PATH POP_PATH",
		Short: "Convert a population file to a table of non-dominated designs",
		Long: `Decodes POP_PATH with the identifier maps of PROBLEM_PATH, removes
duplicate designs and designs with more than --alpha deletions, keeps the
non-dominated designs and writes them as a table.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd.Flags(), args[0]); err != nil {
				return err
			}
			return runPop2CSV(cmd.Context(), cmd.OutOrStdout(), o, args[1])
		},
	}
	o.AddFlags(cmd.Flags())
	o.AddFilterFlags(cmd.Flags())
	return cmd
}

func runPop2CSV(ctx context.Context, out io.Writer, o *Options, popPath string) error {
	logger := klog.FromContext(ctx)
	args := o.Args

	ids, err := problem.Load(args.ProblemPath)
	if err != nil {
		return fmt.Errorf("load problem: %w", err)
	}
	pop, err := decodeFile(popPath, ids)
	if err != nil {
		return err
	}
	if pop.DroppedEmpty > 0 {
		logger.Info("Dropped designs without deletions", "count", pop.DroppedEmpty)
	}

	filtered, report, err := popio.NewPipeline(pipelineOptions(args)).Run(ctx, pop)
	if err != nil {
		return fmt.Errorf("filter %s: %w", popPath, err)
	}
	if report.Duplicates > 0 {
		logger.Info("Removed duplicate designs", "count", report.Duplicates)
	}
	if report.AlphaViolations > 0 {
		logger.Info("Removed designs exceeding the deletion limit", "count", report.AlphaViolations, "alpha", *args.Alpha)
	}

	// Everything is rendered before the first file is written.
	var table bytes.Buffer
	header, rows := popio.Records(filtered)
	if err := writeCSV(&table, header, rows); err != nil {
		return err
	}

	outputPath := o.Output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(popPath, ".pop") + ".csv"
	}
	outputs := []outputFile{{path: outputPath, data: table.Bytes()}}

	if len(args.PlotObjectives) == 2 {
		points, err := frontPoints(filtered, args.PlotObjectives)
		if err != nil {
			return err
		}
		if len(points) == 0 {
			logger.Info("Skipping front plot, no retained design has both objectives", "objectives", args.PlotObjectives)
		} else {
			plotPath := o.PlotOutput
			if plotPath == "" {
				plotPath = strings.TrimSuffix(outputPath, ".csv") + "_front.html"
			}
			var plot bytes.Buffer
			title := fmt.Sprintf("Non-dominated designs: %s vs %s", args.PlotObjectives[0], args.PlotObjectives[1])
			labels := [2]string{args.PlotObjectives[0], args.PlotObjectives[1]}
			if err := util.PlotFront(&plot, title, labels, points); err != nil {
				return err
			}
			outputs = append(outputs, outputFile{path: plotPath, data: plot.Bytes()})
		}
	}

	if args.MetricsFile != "" {
		var metrics bytes.Buffer
		if err := renderMetrics(&metrics, "pop2csv", report, pop.DroppedEmpty); err != nil {
			return err
		}
		outputs = append(outputs, outputFile{path: args.MetricsFile, data: metrics.Bytes()})
	}

	if err := writeOutputs(outputs); err != nil {
		return err
	}
	for _, f := range outputs[1:] {
		logger.V(1).Info("Wrote file", "path", f.path)
	}

	compared := report.Input - report.Duplicates - report.AlphaViolations
	fmt.Fprintf(out, "Non-dominated solutions: %s/%s\n",
		humanize.Comma(int64(report.Retained)), humanize.Comma(int64(compared)))
	logger.V(1).Info("Wrote table", "path", outputPath, "rows", len(rows))
	return nil
}

func decodeFile(path string, ids *popio.IdentifierMap) (*popio.Population, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pop, err := popio.Decode(f, ids)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return pop, nil
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// frontPoints collects the objectives of two models. Designs missing either
// value are left out.
func frontPoints(pop *popio.Population, models []string) ([]framework.ObjectiveSpacePoint, error) {
	known := sets.New(pop.Models...)
	for _, m := range models {
		if !known.Has(m) {
			return nil, fmt.Errorf("cannot plot unknown model %q", m)
		}
	}

	var points []framework.ObjectiveSpacePoint
	for _, ind := range pop.Individuals {
		x, okx := ind.Objectives[models[0]]
		y, oky := ind.Objectives[models[1]]
		if !okx || !oky || math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		points = append(points, framework.ObjectiveSpacePoint{x, y})
	}
	return points, nil
}
