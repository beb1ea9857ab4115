package app

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"modcell.io/popio/pkg/popio"
	"modcell.io/popio/pkg/problem"
)

func newCSV2PopCommand() *cobra.Command {
	o := NewOptions()
	cmd := &cobra.Command{
		Use:   "csv2pop PROBLEM_PATH PF_PATH",
		Short: "Convert a table of designs back to a population file",
		Long: `Does the reverse of pop2csv. Useful to provide an interesting input
population. Objective values are not written; the optimizer recomputes them.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd.Flags(), args[0]); err != nil {
				return err
			}
			return runCSV2Pop(cmd.Context(), cmd.OutOrStdout(), o, args[1])
		},
	}
	o.AddFlags(cmd.Flags())
	return cmd
}

func runCSV2Pop(ctx context.Context, out io.Writer, o *Options, pfPath string) error {
	logger := klog.FromContext(ctx)

	ids, err := problem.Load(o.Args.ProblemPath)
	if err != nil {
		return fmt.Errorf("load problem: %w", err)
	}
	header, rows, err := readCSV(pfPath)
	if err != nil {
		return err
	}

	pop, err := popio.FromRecords(header, rows, ids.Models.Externals())
	if err != nil {
		return fmt.Errorf("read %s: %w", pfPath, err)
	}
	text, err := popio.Encode(pop, ids)
	if err != nil {
		return fmt.Errorf("encode %s: %w", pfPath, err)
	}

	outputPath := o.Output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(pfPath, ".csv") + "_pf.pop"
	}
	if err := writeOutputs([]outputFile{{path: outputPath, data: text}}); err != nil {
		return err
	}
	logger.V(1).Info("Wrote population", "path", outputPath, "individuals", len(pop.Individuals))
	fmt.Fprintln(out, "Output written to:", outputPath)
	return nil
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, errors.New(path + ": empty table")
	}
	return records[0], records[1:], nil
}
