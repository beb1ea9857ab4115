package app

import (
	"github.com/spf13/cobra"
	"k8s.io/component-base/logs"
)

// NewPopconvCommand creates the popconv command with its pop2csv and csv2pop
// subcommands.
func NewPopconvCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "popconv",
		Short: "Convert ModCell populations between the population and table formats",
		Long: `popconv converts ModCell populations.

pop2csv turns a population file into a table that keeps only the
non-dominated designs. csv2pop turns such a table back into a population
file, e.g. to seed a new run.`,
		SilenceUsage: true,
	}
	logs.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newPop2CSVCommand(),
		newCSV2PopCommand(),
	)
	return cmd
}
