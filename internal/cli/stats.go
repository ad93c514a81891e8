package cli

import (
	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &simFlags{}

	cmd := &cobra.Command{
		Use:   "stats <circuit.yaml>",
		Short: "Enumerate every measurement-outcome branch of a circuit",
		Long: `Replay the circuit once per combination of measurement outcomes and
print every reachable branch with its probability and classical bits.
In density-matrix mode measurements never branch, so a single
deterministic run covers all outcomes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, flags, args[0], cmd)
		},
	}

	flags.register(cmd)
	return cmd
}

func runStats(opts *RootOptions, flags *simFlags, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	c, err := loadOrReport(formatter, path)
	if err != nil {
		return err
	}

	s, err := newSimulator(formatter, c, flags)
	if err != nil {
		return err
	}

	res, err := s.RunStatistics(zeroState(c), nil)
	if err != nil {
		return reportSimError(formatter, err)
	}

	formatter.VerboseLog("%d measurements, %d reachable branches, total p=%.6g",
		c.CountMeasurements(), len(res.Branches), res.TotalProbability())

	if err := recordRun(formatter, flags.dbPath, res); err != nil {
		return err
	}
	return formatter.SuccessText(renderResult(res), viewResult(res))
}
