package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claretgrace0801/qutip-qip/internal/store"
)

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "log <circuit.yaml>",
		Short: "List recorded runs of a circuit",
		Long: `List every run recorded for the circuit's canonical hash, oldest
first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(rootOpts, args[0], dbPath, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite run log to read")
	cmd.MarkFlagRequired("db")
	return cmd
}

func runLog(opts *RootOptions, path, dbPath string, cmd *cobra.Command) error {
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

	db, err := store.Open(dbPath)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error())
		return WrapExitError(ExitCommandError, "opening run log", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(context.Background(), c.Hash())
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error())
		return WrapExitError(ExitCommandError, "reading run log", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d run(s) for circuit %s\n", len(runs), c.Hash())
	for _, r := range runs {
		fmt.Fprintf(&b, "%s %s %d branch(es)\n", r.Token, r.Mode, len(r.Branches))
		for i, br := range r.Branches {
			fmt.Fprintf(&b, "  branch %d: p=%.6g cbits=%v\n", i, br.Probability, br.Cbits)
		}
	}
	return formatter.SuccessText(b.String(), runs)
}
