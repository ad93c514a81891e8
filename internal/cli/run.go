package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claretgrace0801/qutip-qip/internal/circuit"
	"github.com/claretgrace0801/qutip-qip/internal/linalg"
	"github.com/claretgrace0801/qutip-qip/internal/sim"
	"github.com/claretgrace0801/qutip-qip/internal/store"
)

// simFlags are the flags shared by run and stats.
type simFlags struct {
	mode       string
	precompute bool
	seed       int64
	dbPath     string
}

func (f *simFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", string(sim.ModeStateVector), "simulation mode")
	cmd.Flags().BoolVar(&f.precompute, "precompute", false, "aggregate consecutive unitaries at compile time")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed for sampled outcomes (0 = from clock)")
	cmd.Flags().StringVar(&f.dbPath, "db", "", "record the run into this SQLite run log")
}

// branchView is the JSON payload for one result branch.
type branchView struct {
	Probability float64  `json:"probability"`
	Cbits       []int    `json:"cbits,omitempty"`
	Amplitudes  []string `json:"amplitudes,omitempty"`
}

// resultView is the JSON payload for run and stats.
type resultView struct {
	Token       string       `json:"token"`
	CircuitHash string       `json:"circuit_hash"`
	Mode        string       `json:"mode"`
	Branches    []branchView `json:"branches"`
}

func viewResult(res *sim.Result) resultView {
	view := resultView{
		Token:       res.Token,
		CircuitHash: res.CircuitHash,
		Mode:        string(res.Mode),
	}
	for _, b := range res.Branches {
		bv := branchView{Probability: b.Probability, Cbits: b.Cbits}
		if v := b.State.Vector(); v != nil {
			bv.Amplitudes = make([]string, len(v))
			for i, a := range v {
				bv.Amplitudes[i] = strconv.FormatComplex(a, 'g', 6, 128)
			}
		}
		view.Branches = append(view.Branches, bv)
	}
	return view
}

func renderResult(res *sim.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s (%s)\n", res.Token, res.Mode)
	if len(res.Branches) == 0 {
		b.WriteString("no reachable branches\n")
		return b.String()
	}
	for i, br := range res.Branches {
		fmt.Fprintf(&b, "branch %d: p=%.6g", i, br.Probability)
		if len(br.Cbits) > 0 {
			fmt.Fprintf(&b, " cbits=%v", br.Cbits)
		}
		b.WriteByte('\n')
		if v := br.State.Vector(); v != nil {
			for j, a := range v {
				if a == 0 {
					continue
				}
				fmt.Fprintf(&b, "  |%0*b> %s\n", bitWidth(len(v)), j, strconv.FormatComplex(a, 'g', 6, 128))
			}
		}
	}
	return b.String()
}

func bitWidth(dim int) int {
	n := 0
	for d := dim; d > 1; d >>= 1 {
		n++
	}
	return n
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &simFlags{}
	var outcomes string

	cmd := &cobra.Command{
		Use:   "run <circuit.yaml>",
		Short: "Simulate one branch of a circuit",
		Long: `Execute a circuit from the all-zero state, sampling one outcome per
measurement (or forcing outcomes with --outcomes), and print the final
state, branch probability and classical bits.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(rootOpts, flags, args[0], outcomes, cmd)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&outcomes, "outcomes", "", "forced outcome bits, one per measurement (e.g. 011)")
	return cmd
}

func runRun(opts *RootOptions, flags *simFlags, path, outcomes string, cmd *cobra.Command) error {
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

	forced, err := parseOutcomes(outcomes)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error())
		return WrapExitError(ExitCommandError, "parsing outcomes", err)
	}

	res, err := s.Run(zeroState(c), nil, forced)
	if err != nil {
		return reportSimError(formatter, err)
	}

	if err := recordRun(formatter, flags.dbPath, res); err != nil {
		return err
	}
	return formatter.SuccessText(renderResult(res), viewResult(res))
}

func newSimulator(formatter *OutputFormatter, c *circuit.Circuit, flags *simFlags) (*sim.Simulator, error) {
	mode, err := sim.ParseMode(flags.mode)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error())
		return nil, WrapExitError(ExitCommandError, "configuring simulator", err)
	}

	s, err := sim.New(c, sim.Options{
		Mode:       mode,
		Precompute: flags.precompute,
		Outcomes:   sim.NewRandomOutcomes(flags.seed),
	})
	if err != nil {
		return nil, reportSimError(formatter, err)
	}
	return s, nil
}

func zeroState(c *circuit.Circuit) sim.State {
	return sim.Ket(linalg.BasisKet(1<<c.N, 0))
}

func parseOutcomes(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			out[i] = 0
		case '1':
			out[i] = 1
		default:
			return nil, fmt.Errorf("outcomes must be a bit string, got %q", s)
		}
	}
	return out, nil
}

func reportSimError(formatter *OutputFormatter, err error) error {
	code := ErrCodeGeneric
	var se *sim.Error
	if errors.As(err, &se) {
		code = string(se.Code)
	}
	formatter.Error(code, err.Error())
	return WrapExitError(ExitFailure, "simulation failed", err)
}

// recordRun writes the result into the run log when a database path was
// given.
func recordRun(formatter *OutputFormatter, dbPath string, res *sim.Result) error {
	if dbPath == "" {
		return nil
	}

	db, err := store.Open(dbPath)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error())
		return WrapExitError(ExitCommandError, "opening run log", err)
	}
	defer db.Close()

	run := store.Run{
		Token:       res.Token,
		CircuitHash: res.CircuitHash,
		Mode:        string(res.Mode),
	}
	for _, b := range res.Branches {
		run.Branches = append(run.Branches, store.BranchRecord{
			Probability: b.Probability,
			Cbits:       b.Cbits,
		})
	}
	if err := db.WriteRun(context.Background(), run); err != nil {
		formatter.Error(ErrCodeGeneric, err.Error())
		return WrapExitError(ExitCommandError, "recording run", err)
	}
	slog.Debug("run recorded", "token", res.Token, "db", dbPath)
	return nil
}
