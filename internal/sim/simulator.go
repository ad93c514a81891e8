// Package sim executes a finalized circuit program step by step against an
// initial state, in state-vector or density-matrix mode, with stochastic
// or forced measurement outcomes and classical-bit-conditioned gates.
package sim

import (
	"fmt"

	"github.com/claretgrace0801/qutip-qip/internal/circuit"
	"github.com/claretgrace0801/qutip-qip/internal/linalg"
)

// Mode selects how the simulator propagates the state.
type Mode string

const (
	// ModeStateVector propagates a ket and samples one outcome per
	// measurement, tracking a single stochastic branch.
	ModeStateVector Mode = "state_vector_simulator"

	// ModeDensityMatrix propagates a density operator and replaces each
	// measurement by its deterministic ensemble average; no branching.
	ModeDensityMatrix Mode = "density_matrix_simulator"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStateVector, ModeDensityMatrix:
		return Mode(s), nil
	default:
		return "", newError(ErrCodeConfiguration, "unrecognized simulation mode %q", s)
	}
}

// Options configures a Simulator. The zero value means state-vector mode,
// no aggregation, clock-seeded random outcomes and UUIDv7 run tokens.
type Options struct {
	Mode Mode

	// Precompute multiplies maximal runs of unconditional unitaries into
	// one aggregate operator at compile time. Purely a performance knob;
	// observable results are identical either way.
	Precompute bool

	Outcomes OutcomeSource
	Tokens   TokenGenerator
}

type stepKind int

const (
	stepUnitary stepKind = iota
	stepGuarded
	stepMeasure
)

// step is one compiled operation. Unitaries are held in compact
// (qubit-local) form and expanded to full register size lazily on first
// application; the expansion is cached for repeated runs.
type step struct {
	kind    stepKind
	compact linalg.Matrix
	qubits  []int
	full    linalg.Matrix

	gate circuit.Gate        // guard, stepGuarded only
	meas circuit.Measurement // stepMeasure only
}

func (s *step) expanded(n int) (linalg.Matrix, error) {
	if s.full == nil {
		full, err := linalg.ExpandOperator(s.compact, n, s.qubits)
		if err != nil {
			return nil, err
		}
		s.full = full
	}
	return s.full, nil
}

// Simulator owns one compiled program plus one mutable session. The
// compiled step list is immutable and shared across repeated runs; the
// session (state, probability, classical bits, cursor) is reset by
// Initialize. A Simulator is not safe for concurrent use.
type Simulator struct {
	circ     *circuit.Circuit
	mode     Mode
	outcomes OutcomeSource
	tokens   TokenGenerator
	steps    []*step

	// session
	state  State
	prob   float64
	cbits  []int
	cursor int
	source OutcomeSource
	halted bool
}

// New compiles the circuit into an ordered step list under the given
// options.
func New(c *circuit.Circuit, opts Options) (*Simulator, error) {
	mode := opts.Mode
	if mode == "" {
		mode = ModeStateVector
	}
	if mode != ModeStateVector && mode != ModeDensityMatrix {
		return nil, newError(ErrCodeConfiguration, "unrecognized simulation mode %q", string(mode))
	}

	outcomes := opts.Outcomes
	if outcomes == nil {
		outcomes = NewRandomOutcomes(0)
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = UUIDv7Generator{}
	}

	s := &Simulator{circ: c, mode: mode, outcomes: outcomes, tokens: tokens}
	if err := s.compile(opts.Precompute); err != nil {
		return nil, err
	}
	return s, nil
}

// compile flattens the program into the step list. With precompute set,
// maximal runs of unconditional unitaries are multiplied together in
// compact form; guarded gates and measurements always break a run.
func (s *Simulator) compile(precompute bool) error {
	var pending []linalg.Matrix
	var pendingSets [][]int

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		if len(pending) == 1 {
			s.steps = append(s.steps, &step{kind: stepUnitary, compact: pending[0], qubits: pendingSets[0]})
		} else {
			prod, union, err := linalg.SequenceProduct(pending, pendingSets)
			if err != nil {
				return fmt.Errorf("aggregating unitaries: %w", err)
			}
			s.steps = append(s.steps, &step{kind: stepUnitary, compact: prod, qubits: union})
		}
		pending, pendingSets = nil, nil
		return nil
	}

	for _, op := range s.circ.Ops {
		switch v := op.(type) {
		case circuit.Measurement:
			if err := flush(); err != nil {
				return err
			}
			s.steps = append(s.steps, &step{kind: stepMeasure, meas: v})
		case circuit.Gate:
			p, err := s.circ.OpPropagator(v)
			if err != nil {
				return err
			}
			if len(v.ClassicalControls) > 0 {
				if err := flush(); err != nil {
					return err
				}
				s.steps = append(s.steps, &step{kind: stepGuarded, compact: p.U, qubits: p.Qubits, gate: v})
				continue
			}
			if precompute {
				pending = append(pending, p.U)
				pendingSets = append(pendingSets, p.Qubits)
			} else {
				s.steps = append(s.steps, &step{kind: stepUnitary, compact: p.U, qubits: p.Qubits})
			}
		case circuit.GlobalPhase:
			p, err := s.circ.OpPropagator(v)
			if err != nil {
				return err
			}
			if precompute {
				pending = append(pending, p.U)
				pendingSets = append(pendingSets, p.Qubits)
			} else {
				s.steps = append(s.steps, &step{kind: stepUnitary, compact: p.U, qubits: p.Qubits})
			}
		}
	}
	return flush()
}

// Initialize resets the session for a fresh run. cbits defaults to all
// zeros when the program declares classical bits; forced, when non-nil,
// supplies one outcome bit per measurement in program order and makes the
// run fully deterministic.
func (s *Simulator) Initialize(st State, cbits []int, forced []int) error {
	if err := st.validate(1<<s.circ.N, s.mode); err != nil {
		return err
	}
	st = st.clone()
	if s.mode == ModeDensityMatrix {
		st = st.ToDensity()
	}

	if cbits == nil {
		cbits = make([]int, s.circ.NumCbits)
	} else {
		if len(cbits) != s.circ.NumCbits {
			return newError(ErrCodeConfiguration, "got %d classical bits, program declares %d", len(cbits), s.circ.NumCbits)
		}
		cbits = append([]int(nil), cbits...)
	}

	s.state = st
	s.prob = 1
	s.cbits = cbits
	s.cursor = 0
	s.halted = false
	if forced != nil {
		s.source = NewReplayOutcomes(forced)
	} else {
		s.source = s.outcomes
	}
	return nil
}

// Step executes the next compiled operation. It returns false when the
// run is over, either because every step ran or because a measurement
// collapsed onto an unreachable outcome and the branch was discarded.
func (s *Simulator) Step() (bool, error) {
	if s.halted || s.cursor >= len(s.steps) {
		return false, nil
	}
	st := s.steps[s.cursor]
	s.cursor++

	var err error
	switch st.kind {
	case stepUnitary:
		err = s.evolve(st)
	case stepGuarded:
		var fire bool
		fire, err = s.guardPasses(st.gate)
		if err == nil && fire {
			err = s.evolve(st)
		}
	case stepMeasure:
		err = s.measure(st.meas)
	}
	if err != nil {
		return false, err
	}
	return !s.halted && s.cursor < len(s.steps), nil
}

func (s *Simulator) evolve(st *step) error {
	u, err := st.expanded(s.circ.N)
	if err != nil {
		return err
	}
	if s.mode == ModeStateVector {
		s.state = Ket(u.MulVec(s.state.Vector()))
	} else {
		s.state = Density(u.Mul(s.state.Matrix()).Mul(u.Dag()))
	}
	return nil
}

// guardPasses evaluates a gate's classical-control predicate against the
// session's classical bits, lowest listed bit first.
func (s *Simulator) guardPasses(g circuit.Gate) (bool, error) {
	value := 0
	for i, cb := range g.ClassicalControls {
		if cb < 0 || cb >= len(s.cbits) {
			return false, newError(ErrCodeClassicalBits, "gate %s references classical bit %d, program declares %d", g.Kind, cb, len(s.cbits))
		}
		value |= s.cbits[cb] << i
	}
	return value == g.RequiredControlValue(), nil
}

func (s *Simulator) measure(m circuit.Measurement) error {
	projectors := make([]linalg.Matrix, 2)
	for b := 0; b < 2; b++ {
		p, err := linalg.ExpandOperator(linalg.Proj(b), s.circ.N, []int{m.Target})
		if err != nil {
			return err
		}
		projectors[b] = p
	}

	if s.mode == ModeDensityMatrix {
		states, probs := linalg.MeasureDensity(s.state.Matrix(), projectors)
		mixed := linalg.Zeros(1<<s.circ.N, 1<<s.circ.N)
		for i, st := range states {
			if st == nil {
				continue
			}
			mixed = mixed.Add(st.Scale(complex(probs[i], 0)))
		}
		s.state = Density(mixed)
		return nil
	}

	states, probs := linalg.MeasureKet(s.state.Vector(), projectors)
	bit, err := s.source.Next(probs[0], probs[1])
	if err != nil {
		return err
	}
	s.prob *= probs[bit]
	if m.ClassicalStore >= 0 {
		s.cbits[m.ClassicalStore] = bit
	}
	if states[bit] == nil {
		s.halted = true
		return nil
	}
	s.state = Ket(states[bit])
	return nil
}

// Run executes every compiled step once and returns a Result with at most
// one branch. A branch whose forced outcome was unreachable is pruned,
// leaving the result empty.
func (s *Simulator) Run(st State, cbits []int, forced []int) (*Result, error) {
	if err := s.Initialize(st, cbits, forced); err != nil {
		return nil, err
	}
	for {
		more, err := s.Step()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	res := &Result{
		Token:       s.tokens.Generate(),
		CircuitHash: s.circ.Hash(),
		Mode:        s.mode,
	}
	if !s.halted {
		res.Branches = append(res.Branches, Branch{
			State:       s.state,
			Probability: s.prob,
			Cbits:       append([]int(nil), s.cbits...),
		})
	}
	return res, nil
}

// RunStatistics enumerates every outcome combination across the program's
// measurements, replays Run once per combination as a forced sequence, and
// collects the reachable branches. In density-matrix mode measurements
// never branch, so a single deterministic run covers all outcomes and the
// enumeration is skipped.
func (s *Simulator) RunStatistics(st State, cbits []int) (*Result, error) {
	if s.mode == ModeDensityMatrix {
		return s.Run(st, cbits, nil)
	}

	m := s.circ.CountMeasurements()
	res := &Result{
		Token:       s.tokens.Generate(),
		CircuitHash: s.circ.Hash(),
		Mode:        s.mode,
	}
	for combo := 0; combo < 1<<m; combo++ {
		forced := make([]int, m)
		for i := range forced {
			forced[i] = combo >> i & 1
		}
		one, err := s.Run(st, cbits, forced)
		if err != nil {
			return nil, err
		}
		res.Branches = append(res.Branches, one.Branches...)
	}
	return res, nil
}
