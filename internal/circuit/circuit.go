package circuit

import (
	"fmt"

	"github.com/claretgrace0801/qutip-qip/internal/gates"
	"github.com/claretgrace0801/qutip-qip/internal/linalg"
)

// UserGate produces the compact matrix of a user-defined gate for a given
// argument. Gates registered from a fixed operator ignore the argument.
type UserGate func(arg float64) (linalg.Matrix, error)

// ValidationError reports an inconsistent operation being appended to a
// circuit, such as an out-of-range qubit or classical-bit index.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid circuit operation: " + e.Message
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Circuit is an ordered program of gates, measurements and global-phase
// bookkeeping over N qubits and NumCbits classical bits. Append via AddGate
// and friends; once handed to a decomposition pass or a simulator it is
// treated as immutable input.
type Circuit struct {
	N        int
	NumCbits int
	Ops      []Op

	userGates map[string]UserGate
}

// New returns an empty circuit over n qubits and numCbits classical bits.
func New(n, numCbits int) *Circuit {
	return &Circuit{N: n, NumCbits: numCbits}
}

// RegisterUserGate registers a matrix-producing function under a
// user-defined gate name. Structural names cannot be shadowed.
func (c *Circuit) RegisterUserGate(name string, fn UserGate) error {
	if gates.IsStructural(gates.Kind(name)) {
		return validationErrorf("cannot register user gate %q: name is structural", name)
	}
	if c.userGates == nil {
		c.userGates = make(map[string]UserGate)
	}
	c.userGates[name] = fn
	return nil
}

// RegisterUserOperator registers a fixed operator under a user-defined gate
// name.
func (c *Circuit) RegisterUserOperator(name string, m linalg.Matrix) error {
	return c.RegisterUserGate(name, func(float64) (linalg.Matrix, error) {
		return m, nil
	})
}

// UserGates returns the user-gate table. The returned map must not be
// mutated.
func (c *Circuit) UserGates() map[string]UserGate {
	return c.userGates
}

// AddGate validates g against the capability table (or the user-gate table)
// and appends it.
func (c *Circuit) AddGate(g Gate) error {
	if err := c.validateGate(g); err != nil {
		return err
	}
	c.Ops = append(c.Ops, g.clone())
	return nil
}

// AddMeasurement validates m and appends it.
func (c *Circuit) AddMeasurement(m Measurement) error {
	if m.Target < 0 || m.Target >= c.N {
		return validationErrorf("measurement target %d out of range for %d qubits", m.Target, c.N)
	}
	if m.ClassicalStore != -1 && (m.ClassicalStore < 0 || m.ClassicalStore >= c.NumCbits) {
		return validationErrorf("classical store %d out of range for %d cbits", m.ClassicalStore, c.NumCbits)
	}
	c.Ops = append(c.Ops, m)
	return nil
}

// AddGlobalPhase appends a phase-only bookkeeping operation.
func (c *Circuit) AddGlobalPhase(angle float64) {
	c.Ops = append(c.Ops, GlobalPhase{Angle: angle})
}

func (c *Circuit) validateGate(g Gate) error {
	spec, structural := gates.Lookup(g.Kind)
	if structural {
		if len(g.Targets) != spec.Targets {
			return validationErrorf("%s takes %d targets, got %d", g.Kind, spec.Targets, len(g.Targets))
		}
		if len(g.Controls) != spec.Controls {
			return validationErrorf("%s takes %d controls, got %d", g.Kind, spec.Controls, len(g.Controls))
		}
	} else {
		if _, ok := c.userGates[string(g.Kind)]; !ok {
			return validationErrorf("unknown gate %q", g.Kind)
		}
		if len(g.Controls) != 0 {
			return validationErrorf("user gate %q takes only targets", g.Kind)
		}
		if len(g.Targets) == 0 {
			return validationErrorf("user gate %q has no targets", g.Kind)
		}
	}

	seen := make(map[int]bool)
	for _, q := range g.AllQubits() {
		if q < 0 || q >= c.N {
			return validationErrorf("qubit %d out of range for %d qubits", q, c.N)
		}
		if seen[q] {
			return validationErrorf("qubit %d repeated in %s operands", q, g.Kind)
		}
		seen[q] = true
	}
	for _, b := range g.ClassicalControls {
		if b < 0 || b >= c.NumCbits {
			return validationErrorf("classical control %d out of range for %d cbits", b, c.NumCbits)
		}
	}
	return nil
}

// CountMeasurements returns the number of measurement operations.
func (c *Circuit) CountMeasurements() int {
	n := 0
	for _, op := range c.Ops {
		if _, ok := op.(Measurement); ok {
			n++
		}
	}
	return n
}

// HasMeasurements reports whether the program contains any measurement.
func (c *Circuit) HasMeasurements() bool {
	return c.CountMeasurements() > 0
}

// Empty returns a circuit with the same register shape and user-gate table
// but no operations. Decomposition passes build their output this way.
func (c *Circuit) Empty() *Circuit {
	return &Circuit{N: c.N, NumCbits: c.NumCbits, userGates: c.userGates}
}

// Clone returns a deep copy of the circuit.
func (c *Circuit) Clone() *Circuit {
	out := c.Empty()
	out.Ops = make([]Op, 0, len(c.Ops))
	for _, op := range c.Ops {
		if g, ok := op.(Gate); ok {
			out.Ops = append(out.Ops, g.clone())
		} else {
			out.Ops = append(out.Ops, op)
		}
	}
	return out
}
