package circuit

import (
	"fmt"

	"github.com/claretgrace0801/qutip-qip/internal/linalg"
)

// Propagator is the unitary of one circuit operation. For compact
// propagators Qubits lists the operand qubits (controls first) the matrix
// acts on; a global phase has no qubits and a 1x1 matrix.
type Propagator struct {
	U      linalg.Matrix
	Qubits []int
}

// Propagators returns the per-operation unitaries of the circuit in
// execution order. With expand set, each unitary is expanded to the full
// register; otherwise it stays on its operand qubits.
//
// Measurements carry no unitary. Unless ignoreMeasurement is set, their
// presence is an error.
func (c *Circuit) Propagators(expand, ignoreMeasurement bool) ([]Propagator, error) {
	if !ignoreMeasurement && c.HasMeasurements() {
		return nil, fmt.Errorf("cannot compute the propagator of a measurement")
	}

	var out []Propagator
	for _, op := range c.Ops {
		switch v := op.(type) {
		case Measurement:
			continue
		case GlobalPhase:
			if expand {
				out = append(out, Propagator{
					U: linalg.Identity(1 << c.N).Scale(v.PhaseFactor()),
				})
			} else {
				out = append(out, Propagator{
					U: linalg.Matrix{{v.PhaseFactor()}},
				})
			}
		case Gate:
			compact, err := v.CompactMatrix(c.userGates)
			if err != nil {
				return nil, err
			}
			qubits := v.AllQubits()
			if expand {
				full, err := linalg.ExpandOperator(compact, c.N, qubits)
				if err != nil {
					return nil, fmt.Errorf("expanding %s: %w", v.Kind, err)
				}
				out = append(out, Propagator{U: full})
			} else {
				out = append(out, Propagator{U: compact, Qubits: qubits})
			}
		}
	}
	return out, nil
}

// OpPropagator returns the compact propagator of a single unitary
// operation. Measurements carry no unitary and are an error.
func (c *Circuit) OpPropagator(op Op) (Propagator, error) {
	switch v := op.(type) {
	case GlobalPhase:
		return Propagator{U: linalg.Matrix{{v.PhaseFactor()}}}, nil
	case Gate:
		compact, err := v.CompactMatrix(c.userGates)
		if err != nil {
			return Propagator{}, err
		}
		return Propagator{U: compact, Qubits: v.AllQubits()}, nil
	default:
		return Propagator{}, fmt.Errorf("cannot compute the propagator of a measurement")
	}
}

// Unitary evaluates the full-register matrix of the whole circuit, the
// product of all gate propagators in execution order.
func (c *Circuit) Unitary() (linalg.Matrix, error) {
	props, err := c.Propagators(true, false)
	if err != nil {
		return nil, err
	}
	u := linalg.Identity(1 << c.N)
	for _, p := range props {
		u = p.U.Mul(u)
	}
	return u, nil
}
