package decompose

import (
	"github.com/claretgrace0801/qutip-qip/internal/circuit"
	"github.com/claretgrace0801/qutip-qip/internal/gates"
)

// swapClass is the set of symmetric two-qubit gates the linearizer can
// carry through inserted swaps.
var swapClass = map[gates.Kind]bool{
	gates.SWAP:      true,
	gates.ISWAP:     true,
	gates.SQRTISWAP: true,
	gates.SQRTSWAP:  true,
	gates.BERKELEY:  true,
	gates.SWAPalpha: true,
}

// AdjacentGates rewrites every two-qubit gate spanning non-adjacent qubits
// into an equivalent sequence acting only on nearest-neighbor pairs, using
// inserted SWAP gates. Only CNOT, CSIGN and the symmetric swap-class gates
// are accepted; callers must pre-filter anything else. The input circuit
// is not modified.
func AdjacentGates(c *circuit.Circuit) (*circuit.Circuit, error) {
	if c.HasMeasurements() {
		return nil, newSequencingError("adjacent_gates")
	}

	out := c.Empty()
	for _, op := range c.Ops {
		switch v := op.(type) {
		case circuit.GlobalPhase:
			out.Ops = append(out.Ops, v)
		case circuit.Measurement:
			return nil, newSequencingError("adjacent_gates")
		case circuit.Gate:
			switch {
			case v.Kind == gates.CNOT || v.Kind == gates.CSIGN:
				out.Ops = append(out.Ops, linearizeControlled(v)...)
			case swapClass[v.Kind]:
				out.Ops = append(out.Ops, linearizeSymmetric(v)...)
			default:
				return nil, newUnsupportedGateError(v.Kind, "no adjacency rule registered")
			}
		}
	}
	return out, nil
}

// linearizeControlled slides a window [i, start+end-i] inward over the span
// of a controlled gate, emitting swaps until the two current endpoints are
// adjacent. Which endpoint carries the control is tracked as the window
// shrinks.
func linearizeControlled(g circuit.Gate) []circuit.Op {
	control, target := g.Controls[0], g.Targets[0]
	start, end := min(control, target), max(control, target)
	controlAtEnd := control == end

	var out []circuit.Op
	for i := start; i < end; i++ {
		span := end - start + 1
		gap := start + end - 2*i
		switch {
		case gap == 1 && span%2 == 0:
			// The window endpoints are already the adjacent pair.
			if controlAtEnd {
				out = append(out, circuit.Ctrl(g.Kind, i+1, i))
			} else {
				out = append(out, circuit.Ctrl(g.Kind, i, i+1))
			}
		case gap == 2 && span%2 == 1:
			// One qubit sits between the endpoints: swap it past one
			// side, apply, swap back.
			out = append(out, circuit.TwoQubit(gates.SWAP, i, i+1))
			if controlAtEnd {
				out = append(out, circuit.Ctrl(g.Kind, i+2, i+1))
			} else {
				out = append(out, circuit.Ctrl(g.Kind, i+1, i+2))
			}
			out = append(out, circuit.TwoQubit(gates.SWAP, i, i+1))
			i++
		default:
			// Shift both window endpoints inward by one position.
			out = append(out, circuit.TwoQubit(gates.SWAP, i, i+1))
			out = append(out, circuit.TwoQubit(gates.SWAP, start+end-i-1, start+end-i))
		}
	}
	return out
}

// linearizeSymmetric is the same sweep for gates whose operands play
// symmetric roles, so no control tracking is needed. The gate's argument
// (SWAPalpha) is carried onto the emitted adjacent gate.
func linearizeSymmetric(g circuit.Gate) []circuit.Op {
	start, end := min(g.Targets[0], g.Targets[1]), max(g.Targets[0], g.Targets[1])

	var out []circuit.Op
	for i := start; i < end; i++ {
		span := end - start + 1
		gap := start + end - 2*i
		switch {
		case gap == 1 && span%2 == 0:
			adj := circuit.TwoQubit(g.Kind, i, i+1)
			adj.Arg = g.Arg
			out = append(out, adj)
		case gap == 2 && span%2 == 1:
			out = append(out, circuit.TwoQubit(gates.SWAP, i, i+1))
			adj := circuit.TwoQubit(g.Kind, i+1, i+2)
			adj.Arg = g.Arg
			out = append(out, adj)
			out = append(out, circuit.TwoQubit(gates.SWAP, i, i+1))
			i++
		default:
			out = append(out, circuit.TwoQubit(gates.SWAP, i, i+1))
			out = append(out, circuit.TwoQubit(gates.SWAP, start+end-i-1, start+end-i))
		}
	}
	return out
}
