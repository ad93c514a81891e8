package decompose

import (
	"math"

	"github.com/claretgrace0801/qutip-qip/internal/circuit"
	"github.com/claretgrace0801/qutip-qip/internal/gates"
)

// twoQubitRule converts one canonical-form CNOT (or, for ISWAP, SWAP) into
// the target two-qubit basis via a fixed literal identity. No search, no
// optimization.
type twoQubitRule func(g circuit.Gate) []circuit.Op

var twoQubitRules = map[gates.Kind]twoQubitRule{
	gates.CSIGN:     cnotToCSign,
	gates.ISWAP:     cnotToISwap,
	gates.SQRTSWAP:  cnotToSqrtSwap,
	gates.SQRTISWAP: cnotToSqrtISwap,
}

// transformTwoQubitBasis converts every CNOT emitted by the resolver into
// the requested two-qubit basis. For the ISWAP basis, SWAP gates passed
// through by the resolver are converted as well.
func transformTwoQubitBasis(basis gates.Kind, ops []circuit.Op) ([]circuit.Op, error) {
	rule, ok := twoQubitRules[basis]
	if !ok {
		return nil, newUnsupportedGateError(basis, "no two-qubit basis identity registered")
	}

	var out []circuit.Op
	for _, op := range ops {
		g, isGate := op.(circuit.Gate)
		switch {
		case isGate && g.Kind == gates.CNOT:
			out = append(out, rule(g)...)
		case isGate && g.Kind == gates.SWAP && basis == gates.ISWAP:
			out = append(out, swapToISwap(g)...)
		default:
			out = append(out, op)
		}
	}
	return out, nil
}

// CNOT = RY(pi/2)_t CZ RY(-pi/2)_t.
func cnotToCSign(g circuit.Gate) []circuit.Op {
	c, t := g.Controls[0], g.Targets[0]
	return []circuit.Op{
		circuit.Rot(gates.RY, t, -halfPi),
		circuit.Ctrl(gates.CSIGN, c, t),
		circuit.Rot(gates.RY, t, halfPi),
	}
}

func cnotToISwap(g circuit.Gate) []circuit.Op {
	c, t := g.Controls[0], g.Targets[0]
	return []circuit.Op{
		circuit.GlobalPhase{Angle: math.Pi / 4},
		circuit.TwoQubit(gates.ISWAP, c, t),
		circuit.Rot(gates.RZ, t, -halfPi),
		circuit.Rot(gates.RY, c, -halfPi),
		circuit.Rot(gates.RZ, c, halfPi),
		circuit.TwoQubit(gates.ISWAP, c, t),
		circuit.Rot(gates.RY, t, -halfPi),
		circuit.Rot(gates.RZ, t, halfPi),
	}
}

func swapToISwap(g circuit.Gate) []circuit.Op {
	a, b := g.Targets[0], g.Targets[1]
	return []circuit.Op{
		circuit.GlobalPhase{Angle: math.Pi / 4},
		circuit.TwoQubit(gates.ISWAP, a, b),
		circuit.Rot(gates.RX, a, -halfPi),
		circuit.TwoQubit(gates.ISWAP, a, b),
		circuit.Rot(gates.RX, b, -halfPi),
		circuit.TwoQubit(gates.ISWAP, b, a),
		circuit.Rot(gates.RX, a, -halfPi),
	}
}

func cnotToSqrtSwap(g circuit.Gate) []circuit.Op {
	c, t := g.Controls[0], g.Targets[0]
	return []circuit.Op{
		circuit.Rot(gates.RY, t, halfPi),
		circuit.TwoQubit(gates.SQRTSWAP, c, t),
		circuit.Rot(gates.RZ, c, math.Pi),
		circuit.TwoQubit(gates.SQRTSWAP, c, t),
		circuit.Rot(gates.RZ, t, -halfPi),
		circuit.Rot(gates.RY, t, -halfPi),
		circuit.Rot(gates.RZ, c, -halfPi),
	}
}

func cnotToSqrtISwap(g circuit.Gate) []circuit.Op {
	c, t := g.Controls[0], g.Targets[0]
	return []circuit.Op{
		circuit.Rot(gates.RY, c, -halfPi),
		circuit.Rot(gates.RX, c, halfPi),
		circuit.Rot(gates.RX, t, -halfPi),
		circuit.TwoQubit(gates.SQRTISWAP, c, t),
		circuit.Rot(gates.RX, c, math.Pi),
		circuit.TwoQubit(gates.SQRTISWAP, c, t),
		circuit.Rot(gates.RY, c, halfPi),
		circuit.GlobalPhase{Angle: math.Pi / 4},
		circuit.Rot(gates.RZ, c, math.Pi),
		circuit.GlobalPhase{Angle: 3 * halfPi},
	}
}
