package decompose

import (
	"math"

	"github.com/claretgrace0801/qutip-qip/internal/circuit"
	"github.com/claretgrace0801/qutip-qip/internal/gates"
)

// rewriteRule emits the canonical-form replacement for one gate. Every
// identity is exact: whenever a rule introduces a phase discrepancy it also
// emits the global-phase correction, so the product of emitted matrices
// equals the original gate's matrix.
type rewriteRule func(g circuit.Gate) []circuit.Op

// rewriteRules is the closed dispatch table of the resolver. Kinds absent
// here (and not handled as passthrough or Pauli special cases upstream)
// are unsupported.
var rewriteRules = map[gates.Kind]rewriteRule{
	gates.RX:        passthrough,
	gates.RY:        passthrough,
	gates.RZ:        passthrough,
	gates.IDLE:      passthrough,
	gates.CNOT:      passthrough,
	gates.S:         resolveS,
	gates.T:         resolveT,
	gates.SQRTNOT:   resolveSqrtNot,
	gates.SNOT:      resolveSnot,
	gates.PHASEGATE: resolvePhaseGate,
	gates.CSIGN:     resolveCSign,
	gates.SWAP:      resolveSwap,
	gates.ISWAP:     resolveISwap,
	gates.FREDKIN:   resolveFredkin,
	gates.TOFFOLI:   resolveToffoli,
}

func passthrough(g circuit.Gate) []circuit.Op {
	return []circuit.Op{g}
}

// S = e^{i pi/4} RZ(pi/2).
func resolveS(g circuit.Gate) []circuit.Op {
	return []circuit.Op{
		circuit.GlobalPhase{Angle: math.Pi / 4},
		circuit.Rot(gates.RZ, g.Targets[0], halfPi),
	}
}

// T = e^{i pi/8} RZ(pi/4).
func resolveT(g circuit.Gate) []circuit.Op {
	return []circuit.Op{
		circuit.GlobalPhase{Angle: math.Pi / 8},
		circuit.Rot(gates.RZ, g.Targets[0], math.Pi/4),
	}
}

// sqrt(X) = e^{i pi/4} RX(pi/2).
func resolveSqrtNot(g circuit.Gate) []circuit.Op {
	return []circuit.Op{
		circuit.GlobalPhase{Angle: math.Pi / 4},
		circuit.Rot(gates.RX, g.Targets[0], halfPi),
	}
}

// H = e^{i pi/2} RX(pi) RY(pi/2).
func resolveSnot(g circuit.Gate) []circuit.Op {
	t := g.Targets[0]
	return []circuit.Op{
		circuit.GlobalPhase{Angle: halfPi},
		circuit.Rot(gates.RY, t, halfPi),
		circuit.Rot(gates.RX, t, math.Pi),
	}
}

// P(theta) = e^{i theta/2} RZ(theta).
func resolvePhaseGate(g circuit.Gate) []circuit.Op {
	return []circuit.Op{
		circuit.GlobalPhase{Angle: g.Arg / 2},
		circuit.Rot(gates.RZ, g.Targets[0], g.Arg),
	}
}

// CZ conjugates CNOT's target by Hadamards, written as rotations.
func resolveCSign(g circuit.Gate) []circuit.Op {
	t := g.Targets[0]
	return []circuit.Op{
		circuit.Rot(gates.RY, t, halfPi),
		circuit.Rot(gates.RX, t, math.Pi),
		circuit.Ctrl(gates.CNOT, g.Controls[0], t),
		circuit.Rot(gates.RY, t, halfPi),
		circuit.Rot(gates.RX, t, math.Pi),
		circuit.GlobalPhase{Angle: math.Pi},
	}
}

// SWAP is three alternating CNOTs.
func resolveSwap(g circuit.Gate) []circuit.Op {
	a, b := g.Targets[0], g.Targets[1]
	return []circuit.Op{
		circuit.Ctrl(gates.CNOT, b, a),
		circuit.Ctrl(gates.CNOT, a, b),
		circuit.Ctrl(gates.CNOT, b, a),
	}
}

func resolveISwap(g circuit.Gate) []circuit.Op {
	a, b := g.Targets[0], g.Targets[1]
	return []circuit.Op{
		circuit.Ctrl(gates.CNOT, b, a),
		circuit.Ctrl(gates.CNOT, a, b),
		circuit.Ctrl(gates.CNOT, b, a),
		circuit.Rot(gates.RZ, a, halfPi),
		circuit.Rot(gates.RZ, b, halfPi),
		circuit.Rot(gates.RY, a, halfPi),
		circuit.Rot(gates.RX, a, math.Pi),
		circuit.Ctrl(gates.CNOT, b, a),
		circuit.Rot(gates.RY, a, halfPi),
		circuit.Rot(gates.RX, a, math.Pi),
		circuit.GlobalPhase{Angle: math.Pi},
		circuit.GlobalPhase{Angle: halfPi},
	}
}

func resolveFredkin(g circuit.Gate) []circuit.Op {
	c := g.Controls[0]
	t0, t1 := g.Targets[0], g.Targets[1]
	pi := math.Pi
	return []circuit.Op{
		circuit.Ctrl(gates.CNOT, t1, t0),
		circuit.Rot(gates.RZ, t1, pi),
		circuit.Rot(gates.RX, t1, halfPi),
		circuit.Rot(gates.RZ, t1, -halfPi),
		circuit.Rot(gates.RX, t1, halfPi),
		circuit.Rot(gates.RZ, t1, pi),
		circuit.Ctrl(gates.CNOT, t0, t1),
		circuit.Rot(gates.RZ, t1, -pi/4),
		circuit.Ctrl(gates.CNOT, c, t1),
		circuit.Rot(gates.RZ, t1, pi/4),
		circuit.Ctrl(gates.CNOT, t0, t1),
		circuit.Rot(gates.RZ, t0, pi/4),
		circuit.Rot(gates.RZ, t1, -pi/4),
		circuit.Ctrl(gates.CNOT, c, t1),
		circuit.Ctrl(gates.CNOT, c, t0),
		circuit.Rot(gates.RZ, c, pi/4),
		circuit.Rot(gates.RZ, t0, -pi/4),
		circuit.Ctrl(gates.CNOT, c, t0),
		circuit.Rot(gates.RZ, t1, -3*pi/4),
		circuit.Rot(gates.RX, t1, halfPi),
		circuit.Rot(gates.RZ, t1, -halfPi),
		circuit.Rot(gates.RX, t1, halfPi),
		circuit.Rot(gates.RZ, t1, pi),
		circuit.Ctrl(gates.CNOT, t1, t0),
		circuit.GlobalPhase{Angle: pi / 8},
	}
}

func resolveToffoli(g circuit.Gate) []circuit.Op {
	c0, c1 := g.Controls[0], g.Controls[1]
	t := g.Targets[0]
	quarterPi := math.Pi / 4
	return []circuit.Op{
		circuit.GlobalPhase{Angle: math.Pi / 8},
		circuit.Rot(gates.RZ, c1, halfPi),
		circuit.Rot(gates.RZ, c0, quarterPi),
		circuit.Ctrl(gates.CNOT, c0, c1),
		circuit.Rot(gates.RZ, c1, -quarterPi),
		circuit.Ctrl(gates.CNOT, c0, c1),
		circuit.GlobalPhase{Angle: halfPi},
		circuit.Rot(gates.RY, t, halfPi),
		circuit.Rot(gates.RX, t, math.Pi),
		circuit.Rot(gates.RZ, c1, -quarterPi),
		circuit.Rot(gates.RZ, t, quarterPi),
		circuit.Ctrl(gates.CNOT, c0, t),
		circuit.Rot(gates.RZ, t, -quarterPi),
		circuit.Ctrl(gates.CNOT, c1, t),
		circuit.Rot(gates.RZ, t, quarterPi),
		circuit.Ctrl(gates.CNOT, c0, t),
		circuit.Rot(gates.RZ, t, -quarterPi),
		circuit.Ctrl(gates.CNOT, c1, t),
		circuit.GlobalPhase{Angle: halfPi},
		circuit.Rot(gates.RY, t, halfPi),
		circuit.Rot(gates.RX, t, math.Pi),
	}
}

// substituteMissingAxis rewrites every rotation about the axis missing from
// a two-axis basis into three rotations about the permitted axes, the
// middle one carrying the original angle and the outer two fixed at
// plus/minus pi/2.
func substituteMissingAxis(ops []circuit.Op, oneQ map[gates.Kind]bool) []circuit.Op {
	var out []circuit.Op
	for _, op := range ops {
		g, isGate := op.(circuit.Gate)
		if !isGate {
			out = append(out, op)
			continue
		}
		switch {
		case g.Kind == gates.RX && !oneQ[gates.RX]:
			t := g.Targets[0]
			out = append(out,
				circuit.Rot(gates.RY, t, -halfPi),
				circuit.Rot(gates.RZ, t, g.Arg),
				circuit.Rot(gates.RY, t, halfPi),
			)
		case g.Kind == gates.RY && !oneQ[gates.RY]:
			t := g.Targets[0]
			out = append(out,
				circuit.Rot(gates.RZ, t, -halfPi),
				circuit.Rot(gates.RX, t, g.Arg),
				circuit.Rot(gates.RZ, t, halfPi),
			)
		case g.Kind == gates.RZ && !oneQ[gates.RZ]:
			t := g.Targets[0]
			out = append(out,
				circuit.Rot(gates.RX, t, -halfPi),
				circuit.Rot(gates.RY, t, g.Arg),
				circuit.Rot(gates.RX, t, halfPi),
			)
		default:
			out = append(out, g)
		}
	}
	return out
}
