package decompose

import (
	"math"

	"github.com/claretgrace0801/qutip-qip/internal/circuit"
	"github.com/claretgrace0801/qutip-qip/internal/gates"
)

const halfPi = math.Pi / 2

// basisRequest is a parsed and validated basis request.
type basisRequest struct {
	oneQ map[gates.Kind]bool
	twoQ gates.Kind // empty means canonical CNOT form
}

var (
	validOneQ = []gates.Kind{gates.RX, gates.RY, gates.RZ, gates.IDLE}
	validTwoQ = []gates.Kind{gates.CNOT, gates.CSIGN, gates.ISWAP, gates.SQRTSWAP, gates.SQRTISWAP}
)

func parseBasis(basis []string) (basisRequest, error) {
	req := basisRequest{oneQ: make(map[gates.Kind]bool)}
	twoQCount := 0
	for _, token := range basis {
		kind := gates.Kind(token)
		switch {
		case contains(validTwoQ, kind):
			twoQCount++
			if twoQCount > 1 {
				return req, newInvalidBasisError("at most one two-qubit basis gate is allowed, got a second: %s", kind)
			}
			req.twoQ = kind
		case contains(validOneQ, kind):
			req.oneQ[kind] = true
		default:
			return req, newInvalidBasisError("%s is not a valid basis gate", kind)
		}
	}
	if len(req.oneQ) == 1 {
		return req, newInvalidBasisError("not sufficient single-qubit gates in basis")
	}
	if len(req.oneQ) == 0 {
		req.oneQ[gates.RX] = true
		req.oneQ[gates.RY] = true
		req.oneQ[gates.RZ] = true
	}
	return req, nil
}

func contains(ks []gates.Kind, k gates.Kind) bool {
	for _, x := range ks {
		if x == k {
			return true
		}
	}
	return false
}

// rotationAxes returns the requested rotation generators, IDLE excluded.
func (r basisRequest) rotationAxes() []gates.Kind {
	var axes []gates.Kind
	for _, k := range []gates.Kind{gates.RX, gates.RY, gates.RZ} {
		if r.oneQ[k] {
			axes = append(axes, k)
		}
	}
	return axes
}

// ResolveGates rewrites every gate of the circuit into the requested
// universal basis using fixed circuit identities, tracking global phase
// with explicit phase-correction operations. The input circuit is not
// modified; a freshly built equivalent circuit is returned.
//
// The basis request is a list of generator names: any subset of
// {RX, RY, RZ, IDLE} (empty defaults to {RX, RY, RZ}) plus at most one of
// {CNOT, CSIGN, ISWAP, SQRTSWAP, SQRTISWAP}.
func ResolveGates(c *circuit.Circuit, basis []string) (*circuit.Circuit, error) {
	if c.HasMeasurements() {
		return nil, newSequencingError("resolve_gates")
	}
	req, err := parseBasis(basis)
	if err != nil {
		return nil, err
	}

	var resolved []circuit.Op
	for _, op := range c.Ops {
		switch v := op.(type) {
		case circuit.GlobalPhase:
			resolved = append(resolved, v)
		case circuit.Gate:
			ops, err := resolveGate(v, req)
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, ops...)
		case circuit.Measurement:
			return nil, newSequencingError("resolve_gates")
		}
	}

	out := c.Empty()
	if req.twoQ != "" && req.twoQ != gates.CNOT {
		converted, err := transformTwoQubitBasis(req.twoQ, resolved)
		if err != nil {
			return nil, err
		}
		out.Ops = converted
	} else {
		out.Ops = resolved
	}

	if axes := req.rotationAxes(); len(axes) == 2 {
		out.Ops = substituteMissingAxis(out.Ops, req.oneQ)
	}
	return out, nil
}

// resolveGate rewrites one gate into the canonical intermediate form:
// rotations plus CNOT plus global-phase corrections. Gates already in the
// requested two-qubit basis pass through unchanged.
func resolveGate(g circuit.Gate, req basisRequest) ([]circuit.Op, error) {
	// Pauli gates are a rotation by pi up to a pi/2 global phase.
	switch g.Kind {
	case gates.X, gates.Y, gates.Z:
		return []circuit.Op{
			circuit.GlobalPhase{Angle: halfPi},
			circuit.Rot("R"+g.Kind, g.Targets[0], math.Pi),
		}, nil
	}

	if g.Kind == req.twoQ {
		return []circuit.Op{g}, nil
	}
	if g.Kind == gates.SWAP && req.twoQ == gates.ISWAP {
		return []circuit.Op{g}, nil
	}

	rule, ok := rewriteRules[g.Kind]
	if !ok {
		return nil, newUnsupportedGateError(g.Kind, "no rewrite rule registered")
	}
	return rule(g), nil
}
