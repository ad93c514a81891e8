package circuit

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/claretgrace0801/qutip-qip/internal/gates"
	"github.com/claretgrace0801/qutip-qip/internal/linalg"
)

// CompactMatrix returns the gate's matrix on its own operand qubits
// (controls first), without expansion to the register.
func (g Gate) CompactMatrix(userGates map[string]UserGate) (linalg.Matrix, error) {
	switch g.Kind {
	case gates.RX:
		c := complex(math.Cos(g.Arg/2), 0)
		s := complex(0, -math.Sin(g.Arg/2))
		return linalg.Matrix{{c, s}, {s, c}}, nil
	case gates.RY:
		c := complex(math.Cos(g.Arg/2), 0)
		s := complex(math.Sin(g.Arg/2), 0)
		return linalg.Matrix{{c, -s}, {s, c}}, nil
	case gates.RZ:
		p := cmplx.Exp(complex(0, g.Arg/2))
		return linalg.Matrix{{cmplx.Conj(p), 0}, {0, p}}, nil
	case gates.IDLE:
		return linalg.Identity(2), nil
	case gates.X:
		return linalg.Matrix{{0, 1}, {1, 0}}, nil
	case gates.Y:
		return linalg.Matrix{{0, -1i}, {1i, 0}}, nil
	case gates.Z:
		return linalg.Matrix{{1, 0}, {0, -1}}, nil
	case gates.S:
		return linalg.Matrix{{1, 0}, {0, 1i}}, nil
	case gates.T:
		return linalg.Matrix{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}, nil
	case gates.SQRTNOT:
		return linalg.Matrix{
			{complex(0.5, 0.5), complex(0.5, -0.5)},
			{complex(0.5, -0.5), complex(0.5, 0.5)},
		}, nil
	case gates.SNOT:
		h := complex(1/math.Sqrt2, 0)
		return linalg.Matrix{{h, h}, {h, -h}}, nil
	case gates.PHASEGATE:
		return linalg.Matrix{{1, 0}, {0, cmplx.Exp(complex(0, g.Arg))}}, nil
	case gates.CNOT:
		return linalg.Matrix{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 1},
			{0, 0, 1, 0},
		}, nil
	case gates.CSIGN:
		return linalg.Matrix{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, -1},
		}, nil
	case gates.CY:
		return linalg.Matrix{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 0, -1i},
			{0, 0, 1i, 0},
		}, nil
	case gates.SWAP:
		return linalg.Matrix{
			{1, 0, 0, 0},
			{0, 0, 1, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 1},
		}, nil
	case gates.ISWAP:
		return linalg.Matrix{
			{1, 0, 0, 0},
			{0, 0, 1i, 0},
			{0, 1i, 0, 0},
			{0, 0, 0, 1},
		}, nil
	case gates.SQRTSWAP:
		return linalg.Matrix{
			{1, 0, 0, 0},
			{0, complex(0.5, 0.5), complex(0.5, -0.5), 0},
			{0, complex(0.5, -0.5), complex(0.5, 0.5), 0},
			{0, 0, 0, 1},
		}, nil
	case gates.SQRTISWAP:
		r := complex(1/math.Sqrt2, 0)
		i := complex(0, 1/math.Sqrt2)
		return linalg.Matrix{
			{1, 0, 0, 0},
			{0, r, i, 0},
			{0, i, r, 0},
			{0, 0, 0, 1},
		}, nil
	case gates.BERKELEY:
		c1 := complex(math.Cos(math.Pi/8), 0)
		s1 := complex(0, math.Sin(math.Pi/8))
		c3 := complex(math.Cos(3*math.Pi/8), 0)
		s3 := complex(0, math.Sin(3*math.Pi/8))
		return linalg.Matrix{
			{c1, 0, 0, s1},
			{0, c3, s3, 0},
			{0, s3, c3, 0},
			{s1, 0, 0, c1},
		}, nil
	case gates.SWAPalpha:
		e := cmplx.Exp(complex(0, math.Pi*g.Arg))
		p := (1 + e) / 2
		q := (1 - e) / 2
		return linalg.Matrix{
			{1, 0, 0, 0},
			{0, p, q, 0},
			{0, q, p, 0},
			{0, 0, 0, 1},
		}, nil
	case gates.TOFFOLI:
		m := linalg.Identity(8)
		m[6][6], m[7][7] = 0, 0
		m[6][7], m[7][6] = 1, 1
		return m, nil
	case gates.FREDKIN:
		m := linalg.Identity(8)
		m[5][5], m[6][6] = 0, 0
		m[5][6], m[6][5] = 1, 1
		return m, nil
	}

	fn, ok := userGates[string(g.Kind)]
	if !ok {
		return nil, fmt.Errorf("no matrix for gate %q", g.Kind)
	}
	m, err := fn(g.Arg)
	if err != nil {
		return nil, fmt.Errorf("user gate %q: %w", g.Kind, err)
	}
	want := 1 << len(g.Targets)
	if m.Rows() != want || m.Cols() != want {
		return nil, fmt.Errorf("user gate %q returned %dx%d matrix for %d targets",
			g.Kind, m.Rows(), m.Cols(), len(g.Targets))
	}
	return m, nil
}

// PhaseFactor returns the scalar e^(i*Angle) of a global-phase operation.
func (p GlobalPhase) PhaseFactor() complex128 {
	return cmplx.Exp(complex(0, p.Angle))
}
