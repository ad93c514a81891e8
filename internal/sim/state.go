package sim

import (
	"github.com/claretgrace0801/qutip-qip/internal/linalg"
)

// State is either a state vector (ket) or a density operator. Exactly one
// of the two representations is set.
type State struct {
	ket linalg.Vector
	rho linalg.Matrix
}

// Ket wraps a state vector.
func Ket(v linalg.Vector) State {
	return State{ket: v}
}

// Density wraps a density operator.
func Density(m linalg.Matrix) State {
	return State{rho: m}
}

// IsKet reports whether the state is a vector.
func (s State) IsKet() bool {
	return s.ket != nil
}

// IsZero reports whether the state holds neither representation, e.g. a
// pruned measurement branch.
func (s State) IsZero() bool {
	return s.ket == nil && s.rho == nil
}

// Vector returns the underlying ket, or nil for a density state.
func (s State) Vector() linalg.Vector {
	return s.ket
}

// Matrix returns the underlying density operator, or nil for a ket state.
func (s State) Matrix() linalg.Matrix {
	return s.rho
}

// Dim returns the Hilbert-space dimension of the state.
func (s State) Dim() int {
	if s.ket != nil {
		return len(s.ket)
	}
	return s.rho.Rows()
}

// ToDensity promotes a ket to the rank-one density operator |s><s|.
// Density states are returned unchanged.
func (s State) ToDensity() State {
	if s.ket == nil {
		return s
	}
	return Density(s.ket.Outer())
}

func (s State) clone() State {
	if s.ket != nil {
		return Ket(s.ket.Clone())
	}
	if s.rho != nil {
		return Density(s.rho.Clone())
	}
	return State{}
}

// validate checks the state against the register dimension and the
// simulation mode. Kets are accepted in either mode; density operators
// only in density mode.
func (s State) validate(dim int, mode Mode) error {
	switch {
	case s.IsZero():
		return newError(ErrCodeStateKind, "state is neither a ket nor a density operator")
	case s.ket != nil:
		if len(s.ket) != dim {
			return newError(ErrCodeStateKind, "ket has dimension %d, register needs %d", len(s.ket), dim)
		}
	default:
		if mode != ModeDensityMatrix {
			return newError(ErrCodeStateKind, "density operator requires %s mode", ModeDensityMatrix)
		}
		if s.rho.Rows() != dim || s.rho.Cols() != dim {
			return newError(ErrCodeStateKind, "density operator is %dx%d, register needs %dx%d",
				s.rho.Rows(), s.rho.Cols(), dim, dim)
		}
	}
	return nil
}
