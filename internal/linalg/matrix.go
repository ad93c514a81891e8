// Package linalg provides the dense complex linear algebra the circuit
// engine is built on: operator products, tensor expansion to a full qubit
// register, and computational-basis measurement statistics.
//
// Convention: qubit 0 is the most significant bit of a basis-state index,
// so for a 2-qubit register |10> means qubit 0 in state 1 and qubit 1 in
// state 0, at index 2.
package linalg

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Matrix is a dense row-major complex matrix.
type Matrix [][]complex128

// Vector is a complex column vector (a ket when normalized).
type Vector []complex128

// Zeros returns an r x c zero matrix.
func Zeros(r, c int) Matrix {
	m := make(Matrix, r)
	for i := range m {
		m[i] = make([]complex128, c)
	}
	return m
}

// Identity returns the n x n identity matrix.
func Identity(n int) Matrix {
	m := Zeros(n, n)
	for i := 0; i < n; i++ {
		m[i][i] = 1
	}
	return m
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the number of columns.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = make([]complex128, len(row))
		copy(out[i], row)
	}
	return out
}

// Mul returns m * other.
func (m Matrix) Mul(other Matrix) Matrix {
	r, inner, c := m.Rows(), m.Cols(), other.Cols()
	out := Zeros(r, c)
	for i := 0; i < r; i++ {
		for k := 0; k < inner; k++ {
			mik := m[i][k]
			if mik == 0 {
				continue
			}
			row := other[k]
			for j := 0; j < c; j++ {
				out[i][j] += mik * row[j]
			}
		}
	}
	return out
}

// MulVec returns m * v.
func (m Matrix) MulVec(v Vector) Vector {
	out := make(Vector, m.Rows())
	for i, row := range m {
		var sum complex128
		for j, x := range row {
			if x != 0 {
				sum += x * v[j]
			}
		}
		out[i] = sum
	}
	return out
}

// Add returns m + other.
func (m Matrix) Add(other Matrix) Matrix {
	out := m.Clone()
	for i := range out {
		for j := range out[i] {
			out[i][j] += other[i][j]
		}
	}
	return out
}

// Scale returns s * m.
func (m Matrix) Scale(s complex128) Matrix {
	out := m.Clone()
	for i := range out {
		for j := range out[i] {
			out[i][j] *= s
		}
	}
	return out
}

// Dag returns the conjugate transpose.
func (m Matrix) Dag() Matrix {
	out := Zeros(m.Cols(), m.Rows())
	for i, row := range m {
		for j, x := range row {
			out[j][i] = cmplx.Conj(x)
		}
	}
	return out
}

// Kron returns the tensor product m ⊗ other.
func (m Matrix) Kron(other Matrix) Matrix {
	ar, ac := m.Rows(), m.Cols()
	br, bc := other.Rows(), other.Cols()
	out := Zeros(ar*br, ac*bc)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			a := m[i][j]
			if a == 0 {
				continue
			}
			for k := 0; k < br; k++ {
				for l := 0; l < bc; l++ {
					out[i*br+k][j*bc+l] = a * other[k][l]
				}
			}
		}
	}
	return out
}

// Trace returns the sum of diagonal entries.
func (m Matrix) Trace() complex128 {
	var tr complex128
	for i := range m {
		tr += m[i][i]
	}
	return tr
}

// EqualTol reports whether m and other agree entrywise within tol.
func (m Matrix) EqualTol(other Matrix, tol float64) bool {
	if m.Rows() != other.Rows() || m.Cols() != other.Cols() {
		return false
	}
	for i := range m {
		for j := range m[i] {
			if cmplx.Abs(m[i][j]-other[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Norm returns the Euclidean norm.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v {
		sum += real(x)*real(x) + imag(x)*imag(x)
	}
	return math.Sqrt(sum)
}

// Scale returns s * v.
func (v Vector) Scale(s complex128) Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = s * x
	}
	return out
}

// EqualTol reports whether v and other agree entrywise within tol.
func (v Vector) EqualTol(other Vector, tol float64) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if cmplx.Abs(v[i]-other[i]) > tol {
			return false
		}
	}
	return true
}

// Outer returns the outer product v * v†, the density operator of a ket.
func (v Vector) Outer() Matrix {
	out := Zeros(len(v), len(v))
	for i, a := range v {
		for j, b := range v {
			out[i][j] = a * cmplx.Conj(b)
		}
	}
	return out
}

// BasisKet returns the computational basis ket |idx> in a dim-dimensional
// space.
func BasisKet(dim, idx int) Vector {
	v := make(Vector, dim)
	v[idx] = 1
	return v
}

// validateSquare checks that m is square with dimension a power of two and
// returns the qubit count.
func validateSquare(m Matrix) (int, error) {
	r, c := m.Rows(), m.Cols()
	if r != c {
		return 0, fmt.Errorf("operator is %dx%d, not square", r, c)
	}
	n := 0
	for d := r; d > 1; d >>= 1 {
		if d&1 == 1 {
			return 0, fmt.Errorf("operator dimension %d is not a power of two", r)
		}
		n++
	}
	return n, nil
}
