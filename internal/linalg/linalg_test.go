package linalg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func pauliX() Matrix {
	return Matrix{{0, 1}, {1, 0}}
}

func hadamard() Matrix {
	h := complex(1/math.Sqrt2, 0)
	return Matrix{{h, h}, {h, -h}}
}

func cnot() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	}
}

func TestMul_Identity(t *testing.T) {
	x := pauliX()
	assert.True(t, x.Mul(x).EqualTol(Identity(2), tol))
}

func TestDag_Hadamard(t *testing.T) {
	h := hadamard()
	// H is self-adjoint and unitary.
	assert.True(t, h.Dag().EqualTol(h, tol))
	assert.True(t, h.Mul(h.Dag()).EqualTol(Identity(2), tol))
}

func TestKron_Dimensions(t *testing.T) {
	m := Identity(2).Kron(pauliX())
	require.Equal(t, 4, m.Rows())
	// I ⊗ X swaps within each half.
	assert.Equal(t, complex128(1), m[0][1])
	assert.Equal(t, complex128(1), m[2][3])
}

func TestExpandOperator_SingleQubit(t *testing.T) {
	// X on qubit 1 of 2: |00> -> |01>, so index 0 -> 1 under the msb
	// convention.
	full, err := ExpandOperator(pauliX(), 2, []int{1})
	require.NoError(t, err)
	assert.True(t, full.EqualTol(Identity(2).Kron(pauliX()), tol))

	// X on qubit 0 of 2 is X ⊗ I.
	full, err = ExpandOperator(pauliX(), 2, []int{0})
	require.NoError(t, err)
	assert.True(t, full.EqualTol(pauliX().Kron(Identity(2)), tol))
}

func TestExpandOperator_TargetOrder(t *testing.T) {
	// CNOT with control 1 and target 0 is not the same operator as
	// control 0 target 1; target order must carry that.
	a, err := ExpandOperator(cnot(), 2, []int{0, 1})
	require.NoError(t, err)
	b, err := ExpandOperator(cnot(), 2, []int{1, 0})
	require.NoError(t, err)
	assert.False(t, a.EqualTol(b, tol))

	// Reversed targets: |01> (control qubit 1 set) flips qubit 0 -> |11>.
	got := b.MulVec(BasisKet(4, 1))
	assert.True(t, got.EqualTol(BasisKet(4, 3), tol))
}

func TestExpandOperator_Errors(t *testing.T) {
	_, err := ExpandOperator(pauliX(), 2, []int{2})
	assert.Error(t, err)
	_, err = ExpandOperator(cnot(), 2, []int{0, 0})
	assert.Error(t, err)
	_, err = ExpandOperator(cnot(), 3, []int{0})
	assert.Error(t, err)
}

func TestSequenceProduct_MatchesExpandedProduct(t *testing.T) {
	// H on 0 then CNOT(0 -> 1), compact, over union {0, 1}.
	product, union, err := SequenceProduct(
		[]Matrix{hadamard(), cnot()},
		[][]int{{0}, {0, 1}},
	)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, union)

	hFull, err := ExpandOperator(hadamard(), 2, []int{0})
	require.NoError(t, err)
	want := cnot().Mul(hFull)
	assert.True(t, product.EqualTol(want, tol))

	// Bell state from |00>.
	bell := product.MulVec(BasisKet(4, 0))
	inv := 1 / math.Sqrt2
	assert.InDelta(t, inv, real(bell[0]), tol)
	assert.InDelta(t, inv, real(bell[3]), tol)
}

func TestSequenceProduct_ScalarFactor(t *testing.T) {
	phase := Matrix{{complex(0, 1)}}
	product, union, err := SequenceProduct(
		[]Matrix{pauliX(), phase},
		[][]int{{2}, {}},
	)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, union)
	assert.True(t, product.EqualTol(pauliX().Scale(complex(0, 1)), tol))
}

func TestMeasureKet_Plus(t *testing.T) {
	plus := hadamard().MulVec(BasisKet(2, 0))
	p0, err := ExpandOperator(Proj(0), 1, []int{0})
	require.NoError(t, err)
	p1, err := ExpandOperator(Proj(1), 1, []int{0})
	require.NoError(t, err)

	states, probs := MeasureKet(plus, []Matrix{p0, p1})
	assert.InDelta(t, 0.5, probs[0], tol)
	assert.InDelta(t, 0.5, probs[1], tol)
	assert.True(t, states[0].EqualTol(BasisKet(2, 0), tol))
	assert.True(t, states[1].EqualTol(BasisKet(2, 1), tol))
}

func TestMeasureKet_Unreachable(t *testing.T) {
	zero := BasisKet(2, 0)
	p1, err := ExpandOperator(Proj(1), 1, []int{0})
	require.NoError(t, err)
	states, probs := MeasureKet(zero, []Matrix{p1})
	assert.InDelta(t, 0, probs[0], tol)
	assert.Nil(t, states[0])
}

func TestMeasureDensity_TracePreserved(t *testing.T) {
	plus := hadamard().MulVec(BasisKet(2, 0))
	rho := plus.Outer()
	p0, _ := ExpandOperator(Proj(0), 1, []int{0})
	p1, _ := ExpandOperator(Proj(1), 1, []int{0})

	states, probs := MeasureDensity(rho, []Matrix{p0, p1})
	assert.InDelta(t, 0.5, probs[0], tol)
	assert.InDelta(t, 0.5, probs[1], tol)
	for _, s := range states {
		require.NotNil(t, s)
		assert.InDelta(t, 1.0, real(s.Trace()), tol)
	}
}
