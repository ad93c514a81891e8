package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claretgrace0801/qutip-qip/internal/linalg"
)

func TestBell_Unitary(t *testing.T) {
	u, err := Bell().Unitary()
	require.NoError(t, err)

	got := u.MulVec(linalg.BasisKet(4, 0))
	inv := complex(1/math.Sqrt2, 0)
	want := linalg.Vector{inv, 0, 0, inv}
	assert.True(t, got.EqualTol(want, 1e-9))
}

func TestMeasuredBell_Shape(t *testing.T) {
	c := MeasuredBell()
	assert.Equal(t, 2, c.N)
	assert.Equal(t, 2, c.NumCbits)
	assert.Equal(t, 2, c.CountMeasurements())
}

func TestGHZ_Shape(t *testing.T) {
	c := GHZ(4)
	assert.Equal(t, 4, c.N)
	assert.Equal(t, 4, c.NumCbits)
	assert.Equal(t, 4, c.CountMeasurements())
	assert.Len(t, c.Ops, 8)
}
