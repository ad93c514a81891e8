package decompose

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claretgrace0801/qutip-qip/internal/circuit"
	"github.com/claretgrace0801/qutip-qip/internal/gates"
)

const tol = 1e-9

// angles covers the representative values the equivalence properties are
// checked at, including an irrational multiple of pi.
var angles = []float64{0, math.Pi / 4, math.Pi / 2, math.Pi, math.Pi * math.Sqrt2}

func singleGateCircuit(t *testing.T, n int, g circuit.Gate) *circuit.Circuit {
	t.Helper()
	c := circuit.New(n, 0)
	require.NoError(t, c.AddGate(g))
	return c
}

// assertEquivalent checks exact matrix equivalence, global-phase
// corrections included, between the original and the rewritten program.
func assertEquivalent(t *testing.T, original, rewritten *circuit.Circuit) {
	t.Helper()
	want, err := original.Unitary()
	require.NoError(t, err)
	got, err := rewritten.Unitary()
	require.NoError(t, err)
	assert.True(t, got.EqualTol(want, tol),
		"rewritten program is not equivalent to the original")
}

func TestResolveGates_DefaultBasisEquivalence(t *testing.T) {
	fixed := []struct {
		n    int
		gate circuit.Gate
	}{
		{1, circuit.Gate{Kind: gates.X, Targets: []int{0}}},
		{1, circuit.Gate{Kind: gates.Y, Targets: []int{0}}},
		{1, circuit.Gate{Kind: gates.Z, Targets: []int{0}}},
		{1, circuit.Gate{Kind: gates.S, Targets: []int{0}}},
		{1, circuit.Gate{Kind: gates.T, Targets: []int{0}}},
		{1, circuit.Gate{Kind: gates.SQRTNOT, Targets: []int{0}}},
		{1, circuit.Gate{Kind: gates.SNOT, Targets: []int{0}}},
		{2, circuit.Ctrl(gates.CNOT, 0, 1)},
		{2, circuit.Ctrl(gates.CSIGN, 0, 1)},
		{2, circuit.Ctrl(gates.CSIGN, 1, 0)},
		{2, circuit.TwoQubit(gates.SWAP, 0, 1)},
		{2, circuit.TwoQubit(gates.ISWAP, 0, 1)},
		{2, circuit.TwoQubit(gates.ISWAP, 1, 0)},
		{3, circuit.Gate{Kind: gates.TOFFOLI, Targets: []int{2}, Controls: []int{0, 1}}},
		{3, circuit.Gate{Kind: gates.TOFFOLI, Targets: []int{0}, Controls: []int{2, 1}}},
		{3, circuit.Gate{Kind: gates.FREDKIN, Targets: []int{1, 2}, Controls: []int{0}}},
	}
	for _, tt := range fixed {
		t.Run(string(tt.gate.Kind), func(t *testing.T) {
			c := singleGateCircuit(t, tt.n, tt.gate)
			resolved, err := ResolveGates(c, []string{"CNOT", "RX", "RY", "RZ"})
			require.NoError(t, err)
			assertEquivalent(t, c, resolved)
		})
	}

	parametrized := []gates.Kind{gates.RX, gates.RY, gates.RZ, gates.PHASEGATE}
	for _, kind := range parametrized {
		for _, angle := range angles {
			t.Run(fmt.Sprintf("%s_%g", kind, angle), func(t *testing.T) {
				c := singleGateCircuit(t, 1, circuit.Rot(kind, 0, angle))
				resolved, err := ResolveGates(c, []string{"CNOT", "RX", "RY", "RZ"})
				require.NoError(t, err)
				assertEquivalent(t, c, resolved)
			})
		}
	}
}

func TestResolveGates_CanonicalFormEmitsOnlyBasis(t *testing.T) {
	c := circuit.New(3, 0)
	require.NoError(t, c.AddGate(circuit.Gate{Kind: gates.SNOT, Targets: []int{0}}))
	require.NoError(t, c.AddGate(circuit.Gate{Kind: gates.TOFFOLI, Targets: []int{2}, Controls: []int{0, 1}}))
	require.NoError(t, c.AddGate(circuit.TwoQubit(gates.SWAP, 0, 2)))

	resolved, err := ResolveGates(c, []string{"CNOT", "RX", "RY", "RZ"})
	require.NoError(t, err)

	allowed := map[gates.Kind]bool{gates.RX: true, gates.RY: true, gates.RZ: true, gates.CNOT: true}
	for _, op := range resolved.Ops {
		if g, ok := op.(circuit.Gate); ok {
			assert.True(t, allowed[g.Kind], "unexpected gate %s in resolved program", g.Kind)
		}
	}
	assertEquivalent(t, c, resolved)
}

func TestResolveGates_TwoQubitBases(t *testing.T) {
	bases := []string{"CSIGN", "ISWAP", "SQRTSWAP", "SQRTISWAP"}
	for _, basis := range bases {
		t.Run(basis, func(t *testing.T) {
			c := circuit.New(2, 0)
			require.NoError(t, c.AddGate(circuit.Gate{Kind: gates.SNOT, Targets: []int{0}}))
			require.NoError(t, c.AddGate(circuit.Ctrl(gates.CNOT, 0, 1)))

			resolved, err := ResolveGates(c, []string{basis})
			require.NoError(t, err)
			assertEquivalent(t, c, resolved)

			// CNOT must be gone; only the requested two-qubit generator
			// survives among multi-qubit gates.
			for _, op := range resolved.Ops {
				if g, ok := op.(circuit.Gate); ok && len(g.AllQubits()) > 1 {
					assert.Equal(t, gates.Kind(basis), g.Kind)
				}
			}
		})
	}
}

func TestResolveGates_SwapInISwapBasis(t *testing.T) {
	c := singleGateCircuit(t, 2, circuit.TwoQubit(gates.SWAP, 0, 1))
	resolved, err := ResolveGates(c, []string{"ISWAP"})
	require.NoError(t, err)
	assertEquivalent(t, c, resolved)
	for _, op := range resolved.Ops {
		if g, ok := op.(circuit.Gate); ok && len(g.AllQubits()) > 1 {
			assert.Equal(t, gates.ISWAP, g.Kind)
		}
	}
}

func TestResolveGates_TwoAxisBasis(t *testing.T) {
	tests := []struct {
		name    string
		basis   []string
		missing gates.Kind
	}{
		{"no RX", []string{"CNOT", "RY", "RZ"}, gates.RX},
		{"no RY", []string{"CNOT", "RX", "RZ"}, gates.RY},
		{"no RZ", []string{"CNOT", "RX", "RY"}, gates.RZ},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, angle := range angles {
				c := circuit.New(2, 0)
				require.NoError(t, c.AddGate(circuit.Gate{Kind: gates.SNOT, Targets: []int{0}}))
				require.NoError(t, c.AddGate(circuit.Rot(gates.RX, 0, angle)))
				require.NoError(t, c.AddGate(circuit.Rot(gates.RY, 1, angle)))
				require.NoError(t, c.AddGate(circuit.Rot(gates.RZ, 0, angle)))
				require.NoError(t, c.AddGate(circuit.Ctrl(gates.CNOT, 0, 1)))

				resolved, err := ResolveGates(c, tt.basis)
				require.NoError(t, err)
				assertEquivalent(t, c, resolved)
				for _, op := range resolved.Ops {
					if g, ok := op.(circuit.Gate); ok {
						assert.NotEqual(t, tt.missing, g.Kind)
					}
				}
			}
		})
	}
}

func TestResolveGates_BasisErrors(t *testing.T) {
	c := singleGateCircuit(t, 1, circuit.Gate{Kind: gates.X, Targets: []int{0}})

	tests := []struct {
		name  string
		basis []string
	}{
		{"unknown token", []string{"CNOT", "HADAMARD"}},
		{"single one-qubit generator", []string{"CNOT", "RX"}},
		{"two two-qubit generators", []string{"CNOT", "CSIGN"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveGates(c, tt.basis)
			require.Error(t, err)
			assert.True(t, IsInvalidBasis(err), "want InvalidBasisError, got %v", err)
		})
	}
}

func TestResolveGates_UnsupportedGate(t *testing.T) {
	for _, kind := range []gates.Kind{gates.BERKELEY, gates.SQRTSWAP, gates.SQRTISWAP} {
		c := singleGateCircuit(t, 2, circuit.TwoQubit(kind, 0, 1))
		_, err := ResolveGates(c, []string{"CNOT", "RX", "RY", "RZ"})
		require.Error(t, err)
		assert.True(t, IsUnsupportedGate(err))
	}

	// User-defined gates have no rewrite rule either.
	c := circuit.New(1, 0)
	require.NoError(t, c.RegisterUserOperator("MYGATE", [][]complex128{{1, 0}, {0, 1}}))
	require.NoError(t, c.AddGate(circuit.Gate{Kind: "MYGATE", Targets: []int{0}}))
	_, err := ResolveGates(c, []string{"CNOT", "RX", "RY", "RZ"})
	assert.True(t, IsUnsupportedGate(err))
}

func TestResolveGates_RejectsMeasurements(t *testing.T) {
	c := circuit.New(1, 1)
	require.NoError(t, c.AddMeasurement(circuit.NewStoredMeasurement(0, 0)))
	_, err := ResolveGates(c, []string{"CNOT", "RX", "RY", "RZ"})
	require.Error(t, err)
	assert.True(t, IsSequencing(err))
}

func TestResolveGates_InputUntouched(t *testing.T) {
	c := singleGateCircuit(t, 1, circuit.Gate{Kind: gates.SNOT, Targets: []int{0}})
	before := c.Render()
	_, err := ResolveGates(c, []string{"CNOT", "RX", "RY", "RZ"})
	require.NoError(t, err)
	assert.Equal(t, before, c.Render())
}
