package decompose

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/claretgrace0801/qutip-qip/internal/circuit"
	"github.com/claretgrace0801/qutip-qip/internal/gates"
)

func assertGolden(t *testing.T, name string, c *circuit.Circuit) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(c.Render()))
}

func TestResolveGates_Golden(t *testing.T) {
	t.Run("bell_cnot", func(t *testing.T) {
		c := circuit.New(2, 0)
		require.NoError(t, c.AddGate(circuit.Gate{Kind: gates.SNOT, Targets: []int{0}}))
		require.NoError(t, c.AddGate(circuit.Ctrl(gates.CNOT, 0, 1)))

		resolved, err := ResolveGates(c, []string{"CNOT", "RX", "RY", "RZ"})
		require.NoError(t, err)
		assertGolden(t, "bell_cnot", resolved)
	})

	t.Run("cnot_to_csign", func(t *testing.T) {
		c := circuit.New(2, 0)
		require.NoError(t, c.AddGate(circuit.Ctrl(gates.CNOT, 0, 1)))

		resolved, err := ResolveGates(c, []string{"CSIGN"})
		require.NoError(t, err)
		assertGolden(t, "cnot_to_csign", resolved)
	})

	t.Run("toffoli", func(t *testing.T) {
		c := circuit.New(3, 0)
		require.NoError(t, c.AddGate(circuit.Gate{Kind: gates.TOFFOLI, Targets: []int{2}, Controls: []int{0, 1}}))

		resolved, err := ResolveGates(c, []string{"CNOT", "RX", "RY", "RZ"})
		require.NoError(t, err)
		assertGolden(t, "toffoli", resolved)
	})
}

func TestAdjacentGates_Golden(t *testing.T) {
	c := circuit.New(4, 0)
	require.NoError(t, c.AddGate(circuit.Ctrl(gates.CNOT, 0, 3)))

	out, err := AdjacentGates(c)
	require.NoError(t, err)
	assertGolden(t, "cnot_span3", out)
}
