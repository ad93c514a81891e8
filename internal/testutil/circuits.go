// Package testutil provides prebuilt circuits shared across test suites.
package testutil

import (
	"github.com/claretgrace0801/qutip-qip/internal/circuit"
	"github.com/claretgrace0801/qutip-qip/internal/gates"
)

// Bell returns the two-qubit circuit preparing (|00>+|11>)/sqrt(2).
func Bell() *circuit.Circuit {
	c := circuit.New(2, 0)
	mustAdd(c, circuit.Gate{Kind: gates.SNOT, Targets: []int{0}})
	mustAdd(c, circuit.Ctrl(gates.CNOT, 0, 1))
	return c
}

// MeasuredBell returns the Bell circuit with both qubits measured into
// classical bits 0 and 1.
func MeasuredBell() *circuit.Circuit {
	c := circuit.New(2, 2)
	mustAdd(c, circuit.Gate{Kind: gates.SNOT, Targets: []int{0}})
	mustAdd(c, circuit.Ctrl(gates.CNOT, 0, 1))
	mustMeasure(c, circuit.NewStoredMeasurement(0, 0))
	mustMeasure(c, circuit.NewStoredMeasurement(1, 1))
	return c
}

// GHZ returns an n-qubit circuit preparing (|0...0>+|1...1>)/sqrt(2), with
// every qubit measured into its own classical bit.
func GHZ(n int) *circuit.Circuit {
	c := circuit.New(n, n)
	mustAdd(c, circuit.Gate{Kind: gates.SNOT, Targets: []int{0}})
	for q := 1; q < n; q++ {
		mustAdd(c, circuit.Ctrl(gates.CNOT, q-1, q))
	}
	for q := 0; q < n; q++ {
		mustMeasure(c, circuit.NewStoredMeasurement(q, q))
	}
	return c
}

func mustAdd(c *circuit.Circuit, g circuit.Gate) {
	if err := c.AddGate(g); err != nil {
		panic(err)
	}
}

func mustMeasure(c *circuit.Circuit, m circuit.Measurement) {
	if err := c.AddMeasurement(m); err != nil {
		panic(err)
	}
}
