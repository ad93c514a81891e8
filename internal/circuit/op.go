// Package circuit defines the immutable program representation consumed by
// the decomposition passes and the simulator: an ordered sequence of gates,
// measurements and phase-only bookkeeping operations over a fixed-size
// qubit register with optional classical bits.
package circuit

// Op is one entry of a circuit program. It is a sealed variant: the only
// implementations are Gate, Measurement and GlobalPhase.
type Op interface {
	isOp()
}

// GlobalPhase is a phase-only bookkeeping operation: a scalar unit-modulus
// factor e^(i*Angle) applied to the whole register. It has no qubit
// operands and does not affect measurement statistics; it exists so that
// decomposition identities stay exact up to nothing at all.
type GlobalPhase struct {
	Angle float64
}

func (GlobalPhase) isOp() {}

// Measurement is a projective computational-basis measurement of a single
// qubit. ClassicalStore is the classical bit that records the sampled
// outcome, or -1 when the outcome is discarded.
type Measurement struct {
	Name          string
	Target        int
	ClassicalStore int
}

func (Measurement) isOp() {}

// NewMeasurement returns a measurement of target whose outcome is not
// stored.
func NewMeasurement(target int) Measurement {
	return Measurement{Name: "M", Target: target, ClassicalStore: -1}
}

// NewStoredMeasurement returns a measurement of target recording its
// outcome into classical bit store.
func NewStoredMeasurement(target, store int) Measurement {
	return Measurement{Name: "M", Target: target, ClassicalStore: store}
}
