package circuit

import (
	"github.com/claretgrace0801/qutip-qip/internal/gates"
)

// Gate is a unitary operation tagged with a structural kind (or a
// user-defined name), explicit target and control qubits, and an optional
// continuous argument.
//
// Target order is semantically significant for multi-qubit gates: the i-th
// target supplies the i-th index of the gate's compact matrix.
type Gate struct {
	Kind     gates.Kind
	Targets  []int
	Controls []int

	// Arg is the rotation angle or phase for parametrized kinds.
	Arg float64

	// ClassicalControls lists classical bits the gate is conditioned on.
	// ClassicalControlValue is the required combined value of those bits,
	// lowest bit first; nil means all listed bits must be 1.
	ClassicalControls     []int
	ClassicalControlValue *int

	// Label is a display name only; it carries no semantics.
	Label string
}

func (Gate) isOp() {}

// RequiredControlValue returns the combined classical-bit value the gate is
// conditioned on, defaulting to all ones.
func (g Gate) RequiredControlValue() int {
	if g.ClassicalControlValue != nil {
		return *g.ClassicalControlValue
	}
	return 1<<len(g.ClassicalControls) - 1
}

// AllQubits returns the gate's operand qubits, controls first, in the order
// the compact matrix expects.
func (g Gate) AllQubits() []int {
	all := make([]int, 0, len(g.Controls)+len(g.Targets))
	all = append(all, g.Controls...)
	all = append(all, g.Targets...)
	return all
}

// clone returns a deep copy so rewritten programs never alias their input.
func (g Gate) clone() Gate {
	out := g
	out.Targets = append([]int(nil), g.Targets...)
	out.Controls = append([]int(nil), g.Controls...)
	out.ClassicalControls = append([]int(nil), g.ClassicalControls...)
	if g.ClassicalControlValue != nil {
		v := *g.ClassicalControlValue
		out.ClassicalControlValue = &v
	}
	return out
}

// Rot is shorthand for an unconditioned single-qubit gate with an argument,
// used heavily by the decomposition rules.
func Rot(kind gates.Kind, target int, arg float64) Gate {
	return Gate{Kind: kind, Targets: []int{target}, Arg: arg}
}

// Ctrl is shorthand for a controlled gate with one control and one target.
func Ctrl(kind gates.Kind, control, target int) Gate {
	return Gate{Kind: kind, Targets: []int{target}, Controls: []int{control}}
}

// TwoQubit is shorthand for an uncontrolled two-qubit gate.
func TwoQubit(kind gates.Kind, a, b int) Gate {
	return Gate{Kind: kind, Targets: []int{a, b}}
}
