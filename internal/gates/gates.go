// Package gates defines the closed capability table of structural gate kinds.
//
// Every gate the decomposition passes and the simulator know how to handle
// structurally is listed here with its arity and parameter shape. Names not
// present in the table are user-defined gates and are resolved through the
// circuit's user-gate table instead.
package gates

// Kind is the structural name of a gate.
type Kind string

// Structural gate kinds.
const (
	RX        Kind = "RX"
	RY        Kind = "RY"
	RZ        Kind = "RZ"
	IDLE      Kind = "IDLE"
	X         Kind = "X"
	Y         Kind = "Y"
	Z         Kind = "Z"
	S         Kind = "S"
	T         Kind = "T"
	SQRTNOT   Kind = "SQRTNOT"
	SNOT      Kind = "SNOT"
	PHASEGATE Kind = "PHASEGATE"
	CNOT      Kind = "CNOT"
	CSIGN     Kind = "CSIGN"
	CY        Kind = "CY"
	SWAP      Kind = "SWAP"
	ISWAP     Kind = "ISWAP"
	SQRTSWAP  Kind = "SQRTSWAP"
	SQRTISWAP Kind = "SQRTISWAP"
	BERKELEY  Kind = "BERKELEY"
	SWAPalpha Kind = "SWAPalpha"
	FREDKIN   Kind = "FREDKIN"
	TOFFOLI   Kind = "TOFFOLI"
)

// Spec describes the fixed arity and parameter shape of a structural gate.
type Spec struct {
	// Targets is the required number of target qubits.
	Targets int

	// Controls is the required number of control qubits.
	Controls int

	// TakesArg reports whether the gate carries a continuous argument
	// (rotation angle or phase).
	TakesArg bool
}

// table is the closed registry. Arities follow the compact matrix shapes:
// controlled gates list their controls separately from their targets.
var table = map[Kind]Spec{
	RX:        {Targets: 1, TakesArg: true},
	RY:        {Targets: 1, TakesArg: true},
	RZ:        {Targets: 1, TakesArg: true},
	IDLE:      {Targets: 1},
	X:         {Targets: 1},
	Y:         {Targets: 1},
	Z:         {Targets: 1},
	S:         {Targets: 1},
	T:         {Targets: 1},
	SQRTNOT:   {Targets: 1},
	SNOT:      {Targets: 1},
	PHASEGATE: {Targets: 1, TakesArg: true},
	CNOT:      {Targets: 1, Controls: 1},
	CSIGN:     {Targets: 1, Controls: 1},
	CY:        {Targets: 1, Controls: 1},
	SWAP:      {Targets: 2},
	ISWAP:     {Targets: 2},
	SQRTSWAP:  {Targets: 2},
	SQRTISWAP: {Targets: 2},
	BERKELEY:  {Targets: 2},
	SWAPalpha: {Targets: 2, TakesArg: true},
	FREDKIN:   {Targets: 2, Controls: 1},
	TOFFOLI:   {Targets: 1, Controls: 2},
}

// Lookup returns the capability entry for a structural gate name.
// The second return value is false for user-defined names.
func Lookup(name Kind) (Spec, bool) {
	spec, ok := table[name]
	return spec, ok
}

// IsStructural reports whether name is in the closed capability table.
func IsStructural(name Kind) bool {
	_, ok := table[name]
	return ok
}

// All returns every structural kind in the table. Order is unspecified.
func All() []Kind {
	kinds := make([]Kind, 0, len(table))
	for k := range table {
		kinds = append(kinds, k)
	}
	return kinds
}
