package sim

// Branch is one retained measurement-outcome continuation: final state,
// accumulated branch probability and the classical bits at the end of the
// run.
type Branch struct {
	State       State
	Probability float64
	Cbits       []int
}

// Result collects the branches of one Run or RunStatistics call. Branches
// whose state became unreachable are pruned before the result is built.
type Result struct {
	// Token identifies the run for logging and the run-log store.
	Token string

	// CircuitHash is the canonical content hash of the simulated program.
	CircuitHash string

	// Mode is the simulation mode the result was produced under.
	Mode Mode

	Branches []Branch
}

// TotalProbability sums the retained branch probabilities.
func (r *Result) TotalProbability() float64 {
	total := 0.0
	for _, b := range r.Branches {
		total += b.Probability
	}
	return total
}
