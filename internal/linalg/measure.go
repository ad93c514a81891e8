package linalg

// probTol is the cutoff below which a measurement outcome is treated as
// unreachable and its collapsed state reported as nil.
const probTol = 1e-12

// Proj returns the single-qubit computational-basis projector |b><b|.
func Proj(b int) Matrix {
	p := Zeros(2, 2)
	p[b][b] = 1
	return p
}

// MeasureKet applies a list of full-register projectors to a ket and
// returns the candidate collapsed (renormalized) states with their
// probabilities. Unreachable outcomes yield a nil state.
func MeasureKet(v Vector, projectors []Matrix) ([]Vector, []float64) {
	states := make([]Vector, len(projectors))
	probs := make([]float64, len(projectors))
	for i, p := range projectors {
		collapsed := p.MulVec(v)
		norm := collapsed.Norm()
		probs[i] = norm * norm
		if probs[i] > probTol {
			states[i] = collapsed.Scale(complex(1/norm, 0))
		}
	}
	return states, probs
}

// MeasureDensity applies a list of full-register projectors to a density
// operator and returns the candidate collapsed (renormalized) operators
// with their probabilities. Unreachable outcomes yield a nil state.
func MeasureDensity(rho Matrix, projectors []Matrix) ([]Matrix, []float64) {
	states := make([]Matrix, len(projectors))
	probs := make([]float64, len(projectors))
	for i, p := range projectors {
		collapsed := p.Mul(rho).Mul(p.Dag())
		prob := real(collapsed.Trace())
		probs[i] = prob
		if prob > probTol {
			states[i] = collapsed.Scale(complex(1/prob, 0))
		}
	}
	return states, probs
}
