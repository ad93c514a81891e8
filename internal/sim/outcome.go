package sim

import (
	"math/rand"
	"time"
)

// OutcomeSource selects the measurement outcome for one projective
// measurement, given the (unnormalized) probabilities of the two
// computational-basis results. The simulator depends only on this
// abstraction; whether outcomes are sampled or replayed is the source's
// business.
type OutcomeSource interface {
	Next(p0, p1 float64) (int, error)
}

// RandomOutcomes samples outcomes from the renormalized two-element
// distribution using a seeded pseudo-random generator. The zero seed means
// "seed from the clock".
type RandomOutcomes struct {
	rng *rand.Rand
}

// NewRandomOutcomes returns a sampler seeded with seed, or with the
// current time when seed is zero.
func NewRandomOutcomes(seed int64) *RandomOutcomes {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomOutcomes{rng: rand.New(rand.NewSource(seed))}
}

// Next samples 0 or 1 with probabilities p0/(p0+p1) and p1/(p0+p1).
func (r *RandomOutcomes) Next(p0, p1 float64) (int, error) {
	if r.rng.Float64()*(p0+p1) < p0 {
		return 0, nil
	}
	return 1, nil
}

// ReplayOutcomes feeds a predetermined outcome sequence, one bit per
// measurement in program order, enabling deterministic post-selected
// replay. Probabilities are ignored.
type ReplayOutcomes struct {
	bits []int
	idx  int
}

// NewReplayOutcomes returns a replay source over bits. Each entry must be
// 0 or 1.
func NewReplayOutcomes(bits []int) *ReplayOutcomes {
	return &ReplayOutcomes{bits: append([]int(nil), bits...)}
}

// Next returns the next forced bit.
func (r *ReplayOutcomes) Next(_, _ float64) (int, error) {
	if r.idx >= len(r.bits) {
		return 0, newError(ErrCodeOutcomes, "forced-outcome sequence exhausted after %d bits", len(r.bits))
	}
	b := r.bits[r.idx]
	r.idx++
	if b != 0 && b != 1 {
		return 0, newError(ErrCodeOutcomes, "forced outcome %d is not a bit", b)
	}
	return b, nil
}
