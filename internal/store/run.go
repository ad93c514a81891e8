package store

import (
	"fmt"
	"strings"
)

// Run is one logged simulation run.
type Run struct {
	Token       string
	CircuitHash string
	Mode        string
	Branches    []BranchRecord
}

// BranchRecord is one retained outcome branch of a run.
type BranchRecord struct {
	Probability float64
	Cbits       []int
}

// encodeCbits renders a classical-bit vector as a bit string, lowest index
// first, e.g. []int{1, 0} -> "10".
func encodeCbits(cbits []int) string {
	var b strings.Builder
	for _, bit := range cbits {
		if bit == 0 {
			b.WriteByte('0')
		} else {
			b.WriteByte('1')
		}
	}
	return b.String()
}

func decodeCbits(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			out[i] = 0
		case '1':
			out[i] = 1
		default:
			return nil, fmt.Errorf("invalid cbits string %q", s)
		}
	}
	return out, nil
}
