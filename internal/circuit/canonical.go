package circuit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/claretgrace0801/qutip-qip/internal/gates"
)

// Render returns a deterministic one-line-per-operation text form of the
// circuit. It is the input for golden tests and content hashing; the same
// program always renders identically.
func (c *Circuit) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "qubits %d cbits %d\n", c.N, c.NumCbits)
	for _, op := range c.Ops {
		switch v := op.(type) {
		case GlobalPhase:
			fmt.Fprintf(&b, "GLOBALPHASE(%s)\n", formatArg(v.Angle))
		case Measurement:
			if v.ClassicalStore >= 0 {
				fmt.Fprintf(&b, "M q%d -> c%d\n", v.Target, v.ClassicalStore)
			} else {
				fmt.Fprintf(&b, "M q%d\n", v.Target)
			}
		case Gate:
			b.WriteString(renderGate(v))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderGate(g Gate) string {
	var b strings.Builder
	b.WriteString(string(g.Kind))
	if renderedArg(g) {
		fmt.Fprintf(&b, "(%s)", formatArg(g.Arg))
	}
	if len(g.Controls) > 0 {
		b.WriteByte(' ')
		b.WriteString(joinIdx("c", g.Controls))
	}
	b.WriteByte(' ')
	b.WriteString(joinIdx("q", g.Targets))
	if len(g.ClassicalControls) > 0 {
		fmt.Fprintf(&b, " if cbits[%s]==%d", joinInts(g.ClassicalControls), g.RequiredControlValue())
	}
	return b.String()
}

func joinIdx(prefix string, xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = prefix + strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}

func renderedArg(g Gate) bool {
	if spec, ok := gates.Lookup(g.Kind); ok {
		return spec.TakesArg
	}
	// User gates render their argument whenever it is nonzero.
	return g.Arg != 0
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}

func formatArg(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}

// Hash returns the SHA-256 content hash of the circuit's canonical
// rendering. Gate names are NFC-normalized first so that visually identical
// user-gate names hash identically.
func (c *Circuit) Hash() string {
	canonical := norm.NFC.String(c.Render())
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
