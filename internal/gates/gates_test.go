package gates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Structural(t *testing.T) {
	tests := []struct {
		name Kind
		want Spec
	}{
		{RX, Spec{Targets: 1, TakesArg: true}},
		{IDLE, Spec{Targets: 1}},
		{CNOT, Spec{Targets: 1, Controls: 1}},
		{SWAP, Spec{Targets: 2}},
		{TOFFOLI, Spec{Targets: 1, Controls: 2}},
		{FREDKIN, Spec{Targets: 2, Controls: 1}},
		{SWAPalpha, Spec{Targets: 2, TakesArg: true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			spec, ok := Lookup(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, spec)
		})
	}
}

func TestLookup_UserDefined(t *testing.T) {
	_, ok := Lookup("MY_GATE")
	assert.False(t, ok)
	assert.False(t, IsStructural("MY_GATE"))
}

func TestAll_Closed(t *testing.T) {
	kinds := All()
	assert.Len(t, kinds, 23)
	for _, k := range kinds {
		assert.True(t, IsStructural(k))
	}
}
