package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWriteRun_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := Run{
		Token:       "0190b5a2-0000-7000-8000-000000000001",
		CircuitHash: "hash-a",
		Mode:        "state_vector_simulator",
		Branches: []BranchRecord{
			{Probability: 0.5, Cbits: []int{0, 0}},
			{Probability: 0.5, Cbits: []int{1, 1}},
		},
	}
	require.NoError(t, s.WriteRun(ctx, run))

	runs, err := s.ListRuns(ctx, "hash-a")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.Token, runs[0].Token)
	assert.Equal(t, run.Mode, runs[0].Mode)
	require.Len(t, runs[0].Branches, 2)
	assert.Equal(t, 0.5, runs[0].Branches[0].Probability)
	assert.Equal(t, []int{0, 0}, runs[0].Branches[0].Cbits)
	assert.Equal(t, []int{1, 1}, runs[0].Branches[1].Cbits)
}

func TestWriteRun_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := Run{
		Token:       "0190b5a2-0000-7000-8000-000000000002",
		CircuitHash: "hash-b",
		Mode:        "state_vector_simulator",
		Branches:    []BranchRecord{{Probability: 1, Cbits: []int{1}}},
	}
	require.NoError(t, s.WriteRun(ctx, run))
	require.NoError(t, s.WriteRun(ctx, run))

	runs, err := s.ListRuns(ctx, "hash-b")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Len(t, runs[0].Branches, 1)
}

func TestListRuns_OrderedByToken(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Insert out of chronological order; listing must sort by token.
	for _, token := range []string{
		"0190b5a2-0000-7000-8000-000000000003",
		"0190b5a2-0000-7000-8000-000000000001",
		"0190b5a2-0000-7000-8000-000000000002",
	} {
		require.NoError(t, s.WriteRun(ctx, Run{
			Token:       token,
			CircuitHash: "hash-c",
			Mode:        "density_matrix_simulator",
		}))
	}

	runs, err := s.ListRuns(ctx, "hash-c")
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Less(t, runs[0].Token, runs[1].Token)
	assert.Less(t, runs[1].Token, runs[2].Token)
}

func TestListRuns_UnknownHashEmpty(t *testing.T) {
	s := openTestStore(t)
	runs, err := s.ListRuns(context.Background(), "no-such-hash")
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestDecodeCbits_Invalid(t *testing.T) {
	_, err := decodeCbits("01x")
	assert.Error(t, err)
}
