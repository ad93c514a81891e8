package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with args and returns stdout plus the command error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_RejectsBadFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "resolve", "whatever.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestResolveCommand_Text(t *testing.T) {
	path := writeCircuitFile(t, `qubits: 2
ops:
  - gate: SNOT
    targets: [0]
  - gate: CNOT
    controls: [0]
    targets: [1]
`)
	out, err := execute(t, "resolve", path)
	require.NoError(t, err)
	assert.Contains(t, out, "GLOBALPHASE(1.57079632679)")
	assert.Contains(t, out, "RY(1.57079632679) q0")
	assert.Contains(t, out, "RX(3.14159265359) q0")
	assert.Contains(t, out, "CNOT c0 q1")
}

func TestResolveCommand_CustomBasis(t *testing.T) {
	path := writeCircuitFile(t, `qubits: 2
ops:
  - gate: CNOT
    controls: [0]
    targets: [1]
`)
	out, err := execute(t, "resolve", path, "--basis", "CSIGN")
	require.NoError(t, err)
	assert.Contains(t, out, "CSIGN c0 q1")
	assert.NotContains(t, out, "CNOT")
}

func TestResolveCommand_InvalidBasisFails(t *testing.T) {
	path := writeCircuitFile(t, `qubits: 1
ops:
  - gate: X
    targets: [0]
`)
	out, err := execute(t, "resolve", path, "--basis", "HADAMARD")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "INVALID_BASIS")
}

func TestResolveCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "resolve", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLinearizeCommand(t *testing.T) {
	path := writeCircuitFile(t, `qubits: 4
ops:
  - gate: CNOT
    controls: [0]
    targets: [3]
`)
	out, err := execute(t, "linearize", path)
	require.NoError(t, err)
	assert.Contains(t, out, "SWAP q0,q1")
	assert.Contains(t, out, "CNOT c1 q2")
}

func TestRunCommand_JSONForced(t *testing.T) {
	path := writeCircuitFile(t, bellYAML)
	out, err := execute(t, "--format", "json", "run", path, "--outcomes", "11")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   resultView `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Branches, 1)
	assert.InDelta(t, 0.5, resp.Data.Branches[0].Probability, 1e-9)
	assert.Equal(t, []int{1, 1}, resp.Data.Branches[0].Cbits)
	assert.NotEmpty(t, resp.Data.Token)
	assert.NotEmpty(t, resp.Data.CircuitHash)
}

func TestRunCommand_BadOutcomes(t *testing.T) {
	path := writeCircuitFile(t, bellYAML)
	_, err := execute(t, "run", path, "--outcomes", "2x")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunCommand_BadMode(t *testing.T) {
	path := writeCircuitFile(t, bellYAML)
	_, err := execute(t, "run", path, "--mode", "unitary_simulator")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestStatsCommand(t *testing.T) {
	path := writeCircuitFile(t, bellYAML)
	out, err := execute(t, "--format", "json", "stats", path)
	require.NoError(t, err)

	var resp struct {
		Data resultView `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Branches, 2)
	total := resp.Data.Branches[0].Probability + resp.Data.Branches[1].Probability
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestRunAndLogCommands_StoreRoundTrip(t *testing.T) {
	path := writeCircuitFile(t, bellYAML)
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	_, err := execute(t, "run", path, "--outcomes", "00", "--db", dbPath)
	require.NoError(t, err)
	_, err = execute(t, "run", path, "--outcomes", "11", "--db", dbPath)
	require.NoError(t, err)

	out, err := execute(t, "log", path, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2 run(s)")
	assert.Equal(t, 2, strings.Count(out, "branch 0:"))
}

func TestParseOutcomes(t *testing.T) {
	bits, err := parseOutcomes("0110")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1, 0}, bits)

	bits, err = parseOutcomes("")
	require.NoError(t, err)
	assert.Nil(t, bits)
}
