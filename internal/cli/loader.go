package cli

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/claretgrace0801/qutip-qip/internal/circuit"
	"github.com/claretgrace0801/qutip-qip/internal/gates"
)

//go:embed schema.cue
var schemaCUE string

// Loader error codes.
const (
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeParse    = "PARSE"
	ErrCodeSchema   = "SCHEMA"
	ErrCodeBuild    = "BUILD"
	ErrCodeGeneric  = "ERROR"
)

// LoadError represents an error that occurred during circuit loading.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func loadErrorf(code, format string, args ...any) *LoadError {
	return &LoadError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// circuitFile mirrors the YAML circuit format after schema validation.
type circuitFile struct {
	Qubits int       `yaml:"qubits"`
	Cbits  int       `yaml:"cbits"`
	Ops    []opEntry `yaml:"ops"`
}

// opEntry is one operation; which of gate/measure/phase is set selects the
// operation kind. The schema guarantees exactly one is.
type opEntry struct {
	Gate              string   `yaml:"gate"`
	Targets           []int    `yaml:"targets"`
	Controls          []int    `yaml:"controls"`
	Arg               *float64 `yaml:"arg"`
	ClassicalControls []int    `yaml:"classical_controls"`
	ClassicalValue    *int     `yaml:"classical_value"`
	Label             string   `yaml:"label"`

	Measure *int `yaml:"measure"`
	Store   *int `yaml:"store"`

	Phase *float64 `yaml:"phase"`
}

// LoadCircuit reads a YAML circuit definition, validates it against the
// embedded CUE schema, and builds the circuit. Structural consistency
// (arities, index ranges) is enforced a second time by the circuit builder
// itself.
func LoadCircuit(path string) (*circuit.Circuit, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, loadErrorf(ErrCodeNotFound, "circuit file not found: %s", path)
		}
		return nil, loadErrorf(ErrCodeNotFound, "reading %s: %v", path, err)
	}

	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, loadErrorf(ErrCodeParse, "%s: %v", path, err)
	}

	if err := validateAgainstSchema(generic); err != nil {
		return nil, loadErrorf(ErrCodeSchema, "%s: %v", path, err)
	}

	var file circuitFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, loadErrorf(ErrCodeParse, "%s: %v", path, err)
	}

	c, err := buildCircuit(file)
	if err != nil {
		return nil, loadErrorf(ErrCodeBuild, "%s: %v", path, err)
	}
	return c, nil
}

// validateAgainstSchema unifies the decoded document with the #Circuit
// definition and requires the result to be concrete.
func validateAgainstSchema(doc any) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("internal schema error: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Circuit"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("internal schema error: %w", err)
	}

	unified := def.Unify(ctx.Encode(doc))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return err
	}
	return nil
}

func buildCircuit(file circuitFile) (*circuit.Circuit, error) {
	c := circuit.New(file.Qubits, file.Cbits)
	for i, op := range file.Ops {
		switch {
		case op.Measure != nil:
			m := circuit.NewMeasurement(*op.Measure)
			if op.Store != nil {
				m = circuit.NewStoredMeasurement(*op.Measure, *op.Store)
			}
			if err := c.AddMeasurement(m); err != nil {
				return nil, fmt.Errorf("op %d: %w", i, err)
			}
		case op.Phase != nil:
			c.AddGlobalPhase(*op.Phase)
		default:
			g := circuit.Gate{
				Kind:                  gates.Kind(op.Gate),
				Targets:               op.Targets,
				Controls:              op.Controls,
				ClassicalControls:     op.ClassicalControls,
				ClassicalControlValue: op.ClassicalValue,
				Label:                 op.Label,
			}
			if op.Arg != nil {
				g.Arg = *op.Arg
			}
			if err := c.AddGate(g); err != nil {
				return nil, fmt.Errorf("op %d: %w", i, err)
			}
		}
	}
	return c, nil
}
