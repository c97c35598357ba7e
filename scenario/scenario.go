// Package scenario runs batches of turtle and squirrel computations described
// in YAML, concurrently, and reports their outcomes as YAML.
//
// A file holds one document:
//
//	scenarios:
//	  - name: spiral-centre
//	    kind: spiral
//	    start: {row: 2, col: 3}
//	  - name: demo-forest
//	    kind: simulate
//	    input: "25,3,ABEG)H)))C)DFIK)L))JM))))"
//	    replay: true
//
// Missing matrices and inputs fall back to the Options defaults.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/critters/grid"
)

// Kind selects the computation.
type Kind string

const (
	KindZigZag   Kind = "zigzag"
	KindSpiral   Kind = "spiral"
	KindRoutes   Kind = "routes"
	KindSimulate Kind = "simulate"
)

var (
	// ErrUnknownKind is reported for a kind outside the constants above.
	ErrUnknownKind = errors.New("scenario: unknown kind")
	// ErrMissingStart is reported for a spiral without a start cell.
	ErrMissingStart = errors.New("scenario: spiral needs a start")
	// ErrMultipleDocuments rejects files holding more than one YAML document.
	ErrMultipleDocuments = errors.New("scenario: multiple YAML documents are not supported")
)

// Scenario is one entry of a batch file.
type Scenario struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`

	Matrix     [][]int        `yaml:"matrix,omitempty"`
	Start      *grid.Position `yaml:"start,omitempty"`
	StartValue int            `yaml:"start_value,omitempty"`
	EndValue   int            `yaml:"end_value,omitempty"`

	Input   string `yaml:"input,omitempty"`
	Ceiling int    `yaml:"ceiling,omitempty"`
	Replay  bool   `yaml:"replay,omitempty"`
}

type document struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Validate checks the fields the kind needs.
func (s Scenario) Validate() error {
	switch s.Kind {
	case KindZigZag, KindRoutes, KindSimulate:
	case KindSpiral:
		if s.Start == nil {
			return fmt.Errorf("%w (%q)", ErrMissingStart, s.Name)
		}
	default:
		return fmt.Errorf("%w: %q in %q", ErrUnknownKind, s.Kind, s.Name)
	}

	return nil
}

// Decode reads one YAML document. Unknown fields are errors.
func Decode(r io.Reader) ([]Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("scenario: read: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc document
	if err = dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("scenario: decode: %w", err)
	}
	var extra interface{}
	if err = dec.Decode(&extra); err == nil {
		return nil, ErrMultipleDocuments
	} else if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("scenario: decode: %w", err)
	}

	for _, s := range doc.Scenarios {
		if err = s.Validate(); err != nil {
			return nil, err
		}
	}

	return doc.Scenarios, nil
}

// Load decodes the file at path.
func Load(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	defer f.Close()

	return Decode(f)
}
