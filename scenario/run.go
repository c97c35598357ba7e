package scenario

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/critters/grid"
	"github.com/katalvlaran/critters/squirrel"
	"github.com/katalvlaran/critters/turtle"
)

// Options configures RunAll.
type Options struct {
	// Workers bounds how many scenarios run at once.
	Workers int
	// Matrix is used when a scenario has none.
	Matrix [][]int
	// Input is used when a simulate scenario has none.
	Input  string
	Logger *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns four workers, the demo matrix and the demo input.
func DefaultOptions() Options {
	return Options{
		Workers: 4,
		Matrix:  turtle.DefaultMatrix,
		Input:   squirrel.DefaultInput,
		Logger:  zap.NewNop(),
	}
}

func WithWorkers(n int) Option { return func(o *Options) { o.Workers = n } }

func WithMatrix(m [][]int) Option { return func(o *Options) { o.Matrix = m } }

func WithInput(in string) Option { return func(o *Options) { o.Input = in } }

func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// RouteSummary is the YAML form of a turtle.Route.
type RouteSummary struct {
	Direction string        `yaml:"direction"`
	From      grid.Position `yaml:"from"`
	To        grid.Position `yaml:"to"`
	Values    []int         `yaml:"values,flow"`
	Shortest  bool          `yaml:"shortest"`
	Longest   bool          `yaml:"longest"`
}

// Outcome is the result of one scenario. Error is set instead of the result
// fields when the scenario's input was rejected.
type Outcome struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`

	Path    []grid.Position `yaml:"path,omitempty,flow"`
	Covered int             `yaml:"covered,omitempty"`
	Cells   int             `yaml:"cells,omitempty"`
	Routes  []RouteSummary  `yaml:"routes,omitempty"`

	Requested int      `yaml:"requested,omitempty"`
	Trips     []string `yaml:"trips,omitempty,flow"`
	Saturated bool     `yaml:"saturated,omitempty"`
	Structure string   `yaml:"structure,omitempty"`
	Collected int      `yaml:"collected,omitempty"`

	Error string `yaml:"error,omitempty"`
}

// RunAll executes every scenario with at most o.Workers in flight and
// returns the outcomes in input order. It fails only if ctx ends first.
func RunAll(ctx context.Context, scenarios []Scenario, opts ...Option) ([]Outcome, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Workers < 1 {
		o.Workers = 1
	}

	outcomes := make([]Outcome, len(scenarios))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(o.Workers)
	for i, s := range scenarios {
		i, s := i, s
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			out, err := Execute(s, o)
			if err != nil {
				o.Logger.Warn("scenario rejected", zap.String("name", s.Name), zap.Error(err))
				out = Outcome{Name: s.Name, Kind: s.Kind, Error: err.Error()}
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	o.Logger.Info("batch finished", zap.Int("scenarios", len(scenarios)))

	return outcomes, nil
}

// Execute runs a single scenario.
func Execute(s Scenario, o Options) (Outcome, error) {
	if err := s.Validate(); err != nil {
		return Outcome{}, err
	}
	out := Outcome{Name: s.Name, Kind: s.Kind}

	if s.Kind == KindSimulate {
		return simulate(s, o, out)
	}

	matrix := s.Matrix
	if matrix == nil {
		matrix = o.Matrix
	}
	g, err := grid.New(matrix)
	if err != nil {
		return Outcome{}, err
	}
	out.Cells = g.Size()

	switch s.Kind {
	case KindZigZag:
		out.Path = turtle.ZigZagSweep(g)
		out.Covered = len(out.Path)
	case KindSpiral:
		out.Path = turtle.SpiralSweep(g, *s.Start)
		out.Covered = len(out.Path)
	case KindRoutes:
		for _, r := range turtle.FindRoutes(g, s.StartValue, s.EndValue) {
			out.Routes = append(out.Routes, RouteSummary{
				Direction: r.Direction.String(),
				From:      r.Coords[0],
				To:        r.Coords[len(r.Coords)-1],
				Values:    r.Values,
				Shortest:  r.IsShortest,
				Longest:   r.IsLongest,
			})
		}
	}

	return out, nil
}

func simulate(s Scenario, o Options, out Outcome) (Outcome, error) {
	line := s.Input
	if line == "" {
		line = o.Input
	}
	in, err := squirrel.ParseInput(line)
	if err != nil {
		return Outcome{}, err
	}
	root, err := in.Tree()
	if err != nil {
		return Outcome{}, err
	}
	ceiling := s.Ceiling
	if ceiling == 0 {
		ceiling = squirrel.DefaultCeiling
	}

	dist, err := squirrel.Simulate(root, in.Walnuts, squirrel.WithCeiling(ceiling))
	if err != nil {
		return Outcome{}, err
	}
	out.Requested = dist.Requested
	out.Saturated = dist.Saturated()
	out.Structure = squirrel.Serialize(dist.Tree)
	out.Trips = make([]string, len(dist.Trips))
	for i, tr := range dist.Trips {
		out.Trips[i] = tr.String()
	}

	if s.Replay {
		run, err := squirrel.NewRun(root, in.Walnuts, squirrel.WithRunCeiling(ceiling))
		if err != nil {
			return Outcome{}, err
		}
		if err = run.Start(); err != nil {
			return Outcome{}, err
		}
		for run.State() == squirrel.Running {
			if _, err = run.Advance(); err != nil {
				return Outcome{}, fmt.Errorf("scenario %q: replay: %w", s.Name, err)
			}
		}
		out.Collected = run.Collected()
	}

	return out, nil
}

// WriteYAML encodes outcomes as a single YAML document.
func WriteYAML(w io.Writer, outcomes []Outcome) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]Outcome{"outcomes": outcomes}); err != nil {
		return fmt.Errorf("scenario: encode: %w", err)
	}

	return enc.Close()
}
