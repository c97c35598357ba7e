package squirrel

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the lifecycle stage of a Run.
type State int

const (
	Idle State = iota
	Running
	Paused
	Finished
)

var stateNames = [...]string{"idle", "running", "paused", "finished"}

// String returns the lower-case state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}

	return stateNames[s]
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a state name produced by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}

	return fmt.Errorf("squirrel: unknown state %q", text)
}

// Event describes a step about to be applied by Run.Advance.
type Event struct {
	TripIndex int       `json:"trip_index"`
	StepIndex int       `json:"step_index"`
	Trip      Trip      `json:"trip"`
	Step      Step      `json:"step"`
	Node      uuid.UUID `json:"node"`
}

// RunOption configures a Run.
type RunOption func(*Run)

// WithOnStep installs a hook called after a step is validated and before it
// is applied. A non-nil error leaves the step unapplied and is returned by
// Advance; the cursor does not move, so the same step can be retried.
func WithOnStep(fn func(Event) error) RunOption {
	return func(r *Run) {
		r.onStep = fn
	}
}

// WithLogger sets the logger; nil keeps the no-op default.
func WithLogger(l *zap.Logger) RunOption {
	return func(r *Run) {
		if l != nil {
			r.log = l
		}
	}
}

// WithRunCeiling passes a ceiling through to Simulate when the run starts.
func WithRunCeiling(n int) RunOption {
	return func(r *Run) {
		r.ceiling = n
	}
}

// Run replays a simulation step by step.
//
// Lifecycle: Idle → Start → Running → (Pause → Paused → Resume → Running)* →
// Finished. Reset returns to Idle from any state and restores the template.
// The cursor is (trip index, step index) into the precomputed trips, so a
// paused run resumes exactly at the next unapplied step.
//
// A Run is not safe for concurrent use; see playback.Driver for serialised
// access from a ticker goroutine.
type Run struct {
	template *Node
	units    int
	ceiling  int

	state     State
	tree      *Node
	trips     []Trip
	steps     []Step
	trip      int
	step      int
	collected int
	position  uuid.UUID

	onStep func(Event) error
	log    *zap.Logger
}

// NewRun prepares a run of units over a private copy of template.
// Returns ErrNilTree or ErrNegativeUnits.
func NewRun(template *Node, units int, opts ...RunOption) (*Run, error) {
	if template == nil {
		return nil, ErrNilTree
	}
	if units < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeUnits, units)
	}
	r := &Run{
		template: template.Clone(),
		units:    units,
		ceiling:  DefaultCeiling,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.ceiling <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCeiling, r.ceiling)
	}
	r.tree = r.template.Clone()

	return r, nil
}

// Start simulates the distribution and moves to Running, or straight to
// Finished when no unit could be placed. Only valid from Idle.
func (r *Run) Start() error {
	if r.state != Idle {
		return fmt.Errorf("%w: state %s", ErrAlreadyStarted, r.state)
	}
	dist, err := Simulate(r.template, r.units, WithCeiling(r.ceiling))
	if err != nil {
		return fmt.Errorf("squirrel: start: %w", err)
	}
	r.tree = dist.Tree
	r.trips = dist.Trips
	r.trip, r.step = 0, 0
	r.log.Info("run started",
		zap.Int("requested", dist.Requested),
		zap.Int("placed", dist.Placed()),
		zap.String("structure", Serialize(r.tree)))

	if len(r.trips) == 0 {
		r.state = Finished
		r.log.Info("no units stored")
		return nil
	}
	r.steps = Expand(r.trips[0])
	r.state = Running

	return nil
}

// Advance applies exactly one step and returns its Event.
// Returns ErrNotStarted, ErrPaused or ErrFinished when the state forbids it.
// If the step cannot be applied (ErrNodeNotFound, ErrEmptyNode or a hook
// error) nothing changes and the error is returned.
func (r *Run) Advance() (Event, error) {
	switch r.state {
	case Idle:
		return Event{}, ErrNotStarted
	case Paused:
		return Event{}, ErrPaused
	case Finished:
		return Event{}, ErrFinished
	}

	// 1) resolve and validate
	trip := r.trips[r.trip]
	st := r.steps[r.step]
	node, err := r.resolve(trip, st)
	if err != nil {
		return Event{}, err
	}
	if st.Kind == StepPickup && node.Stored == 0 {
		return Event{}, fmt.Errorf("%w: %q", ErrEmptyNode, st.Path)
	}
	ev := Event{TripIndex: r.trip, StepIndex: r.step, Trip: trip, Step: st, Node: node.UID}

	// 2) hook
	if r.onStep != nil {
		if err = r.onStep(ev); err != nil {
			return Event{}, fmt.Errorf("squirrel: OnStep hook at trip %s step %d: %w", trip, r.step, err)
		}
	}

	// 3) apply
	switch st.Kind {
	case StepPickup:
		node.Stored--
	case StepDrop:
		r.collected++
		r.log.Debug("unit stored", zap.Stringer("trip", trip), zap.Int("collected", r.collected))
	}
	r.position = node.UID

	// 4) move the cursor
	r.step++
	if r.step < len(r.steps) {
		return ev, nil
	}
	r.trip++
	r.step = 0
	if r.trip < len(r.trips) {
		r.steps = Expand(r.trips[r.trip])
		return ev, nil
	}
	r.steps = nil
	r.state = Finished
	r.position = uuid.Nil
	r.log.Info("run finished", zap.Int("collected", r.collected))

	return ev, nil
}

// resolve finds the node a step acts on. Trips carrying a Target are resolved
// through the target's ancestor chain, so repeated identifiers cannot
// misdirect a step; otherwise the path is looked up.
func (r *Run) resolve(trip Trip, st Step) (*Node, error) {
	if trip.Target != uuid.Nil {
		if target := r.tree.FindByUID(trip.Target); target != nil {
			n := target
			for up := len(trip.Path) - len(st.Path); up > 0 && n != nil; up-- {
				n = n.parent
			}
			if n != nil {
				return n, nil
			}
		}
	} else if n := r.tree.FindByPath(st.Path); n != nil {
		return n, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, st.Path)
}

// Step is the playback form of Advance. Idle and Finished runs report done,
// a paused run reports not done and applies nothing.
func (r *Run) Step() (done bool, err error) {
	switch r.state {
	case Idle, Finished:
		return true, nil
	case Paused:
		return false, nil
	}
	if _, err = r.Advance(); err != nil {
		return false, err
	}

	return r.state == Finished, nil
}

// Pause freezes the cursor. Only valid while Running.
func (r *Run) Pause() error {
	if r.state != Running {
		return fmt.Errorf("%w: state %s", ErrNotRunning, r.state)
	}
	r.state = Paused
	r.log.Debug("run paused", zap.Int("trip", r.trip), zap.Int("step", r.step))

	return nil
}

// Resume continues from the next unapplied step. Only valid while Paused.
func (r *Run) Resume() error {
	if r.state != Paused {
		return fmt.Errorf("%w: state %s", ErrNotPaused, r.state)
	}
	r.state = Running
	r.log.Debug("run resumed", zap.Int("trip", r.trip), zap.Int("step", r.step))

	return nil
}

// Reset discards the cursor and restores a fresh copy of the template.
// Valid in every state.
func (r *Run) Reset() {
	r.state = Idle
	r.tree = r.template.Clone()
	r.trips, r.steps = nil, nil
	r.trip, r.step = 0, 0
	r.collected = 0
	r.position = uuid.Nil
	r.log.Info("run reset")
}

// State returns the current lifecycle stage.
func (r *Run) State() State { return r.state }

// Tree returns the live working tree. Callers must not modify it.
func (r *Run) Tree() *Node { return r.tree }

// Position returns the UID of the node the forager stands on, uuid.Nil when
// it is off the tree.
func (r *Run) Position() uuid.UUID { return r.position }

// Collected returns the number of units dropped at the root so far.
func (r *Run) Collected() int { return r.collected }

// Trips returns a copy of the simulated trips; empty before Start.
func (r *Run) Trips() []Trip { return append([]Trip(nil), r.trips...) }

// Cursor returns the index of the current trip and of its next step.
func (r *Run) Cursor() (trip, step int) { return r.trip, r.step }

// Snapshot is a detached copy of a Run's observable state.
type Snapshot struct {
	State     State     `json:"state"`
	Tree      *Node     `json:"tree"`
	Position  uuid.UUID `json:"position"`
	Collected int       `json:"collected"`
	TripIndex int       `json:"trip_index"`
	StepIndex int       `json:"step_index"`
	Trips     int       `json:"trips"`
}

// Snapshot copies the current state, tree included.
func (r *Run) Snapshot() Snapshot {
	return Snapshot{
		State:     r.state,
		Tree:      r.tree.Clone(),
		Position:  r.position,
		Collected: r.collected,
		TripIndex: r.trip,
		StepIndex: r.step,
		Trips:     len(r.trips),
	}
}
