package squirrel_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/critters/squirrel"
)

// RunSuite drives a two-hole tree (B and C, capacity 3) with four units:
// four trips of three steps each.
type RunSuite struct {
	suite.Suite
	template *squirrel.Node
	run      *squirrel.Run
}

func (s *RunSuite) SetupTest() {
	root, err := squirrel.Parse("AB)C)", 3)
	s.Require().NoError(err)
	s.template = root

	s.run, err = squirrel.NewRun(root, 4)
	s.Require().NoError(err)
}

// drain advances until the run finishes and returns the events.
func (s *RunSuite) drain() []squirrel.Event {
	var events []squirrel.Event
	for s.run.State() == squirrel.Running {
		ev, err := s.run.Advance()
		s.Require().NoError(err)
		events = append(events, ev)
	}

	return events
}

func (s *RunSuite) TestIdle() {
	s.Equal(squirrel.Idle, s.run.State())
	s.Empty(s.run.Trips())

	_, err := s.run.Advance()
	s.ErrorIs(err, squirrel.ErrNotStarted)

	done, err := s.run.Step()
	s.NoError(err)
	s.True(done)
	s.ErrorIs(s.run.Pause(), squirrel.ErrNotRunning)
	s.ErrorIs(s.run.Resume(), squirrel.ErrNotPaused)
}

func (s *RunSuite) TestFullReplay() {
	s.Require().NoError(s.run.Start())
	s.Equal(squirrel.Running, s.run.State())
	s.ErrorIs(s.run.Start(), squirrel.ErrAlreadyStarted)

	tree := s.run.Tree()
	s.Equal(2, tree.Children[0].Stored)
	s.Equal(2, tree.Children[1].Stored)
	s.Len(s.run.Trips(), 4)

	events := s.drain()
	s.Len(events, 12)
	s.Equal(squirrel.Finished, s.run.State())
	s.Equal(4, s.run.Collected())
	s.Zero(squirrel.TotalStored(s.run.Tree()))
	s.Equal(uuid.Nil, s.run.Position())

	// first trip: move to B, pick up at B, drop at A
	b, a := s.run.Tree().Children[0], s.run.Tree()
	s.Equal(squirrel.StepMove, events[0].Step.Kind)
	s.Equal(b.UID, events[0].Node)
	s.Equal(squirrel.StepPickup, events[1].Step.Kind)
	s.Equal(squirrel.StepDrop, events[2].Step.Kind)
	s.Equal(a.UID, events[2].Node)
	s.Equal(1, events[3].TripIndex)
	s.Equal("AC", events[3].Step.Path)

	_, err := s.run.Advance()
	s.ErrorIs(err, squirrel.ErrFinished)
	done, err := s.run.Step()
	s.NoError(err)
	s.True(done)
}

func (s *RunSuite) TestPauseResume() {
	s.Require().NoError(s.run.Start())

	_, err := s.run.Advance() // move AB
	s.Require().NoError(err)
	_, err = s.run.Advance() // pickup AB
	s.Require().NoError(err)
	s.Equal(s.run.Tree().Children[0].UID, s.run.Position())
	s.Equal(1, s.run.Tree().Children[0].Stored)

	s.Require().NoError(s.run.Pause())
	s.Equal(squirrel.Paused, s.run.State())
	s.ErrorIs(s.run.Pause(), squirrel.ErrNotRunning)

	_, err = s.run.Advance()
	s.ErrorIs(err, squirrel.ErrPaused)
	done, err := s.run.Step()
	s.NoError(err)
	s.False(done)

	trip, step := s.run.Cursor()
	s.Equal(0, trip)
	s.Equal(2, step)
	s.Zero(s.run.Collected())

	s.Require().NoError(s.run.Resume())
	s.ErrorIs(s.run.Resume(), squirrel.ErrNotPaused)
	ev, err := s.run.Advance()
	s.Require().NoError(err)
	s.Equal(squirrel.StepDrop, ev.Step.Kind)
	s.Equal(1, s.run.Collected())
}

func (s *RunSuite) TestResetRestoresTemplate() {
	s.Require().NoError(s.run.Start())
	first := s.run.Trips()
	for i := 0; i < 5; i++ {
		_, err := s.run.Advance()
		s.Require().NoError(err)
	}
	s.Require().NoError(s.run.Pause())

	s.run.Reset()
	s.Equal(squirrel.Idle, s.run.State())
	s.Zero(squirrel.TotalStored(s.run.Tree()))
	s.Zero(s.run.Collected())
	s.Empty(s.run.Trips())
	trip, step := s.run.Cursor()
	s.Zero(trip)
	s.Zero(step)

	// a restarted run is identical
	s.Require().NoError(s.run.Start())
	s.Equal(first, s.run.Trips())
	s.Len(s.drain(), 12)

	s.run.Reset()
	s.Equal(squirrel.Idle, s.run.State())
}

func (s *RunSuite) TestTemplateIsolation() {
	s.Require().NoError(s.run.Start())
	s.drain()
	s.Zero(squirrel.TotalStored(s.template))

	// later edits to the caller's tree do not reach the run
	s.template.Children = nil
	s.run.Reset()
	s.Equal("AB)C)", squirrel.Serialize(s.run.Tree()))
}

func (s *RunSuite) TestEmptyNodeLeavesState() {
	s.Require().NoError(s.run.Start())
	b := s.run.Tree().Children[0]
	b.Stored = 0

	_, err := s.run.Advance() // move AB
	s.Require().NoError(err)
	_, err = s.run.Advance() // pickup AB
	s.ErrorIs(err, squirrel.ErrEmptyNode)
	s.Zero(b.Stored)

	trip, step := s.run.Cursor()
	s.Equal(0, trip)
	s.Equal(1, step)
	s.Equal(squirrel.Running, s.run.State())
}

func TestRunSuite(t *testing.T) {
	suite.Run(t, new(RunSuite))
}

func TestRun_HookErrorIsRetryable(t *testing.T) {
	root := mustParse(t, "AB)", 2)
	boom := errors.New("boom")
	fail := true
	run, err := squirrel.NewRun(root, 1, squirrel.WithOnStep(func(ev squirrel.Event) error {
		if ev.Step.Kind == squirrel.StepPickup && fail {
			return boom
		}
		return nil
	}))
	require.NoError(t, err)
	require.NoError(t, run.Start())

	_, err = run.Advance()
	require.NoError(t, err)
	_, err = run.Advance()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, run.Tree().Children[0].Stored)

	fail = false
	ev, err := run.Advance()
	require.NoError(t, err)
	assert.Equal(t, squirrel.StepPickup, ev.Step.Kind)
	assert.Zero(t, run.Tree().Children[0].Stored)
}

// TestRun_RepeatedIdentifiers: both holes are named B; each trip must empty
// its own hole.
func TestRun_RepeatedIdentifiers(t *testing.T) {
	root := mustParse(t, "AB)B)", 1)
	run, err := squirrel.NewRun(root, 2)
	require.NoError(t, err)
	require.NoError(t, run.Start())

	for run.State() == squirrel.Running {
		_, err = run.Advance()
		require.NoError(t, err)
	}
	assert.Equal(t, 2, run.Collected())
	assert.Zero(t, squirrel.TotalStored(run.Tree()))
}

func TestRun_NothingToPlace(t *testing.T) {
	run, err := squirrel.NewRun(mustParse(t, "A", 3), 5)
	require.NoError(t, err)
	require.NoError(t, run.Start())
	assert.Equal(t, squirrel.Finished, run.State())

	done, err := run.Step()
	require.NoError(t, err)
	assert.True(t, done)
}

func TestRun_StepUntilDone(t *testing.T) {
	run, err := squirrel.NewRun(mustParse(t, "ABC))", 1), 2)
	require.NoError(t, err)
	require.NoError(t, run.Start())

	steps := 0
	for {
		done, err := run.Step()
		require.NoError(t, err)
		steps++
		if done {
			break
		}
	}
	// AB: move, pickup, drop. ABC: move, move, pickup, move, drop.
	assert.Equal(t, 8, steps)
	assert.Equal(t, 2, run.Collected())
}

func TestNewRun_Errors(t *testing.T) {
	_, err := squirrel.NewRun(nil, 1)
	assert.ErrorIs(t, err, squirrel.ErrNilTree)

	root := mustParse(t, "AB)", 1)
	_, err = squirrel.NewRun(root, -2)
	assert.ErrorIs(t, err, squirrel.ErrNegativeUnits)

	_, err = squirrel.NewRun(root, 1, squirrel.WithRunCeiling(-1))
	assert.ErrorIs(t, err, squirrel.ErrInvalidCeiling)
}

func TestRun_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	run, err := squirrel.NewRun(mustParse(t, "AB)", 1), 1, squirrel.WithLogger(zap.New(core)))
	require.NoError(t, err)
	require.NoError(t, run.Start())
	for run.State() == squirrel.Running {
		_, err = run.Advance()
		require.NoError(t, err)
	}

	assert.Equal(t, 1, logs.FilterMessage("run started").Len())
	assert.Equal(t, 1, logs.FilterMessage("unit stored").Len())
	finished := logs.FilterMessage("run finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, int64(1), finished[0].ContextMap()["collected"])
}

func TestRun_Snapshot(t *testing.T) {
	run, err := squirrel.NewRun(mustParse(t, "AB)", 2), 2)
	require.NoError(t, err)
	require.NoError(t, run.Start())

	snap := run.Snapshot()
	assert.Equal(t, squirrel.Running, snap.State)
	assert.Equal(t, 2, snap.Trips)
	snap.Tree.Children[0].Stored = 0
	assert.Equal(t, 2, run.Tree().Children[0].Stored, "snapshot tree is a copy")

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"state":"running"`)
	assert.Equal(t, "paused", squirrel.Paused.String())

	var back squirrel.Snapshot
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, squirrel.Running, back.State)

	var bad squirrel.State
	assert.Error(t, bad.UnmarshalText([]byte("sleeping")))
}
