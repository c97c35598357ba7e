package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/critters/playback"
	"github.com/katalvlaran/critters/squirrel"
)

// Message types pushed to stream clients.
const (
	MsgHello    = "hello"
	MsgState    = "state"
	MsgStep     = "step"
	MsgFinished = "finished"
	MsgError    = "error"
)

// Commands accepted from stream clients.
const (
	CmdStart  = "start"
	CmdPause  = "pause"
	CmdResume = "resume"
	CmdReset  = "reset"
)

var errUnknownCommand = errors.New("api: unknown command")

// StreamMessage is one server-to-client frame.
type StreamMessage struct {
	Type    string             `json:"type"`
	Session string             `json:"session,omitempty"`
	Event   *squirrel.Event    `json:"event,omitempty"`
	State   *squirrel.Snapshot `json:"state,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// StreamCommand is one client-to-server frame.
type StreamCommand struct {
	Command string `json:"command"`
}

// session binds one WebSocket to one squirrel.Run. Only the read loop
// touches driver; the run is reached through driver.Do once a driver exists.
type session struct {
	id      uuid.UUID
	conn    *websocket.Conn
	writeMu sync.Mutex
	run     *squirrel.Run
	driver  *playback.Driver
	opts    []playback.Option
	log     *zap.SugaredLogger
}

func (h *Handler) upgrader() *websocket.Upgrader {
	u := &websocket.Upgrader{}
	if h.cfg.Server.LocalCORS {
		u.CheckOrigin = func(r *http.Request) bool { return true }
	}

	return u
}

// Stream answers GET /api/squirrel/stream?input=... by upgrading to a
// WebSocket. The input is validated before the upgrade so a bad line is a
// plain 400.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	in, root, err := h.loadTree(r.URL.Query().Get("input"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	id := uuid.New()
	log := h.log.With("session", id.String())
	run, err := squirrel.NewRun(root, in.Walnuts,
		squirrel.WithRunCeiling(h.cfg.Squirrel.Ceiling),
		squirrel.WithLogger(log.Desugar()))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	conn, err := h.upgrader().Upgrade(w, r, nil)
	if err != nil {
		log.Warnw("upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s := &session{
		id:   id,
		conn: conn,
		run:  run,
		opts: []playback.Option{
			playback.WithInterval(h.cfg.Squirrel.StepDelay),
			playback.WithLogger(log.Desugar()),
		},
		log: log,
	}
	log.Infow("stream opened", "walnuts", in.Walnuts, "structure", squirrel.Serialize(root))

	// the read loop's exit cancels every driver
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	eg, egCtx := errgroup.WithContext(ctx)

	snap := run.Snapshot()
	s.send(StreamMessage{Type: MsgHello, Session: id.String(), State: &snap})

	eg.Go(func() error {
		<-egCtx.Done()
		_ = conn.Close()
		return nil
	})
	eg.Go(func() error {
		defer cancel()
		return s.readLoop(egCtx, eg)
	})

	if err = eg.Wait(); err != nil {
		log.Debugw("stream closed", "error", err)
		return
	}
	log.Infow("stream closed")
}

func (s *session) readLoop(ctx context.Context, eg *errgroup.Group) error {
	for {
		var cmd StreamCommand
		if err := s.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		s.handle(ctx, eg, cmd.Command)
	}
}

// handle applies one command and reports the resulting state or error.
func (s *session) handle(ctx context.Context, eg *errgroup.Group, command string) {
	var (
		err  error
		snap squirrel.Snapshot
	)
	switch command {
	case CmdStart:
		s.locked(func() {
			err = s.run.Start()
			snap = s.run.Snapshot()
		})
		if err != nil {
			break
		}
		// state goes out before the driver can push its first step
		s.send(StreamMessage{Type: MsgState, State: &snap})
		if snap.State == squirrel.Finished {
			s.send(StreamMessage{Type: MsgFinished, State: &snap})
			return
		}
		if err = s.play(ctx, eg); err == nil {
			return
		}
	case CmdPause:
		s.locked(func() {
			err = s.run.Pause()
			snap = s.run.Snapshot()
		})
	case CmdResume:
		s.locked(func() {
			err = s.run.Resume()
			snap = s.run.Snapshot()
		})
	case CmdReset:
		if s.driver != nil {
			s.driver.Stop()
			s.driver = nil
		}
		s.run.Reset()
		snap = s.run.Snapshot()
	default:
		err = fmt.Errorf("%w: %q", errUnknownCommand, command)
	}

	if err != nil {
		s.log.Infow("command rejected", "command", command, "error", err)
		s.send(StreamMessage{Type: MsgError, Error: err.Error()})
		return
	}
	s.send(StreamMessage{Type: MsgState, State: &snap})
}

// play starts a driver for the current run.
func (s *session) play(ctx context.Context, eg *errgroup.Group) error {
	d, err := playback.New(s, s.opts...)
	if err != nil {
		return err
	}
	s.driver = d
	eg.Go(func() error {
		if err := d.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.send(StreamMessage{Type: MsgError, Error: err.Error()})
		}
		return nil
	})

	return nil
}

// locked runs fn under the driver's lock, if there is a driver.
func (s *session) locked(fn func()) {
	if s.driver != nil {
		s.driver.Do(fn)
		return
	}
	fn()
}

// Step advances the run and pushes the event; called by the driver.
func (s *session) Step() (bool, error) {
	if s.run.State() != squirrel.Running {
		return s.run.Step()
	}
	ev, err := s.run.Advance()
	if err != nil {
		return false, err
	}
	snap := s.run.Snapshot()
	s.send(StreamMessage{Type: MsgStep, Event: &ev, State: &snap})
	if snap.State != squirrel.Finished {
		return false, nil
	}
	s.send(StreamMessage{Type: MsgFinished, State: &snap})

	return true, nil
}

func (s *session) send(msg StreamMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(msg); err != nil {
		s.log.Debugw("write failed", "type", msg.Type, "error", err)
	}
}
