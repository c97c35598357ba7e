package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval is the pause between two steps.
const DefaultInterval = 500 * time.Millisecond

var (
	// ErrNilStepper is returned by New for a nil stepper.
	ErrNilStepper = errors.New("playback: stepper is nil")
	// ErrBadInterval is returned by New for a non-positive interval.
	ErrBadInterval = errors.New("playback: interval must be positive")
)

// Stepper advances a replay by one step.
type Stepper interface {
	Step() (done bool, err error)
}

// Options configures a Driver.
type Options struct {
	// Interval between two steps.
	Interval time.Duration
	// AfterStep, if set, is called under the driver lock after every step
	// with its result. It must not call Do or Stop.
	AfterStep func(done bool, err error)
	// Logger receives lifecycle events.
	Logger *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns DefaultInterval, no hook and a no-op logger.
func DefaultOptions() Options {
	return Options{Interval: DefaultInterval, Logger: zap.NewNop()}
}

// WithInterval sets the tick interval.
func WithInterval(d time.Duration) Option {
	return func(o *Options) { o.Interval = d }
}

// WithAfterStep installs the per-step hook.
func WithAfterStep(fn func(done bool, err error)) Option {
	return func(o *Options) { o.AfterStep = fn }
}

// WithLogger sets the logger; nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Driver paces a Stepper. Create with New; Run may be called once.
type Driver struct {
	mu      sync.Mutex
	stepper Stepper
	opts    Options
	steps   int

	stop     chan struct{}
	stopOnce sync.Once
}

// New builds a Driver for s.
func New(s Stepper, opts ...Option) (*Driver, error) {
	if s == nil {
		return nil, ErrNilStepper
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Interval <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrBadInterval, o.Interval)
	}

	return &Driver{stepper: s, opts: o, stop: make(chan struct{})}, nil
}

// Run steps on every tick and blocks until the stepper is done (nil), Stop is
// called (nil), ctx ends (ctx.Err()) or a step fails (that error).
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.opts.Interval)
	defer ticker.Stop()
	d.opts.Logger.Debug("playback started", zap.Duration("interval", d.opts.Interval))

	for {
		select {
		case <-ctx.Done():
			d.opts.Logger.Debug("playback cancelled", zap.Int("steps", d.Steps()))
			return ctx.Err()
		case <-d.stop:
			d.opts.Logger.Debug("playback stopped", zap.Int("steps", d.Steps()))
			return nil
		case <-ticker.C:
			done, err := d.step()
			if err != nil {
				d.opts.Logger.Warn("playback step failed", zap.Error(err))
				return fmt.Errorf("playback: step %d: %w", d.Steps()+1, err)
			}
			if done {
				d.opts.Logger.Debug("playback done", zap.Int("steps", d.Steps()))
				return nil
			}
		}
	}
}

func (d *Driver) step() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// a tick that raced with Stop must not step
	select {
	case <-d.stop:
		return true, nil
	default:
	}

	done, err := d.stepper.Step()
	if err == nil {
		d.steps++
	}
	if d.opts.AfterStep != nil {
		d.opts.AfterStep(done, err)
	}

	return done, err
}

// Do runs fn while no step is in progress.
func (d *Driver) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
}

// Stop ends Run. It is idempotent and safe from any goroutine; once it
// returns no further step begins.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		close(d.stop)
		d.mu.Unlock()
	})
}

// Steps returns how many ticks called Step without error, paused ticks included.
func (d *Driver) Steps() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.steps
}
