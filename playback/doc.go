// Package playback paces a step-wise replay on a fixed interval.
//
// What:
//
//   - Stepper is anything that advances by one step and reports completion;
//     *turtle.Walk and *squirrel.Run both satisfy it.
//   - Driver calls Step on every tick of a time.Ticker from the goroutine
//     running Run, until the stepper is done, Stop is called, the context is
//     cancelled, or a step fails.
//   - Do runs a function under the same lock that guards each Step, so
//     commands such as pause, resume or reset never interleave with a step.
//
// Why:
//
//   - The replay cores are synchronous cursors. Keeping the clock here lets
//     tests drive them without timers and lets several front ends (CLI, TUI,
//     WebSocket) share one pacing loop.
//
// Guarantees:
//
//   - No step is half-applied: Step always runs to completion under the lock.
//   - After Stop returns, no further Step begins.
//   - Pausing is the stepper's business. A paused stepper reports not done
//     and the driver keeps ticking until it resumes or is stopped.
//
// Errors:
//
//   - ErrNilStepper:   New was given a nil stepper.
//   - ErrBadInterval:  the tick interval is not positive.
package playback
