package squirrel

import "errors"

// Tree grammar.
var (
	// ErrFormat indicates a tree string that is empty, does not start with a
	// letter, or contains something other than letters and ')'.
	ErrFormat = errors.New("squirrel: malformed tree string")
	// ErrStructure indicates more ')' markers than open nodes.
	ErrStructure = errors.New("squirrel: close marker without an open node")
)

// Raw input line.
var (
	ErrInputFormat     = errors.New("squirrel: input must be \"walnuts,capacity,structure\"")
	ErrInvalidWalnuts  = errors.New("squirrel: walnuts must be a non-negative integer")
	ErrInvalidCapacity = errors.New("squirrel: capacity must be a positive integer")
)

// Simulation arguments.
var (
	ErrNilTree        = errors.New("squirrel: tree is nil")
	ErrNegativeUnits  = errors.New("squirrel: unit count must not be negative")
	ErrInvalidCeiling = errors.New("squirrel: ceiling must be positive")
	ErrTripFormat     = errors.New("squirrel: malformed trip token")
)

// Run state machine.
var (
	ErrNotStarted     = errors.New("squirrel: run not started")
	ErrAlreadyStarted = errors.New("squirrel: run already started")
	ErrPaused         = errors.New("squirrel: run is paused")
	ErrFinished       = errors.New("squirrel: run is finished")
	ErrNotRunning     = errors.New("squirrel: run is not running")
	ErrNotPaused      = errors.New("squirrel: run is not paused")
	ErrNodeNotFound   = errors.New("squirrel: node not found")
	ErrEmptyNode      = errors.New("squirrel: node holds no units")
)

// Builder policy.
var (
	ErrDepthLimit    = errors.New("squirrel: tree depth limit exceeded")
	ErrCapacityRange = errors.New("squirrel: capacity outside allowed range")
	ErrInvalidID     = errors.New("squirrel: identifier must be a single letter")
	ErrRemoveRoot    = errors.New("squirrel: root cannot be removed")
	ErrTooManyUnits  = errors.New("squirrel: more units than the tree can hold")
)
