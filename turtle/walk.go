package turtle

import (
	"fmt"

	"github.com/katalvlaran/critters/grid"
)

// WalkStep describes one cell entered by a Walk.
type WalkStep struct {
	Index    int           `json:"index"`
	Position grid.Position `json:"position"`
	Value    int           `json:"value"`
}

// WalkOption configures a Walk.
type WalkOption func(*Walk)

// WithOnStep installs a hook called before each cell is entered.
// Returning an error aborts that Step; the cell is not marked visited.
func WithOnStep(fn func(WalkStep) error) WalkOption {
	return func(w *Walk) {
		w.onStep = fn
	}
}

// Walk replays a precomputed path one cell at a time, tracking the visited set.
// It is not safe for concurrent use; drive it from a single goroutine.
type Walk struct {
	grid    *grid.Grid
	path    []grid.Position
	next    int
	visited map[int]struct{}
	onStep  func(WalkStep) error
}

// NewWalk prepares a replay of path over g.
// Returns ErrNilGrid or ErrPathOutOfBounds for invalid input.
func NewWalk(g *grid.Grid, path []grid.Position, opts ...WalkOption) (*Walk, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	for i, p := range path {
		if !g.InBounds(p) {
			return nil, fmt.Errorf("%w: step %d at %s", ErrPathOutOfBounds, i, p)
		}
	}
	w := &Walk{
		grid:    g,
		path:    append([]grid.Position(nil), path...),
		visited: make(map[int]struct{}, len(path)),
	}
	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Step enters the next cell. It reports done once the path is exhausted.
func (w *Walk) Step() (done bool, err error) {
	if w.next >= len(w.path) {
		return true, nil
	}
	p := w.path[w.next]
	ws := WalkStep{Index: w.next, Position: p, Value: w.grid.Value(p)}
	if w.onStep != nil {
		if err = w.onStep(ws); err != nil {
			return false, fmt.Errorf("turtle: OnStep hook at %s: %w", p, err)
		}
	}
	w.visited[w.grid.Key(p)] = struct{}{}
	w.next++

	return w.next >= len(w.path), nil
}

// Current returns the last entered cell, or false before the first Step.
func (w *Walk) Current() (grid.Position, bool) {
	if w.next == 0 {
		return grid.Position{}, false
	}

	return w.path[w.next-1], true
}

// Visited reports whether p has been entered.
func (w *Walk) Visited(p grid.Position) bool {
	if !w.grid.InBounds(p) {
		return false
	}
	_, ok := w.visited[w.grid.Key(p)]

	return ok
}

// Done reports whether every cell of the path has been entered.
func (w *Walk) Done() bool { return w.next >= len(w.path) }

// Len returns the path length.
func (w *Walk) Len() int { return len(w.path) }

// Progress returns the number of cells entered so far.
func (w *Walk) Progress() int { return w.next }

// Reset rewinds the walk to before its first cell.
func (w *Walk) Reset() {
	w.next = 0
	w.visited = make(map[int]struct{}, len(w.path))
}
