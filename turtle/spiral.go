package turtle

import "github.com/katalvlaran/critters/grid"

// clockwise lists the heading offsets in turn order: East, South, West, North.
var clockwise = [4]grid.Position{
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: -1, Col: 0},
}

const (
	headingWest  = 2
	headingNorth = 3
)

// spiralWalker holds the mutable state of one SpiralSweep.
type spiralWalker struct {
	grid      *grid.Grid
	start     grid.Position
	cur       grid.Position
	dir       int  // index into clockwise
	turns     int  // turns taken so far; only meaningful during the first loop
	firstLoop bool // true until four turns have been made
	visited   []bool
	path      []grid.Position
}

// SpiralSweep walks the grid in a clockwise inward spiral starting at start.
//
// Behavior:
//  1. Out-of-bounds start (or nil grid) → empty path.
//  2. Heading cycles East → South → West → North; a turn happens when the
//     next cell is outside the grid or already visited.
//  3. During the first loop (fewer than four turns) the ring is closed early:
//     heading West after the second turn, a turn North is forced
//     – when start.Row > start.Col, on reaching start.Col;
//     – when start.Col > start.Row, on reaching start.Row;
//     – when they are equal, one cell earlier, at (start.Row-1, start.Col).
//     Heading North after the third turn, a turn East is forced when the next
//     step would land on (start.Row, start.Col-1).
//  4. If the cell after a turn is still blocked, all four headings are probed
//     from the current cell; when none is free the walk ends early.
//
// The result never repeats a cell. It covers the whole grid when the start is
// a corner; from other starts the walk may end before full coverage.
// Complexity: O(R×C) time and memory.
func SpiralSweep(g *grid.Grid, start grid.Position) []grid.Position {
	if g == nil || !g.InBounds(start) {
		return []grid.Position{}
	}
	w := &spiralWalker{
		grid:      g,
		start:     start,
		cur:       start,
		firstLoop: true,
		visited:   make([]bool, g.Size()),
		path:      make([]grid.Position, 0, g.Size()),
	}
	w.visit(start)

	for len(w.path) < g.Size() {
		if !w.advance() {
			break
		}
	}

	return w.path
}

// advance makes one move. It returns false when no neighbour is free.
func (w *spiralWalker) advance() bool {
	next := step(w.cur, clockwise[w.dir])

	turn := w.forcedTurn(next)
	if !turn && !w.free(next) {
		turn = true
	}
	if turn {
		w.dir = (w.dir + 1) % 4
		w.turns++
		if w.turns >= 4 {
			w.firstLoop = false
		}
		next = step(w.cur, clockwise[w.dir])
	}
	if w.free(next) {
		w.visit(next)
		return true
	}

	// dead end: rotate through every heading once
	for attempts := 0; attempts < 4; attempts++ {
		w.dir = (w.dir + 1) % 4
		next = step(w.cur, clockwise[w.dir])
		if w.free(next) {
			w.visit(next)
			return true
		}
	}

	return false
}

// forcedTurn applies the first-loop closing rules.
func (w *spiralWalker) forcedTurn(next grid.Position) bool {
	if !w.firstLoop {
		return false
	}
	s := w.start
	switch {
	case w.turns == 2 && w.dir == headingWest:
		switch {
		case s.Row > s.Col:
			return w.cur.Col == s.Col
		case s.Col > s.Row:
			return w.cur.Row == s.Row
		default:
			return w.cur.Row == s.Row-1 && w.cur.Col == s.Col
		}
	case w.turns == 3 && w.dir == headingNorth:
		return next.Row == s.Row && next.Col == s.Col-1
	}

	return false
}

func (w *spiralWalker) free(p grid.Position) bool {
	return w.grid.InBounds(p) && !w.visited[w.grid.Key(p)]
}

func (w *spiralWalker) visit(p grid.Position) {
	w.cur = p
	w.visited[w.grid.Key(p)] = true
	w.path = append(w.path, p)
}
