package grid

import "fmt"

// Position is a cell coordinate: Row grows downwards, Col grows to the right.
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// String renders the position as "(row,col)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Grid is a rectangular matrix of integers. It is immutable once built.
type Grid struct {
	rows, cols int
	cells      [][]int
}

// New constructs a Grid from a non-empty, rectangular 2D slice.
// It deep-copies the input so later changes to values do not leak in.
// Returns ErrEmptyGrid if values has no rows or no columns,
// ErrNonRectangular if any row length differs from the first.
// Complexity: O(R×C) time and memory.
func New(values [][]int) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(values), len(values[0])
	for r, row := range values {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNonRectangular, r, len(row), cols)
		}
	}
	cells := make([][]int, rows)
	for r := 0; r < rows; r++ {
		cells[r] = make([]int, cols)
		copy(cells[r], values[r])
	}

	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

// MustNew is like New but panics on invalid input. Intended for fixtures.
func MustNew(values [][]int) *Grid {
	g, err := New(values)
	if err != nil {
		panic(err)
	}

	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns Rows()*Cols().
func (g *Grid) Size() int { return g.rows * g.cols }

// InBounds reports whether p lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Value returns the value at p. The caller must ensure InBounds(p).
func (g *Grid) Value(p Position) int {
	return g.cells[p.Row][p.Col]
}

// At returns the value at p or ErrOutOfBounds.
func (g *Grid) At(p Position) (int, error) {
	if !g.InBounds(p) {
		return 0, fmt.Errorf("%w: %s in %dx%d", ErrOutOfBounds, p, g.rows, g.cols)
	}

	return g.cells[p.Row][p.Col], nil
}

// Key maps p to its row-major index: Row*Cols + Col.
// Complexity: O(1).
func (g *Grid) Key(p Position) int {
	return p.Row*g.cols + p.Col
}

// Position converts a row-major index back to a Position.
// Complexity: O(1).
func (g *Grid) Position(key int) Position {
	return Position{Row: key / g.cols, Col: key % g.cols}
}

// Values returns a deep copy of the underlying matrix.
func (g *Grid) Values() [][]int {
	out := make([][]int, g.rows)
	for r := range g.cells {
		out[r] = append([]int(nil), g.cells[r]...)
	}

	return out
}
