package turtle

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/critters/grid"
)

var (
	// ErrNilGrid is returned when a nil *grid.Grid is passed to NewWalk.
	ErrNilGrid = errors.New("turtle: grid is nil")

	// ErrPathOutOfBounds indicates a walk path leaves the grid.
	ErrPathOutOfBounds = errors.New("turtle: path position out of bounds")
)

// Direction is one of the four cardinal directions.
type Direction byte

const (
	North Direction = 'N' // decreasing row
	East  Direction = 'E' // increasing col
	South Direction = 'S' // increasing row
	West  Direction = 'W' // decreasing col
)

// String returns the single-letter tag.
func (d Direction) String() string { return string(rune(d)) }

// MarshalText encodes the direction as its letter.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte{byte(d)}, nil
}

// UnmarshalText accepts "N", "E", "S" or "W".
func (d *Direction) UnmarshalText(b []byte) error {
	if len(b) == 1 {
		switch v := Direction(b[0]); v {
		case North, East, South, West:
			*d = v
			return nil
		}
	}

	return fmt.Errorf("turtle: unknown direction %q", b)
}

// delta returns the row/col offset of one step in direction d.
func (d Direction) delta() grid.Position {
	switch d {
	case North:
		return grid.Position{Row: -1}
	case East:
		return grid.Position{Col: 1}
	case South:
		return grid.Position{Row: 1}
	default:
		return grid.Position{Col: -1}
	}
}

// Route is one straight-line match from a start-value cell to an end-value cell.
// Coords and Values run from the start cell to the end cell inclusive.
// IsShortest/IsLongest are relative to the FindRoutes call that produced it.
type Route struct {
	Direction  Direction       `json:"direction"`
	Coords     []grid.Position `json:"path_coords"`
	Values     []int           `json:"path_values"`
	IsShortest bool            `json:"is_shortest"`
	IsLongest  bool            `json:"is_longest"`
}

// Len returns the number of cells on the route, both endpoints included.
func (r Route) Len() int { return len(r.Coords) }

// DefaultMatrix is the 6×7 demo board the walks are usually shown on.
var DefaultMatrix = [][]int{
	{7, 2, 0, 1, 0, 2, 9},
	{8, 4, 8, 6, 9, 3, 3},
	{7, 8, 8, 8, 9, 0, 6},
	{4, 7, 2, 7, 0, 0, 7},
	{6, 5, 7, 8, 0, 7, 2},
	{8, 1, 8, 5, 4, 5, 2},
}

// step returns p moved one cell along offset d.
func step(p, d grid.Position) grid.Position {
	return grid.Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}
