// Package turtle walks a grid.Grid: full-coverage sweeps and straight-line
// route search between two cell values.
//
// What:
//
//   - ZigZagSweep: column-major sweep, even columns top→bottom, odd columns bottom→top.
//   - SpiralSweep: clockwise inward spiral starting from any in-bounds cell.
//   - FindRoutes:  every straight N/E/S/W ray from a start-value cell to an
//     end-value cell, tagged shortest/longest across the whole result.
//   - Walk:        a replay cursor that visits a computed path one cell per Step.
//
// Why:
//
//   - The walks feed a cell-by-cell animation; they are pure functions over an
//     immutable grid so the same grid can be swept from many call sites at once.
//
// Degenerate input is never an error here: a nil grid, an out-of-bounds spiral
// start, or a value that never occurs all produce an empty result.
//
// Complexity:
//
//   - ZigZagSweep: O(R×C).
//   - SpiralSweep: O(R×C) time, O(R×C) visited flags.
//   - FindRoutes:  O(R×C×(R+C)) worst case, plus the size of the copied routes.
//
// Errors:
//
//   - ErrNilGrid:         NewWalk was given a nil grid.
//   - ErrPathOutOfBounds: NewWalk was given a position outside the grid.
package turtle
