// Package grid holds the immutable rectangular integer matrix that the
// turtle walks operate on.
//
// What:
//
//   - Grid wraps a rectangular [][]int, deep-copied at construction.
//   - Position is a (Row, Col) pair; Key maps it to a row-major integer,
//     which is the canonical member of every visited set in this module.
//
// Why:
//
//   - Walks never mutate their input, so a Grid can be shared by any number
//     of concurrent sweeps and route searches.
//
// Complexity:
//
//   - New:            O(R×C) time and memory (copy).
//   - InBounds, Key:  O(1).
//
// Errors:
//
//   - ErrEmptyGrid:      input has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrOutOfBounds:    At was asked for a cell outside the grid.
package grid
