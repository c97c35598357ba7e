package turtle

import "github.com/katalvlaran/critters/grid"

// ZigZagSweep visits every cell exactly once, column by column from the left.
// Even-indexed columns are walked top to bottom, odd-indexed bottom to top.
// A nil grid yields an empty path.
// Complexity: O(R×C).
func ZigZagSweep(g *grid.Grid) []grid.Position {
	if g == nil {
		return []grid.Position{}
	}
	rows, cols := g.Rows(), g.Cols()
	path := make([]grid.Position, 0, rows*cols)
	for col := 0; col < cols; col++ {
		if col%2 == 0 {
			for row := 0; row < rows; row++ {
				path = append(path, grid.Position{Row: row, Col: col})
			}
			continue
		}
		for row := rows - 1; row >= 0; row-- {
			path = append(path, grid.Position{Row: row, Col: col})
		}
	}

	return path
}
