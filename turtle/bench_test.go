package turtle_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/critters/grid"
	"github.com/katalvlaran/critters/turtle"
)

// benchGrid returns a deterministic n×n grid with values in [0,9].
func benchGrid(b *testing.B, n int) *grid.Grid {
	b.Helper()
	rng := rand.New(rand.NewSource(42))
	values := make([][]int, n)
	for r := range values {
		values[r] = make([]int, n)
		for c := range values[r] {
			values[r][c] = rng.Intn(10)
		}
	}
	g, err := grid.New(values)
	if err != nil {
		b.Fatalf("setup grid.New failed: %v", err)
	}

	return g
}

// BenchmarkSpiralSweep measures a full spiral over a 500×500 grid.
// Complexity: O(R×C)
func BenchmarkSpiralSweep(b *testing.B) {
	g := benchGrid(b, 500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = turtle.SpiralSweep(g, grid.Position{})
	}
}

// BenchmarkFindRoutes measures route search on a 100×100 grid.
// Complexity: O(R×C×(R+C))
func BenchmarkFindRoutes(b *testing.B) {
	g := benchGrid(b, 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = turtle.FindRoutes(g, 7, 8)
	}
}
