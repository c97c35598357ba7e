package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/critters/grid"
	"github.com/katalvlaran/critters/render"
	"github.com/katalvlaran/critters/squirrel"
	"github.com/katalvlaran/critters/turtle"
)

func TestGrid(t *testing.T) {
	g := grid.MustNew([][]int{{11, 2}, {3, 44}})
	cur := grid.Position{Row: 1, Col: 1}

	out := render.DefaultTheme().Grid(render.GridView{Grid: g, Visited: turtle.ZigZagSweep(g)[:2], Current: &cur})
	for _, v := range []string{"11", "2", "3", "44"} {
		assert.Contains(t, out, v)
	}
	assert.Equal(t, "", render.DefaultTheme().Grid(render.GridView{}))
}

func TestPath(t *testing.T) {
	g := grid.MustNew([][]int{{5, 6}})
	out := render.DefaultTheme().Path(g, turtle.ZigZagSweep(g))
	assert.Equal(t, "  1  0, 0: 5\n  2  0, 1: 6", out)
}

func TestRoutes(t *testing.T) {
	g := grid.MustNew([][]int{{2, 8}, {8, 2}})
	out := render.DefaultTheme().Routes(turtle.FindRoutes(g, 2, 8))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "E (0,0)→(0,1) len=2 [2 8]"))
	assert.Contains(t, lines[0], "shortest")
	assert.Contains(t, lines[0], "longest")

	assert.Contains(t, render.DefaultTheme().Routes(nil), "no routes")
}

func TestTree(t *testing.T) {
	root, err := squirrel.Parse("ABC)D))E)", 3)
	require.NoError(t, err)
	root.Children[0].Stored = 3
	d := root.FindByPath("ABD")
	require.NotNil(t, d)

	out := render.DefaultTheme().Tree(root, d.UID)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "A", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "├─ B"))
	assert.Contains(t, lines[1], "[3/3]")
	assert.True(t, strings.HasPrefix(lines[2], "│  ├─ C"))
	assert.True(t, strings.HasPrefix(lines[3], "│  └─ D"))
	assert.Contains(t, lines[3], "@")
	assert.True(t, strings.HasPrefix(lines[4], "└─ E"))
	assert.NotContains(t, lines[4], "@")

	assert.Equal(t, "", render.DefaultTheme().Tree(nil, uuid.Nil))
}

func TestTrips(t *testing.T) {
	trips := []squirrel.Trip{{Order: 1, Path: "AB"}, {Order: 2, Path: "AC"}, {Order: 3, Path: "AB"}}
	assert.Equal(t, "1AB 2AC\n3AB", render.DefaultTheme().Trips(trips, 2))
	assert.Equal(t, "", render.DefaultTheme().Trips(nil, 2))
}

func TestGridPDF(t *testing.T) {
	g := grid.MustNew(turtle.DefaultMatrix)
	var buf bytes.Buffer
	err := render.GridPDF(&buf, "spiral", g, turtle.SpiralSweep(g, grid.Position{}), turtle.FindRoutes(g, 7, 8))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	assert.ErrorIs(t, render.GridPDF(&buf, "x", nil, nil, nil), turtle.ErrNilGrid)
}

func TestTreePDF(t *testing.T) {
	root, err := squirrel.Parse("ABEG)H)))C)DFIK)L))JM))))", 3)
	require.NoError(t, err)
	dist, err := squirrel.Simulate(root, 25)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, render.TreePDF(&buf, "walnuts", dist.Tree, dist.Trips))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	assert.ErrorIs(t, render.TreePDF(&buf, "x", nil, nil), squirrel.ErrNilTree)
}
