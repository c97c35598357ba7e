package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/katalvlaran/critters/grid"
	"github.com/katalvlaran/critters/squirrel"
	"github.com/katalvlaran/critters/turtle"
)

// GridView is what Grid draws: the matrix, the cells walked so far and,
// optionally, the cell the turtle is on.
type GridView struct {
	Grid    *grid.Grid
	Visited []grid.Position
	Current *grid.Position
}

// Grid renders the matrix inside a frame. Visited cells and the current cell
// get their own styles.
func (t Theme) Grid(v GridView) string {
	if v.Grid == nil {
		return ""
	}
	seen := make(map[int]bool, len(v.Visited))
	for _, p := range v.Visited {
		if v.Grid.InBounds(p) {
			seen[v.Grid.Key(p)] = true
		}
	}

	rows := make([]string, v.Grid.Rows())
	for r := range rows {
		cells := make([]string, v.Grid.Cols())
		for c := range cells {
			p := grid.Position{Row: r, Col: c}
			style := t.Cell
			switch {
			case v.Current != nil && *v.Current == p:
				style = t.Current
			case seen[v.Grid.Key(p)]:
				style = t.Visited
			}
			cells[c] = style.Render(fmt.Sprint(v.Grid.Value(p)))
		}
		rows[r] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}

	return t.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Path lists each cell of path as "row, col: value", one per line.
func (t Theme) Path(g *grid.Grid, path []grid.Position) string {
	var b strings.Builder
	for i, p := range path {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%3d  %d, %d: %d", i+1, p.Row, p.Col, g.Value(p))
	}

	return b.String()
}

// Routes lists each route with its direction, endpoints, values and tags.
func (t Theme) Routes(routes []turtle.Route) string {
	if len(routes) == 0 {
		return t.Muted.Render("no routes")
	}
	lines := make([]string, len(routes))
	for i, r := range routes {
		from, to := r.Coords[0], r.Coords[len(r.Coords)-1]
		line := fmt.Sprintf("%s %s→%s len=%d %v", r.Direction, from, to, r.Len(), r.Values)
		if r.IsShortest {
			line += " " + t.Shortest.Render("shortest")
		}
		if r.IsLongest {
			line += " " + t.Longest.Render("longest")
		}
		lines[i] = line
	}

	return strings.Join(lines, "\n")
}

// Tree draws the tree with box-drawing branches. Each non-root node shows
// stored/capacity; the node whose UID equals forager is marked with "@".
func (t Theme) Tree(root *squirrel.Node, forager uuid.UUID) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(t.label(root, forager))
	t.branches(&b, root, "", forager)

	return b.String()
}

func (t Theme) branches(b *strings.Builder, n *squirrel.Node, prefix string, forager uuid.UUID) {
	for i, c := range n.Children {
		last := i == len(n.Children)-1
		joint, indent := "├─ ", "│  "
		if last {
			joint, indent = "└─ ", "   "
		}
		b.WriteString("\n" + prefix + joint + t.label(c, forager))
		t.branches(b, c, prefix+indent, forager)
	}
}

func (t Theme) label(n *squirrel.Node, forager uuid.UUID) string {
	text := t.Node.Render(n.ID)
	if !n.IsRoot() {
		counts := fmt.Sprintf("[%d/%d]", n.Stored, n.Capacity)
		if n.Stored >= n.Capacity {
			counts = t.Full.Render(counts)
		}
		text += " " + counts
	}
	if forager != uuid.Nil && n.UID == forager {
		text += " " + t.Forager.Render("@")
	}

	return text
}

// Trips renders trip tokens in rows of perRow.
func (t Theme) Trips(trips []squirrel.Trip, perRow int) string {
	if perRow < 1 {
		perRow = 1
	}
	var b strings.Builder
	for i, tr := range trips {
		switch {
		case i == 0:
		case i%perRow == 0:
			b.WriteByte('\n')
		default:
			b.WriteByte(' ')
		}
		b.WriteString(tr.String())
	}

	return b.String()
}
