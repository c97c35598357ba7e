package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/katalvlaran/critters/grid"
	"github.com/katalvlaran/critters/squirrel"
	"github.com/katalvlaran/critters/turtle"
)

const (
	cellMM   = 10.0
	marginMM = 15.0
)

func newDocument(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	return pdf
}

// GridPDF writes a one-page PDF with the matrix drawn as boxes. Cells on path
// are shaded and numbered by visiting order; routes are listed below.
func GridPDF(w io.Writer, title string, g *grid.Grid, path []grid.Position, routes []turtle.Route) error {
	if g == nil {
		return fmt.Errorf("render: %w", turtle.ErrNilGrid)
	}
	order := make(map[int]int, len(path))
	for i, p := range path {
		if g.InBounds(p) {
			order[g.Key(p)] = i + 1
		}
	}

	pdf := newDocument(title)
	top := pdf.GetY()
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			p := grid.Position{Row: r, Col: c}
			x, y := marginMM+float64(c)*cellMM, top+float64(r)*cellMM
			style := "D"
			if order[g.Key(p)] > 0 {
				pdf.SetFillColor(200, 230, 180)
				style = "FD"
			}
			pdf.Rect(x, y, cellMM, cellMM, style)

			pdf.SetFont("Courier", "B", 11)
			pdf.SetXY(x, y+1)
			pdf.CellFormat(cellMM, 5, fmt.Sprint(g.Value(p)), "", 0, "C", false, 0, "")
			if n := order[g.Key(p)]; n > 0 {
				pdf.SetFont("Courier", "", 6)
				pdf.SetXY(x, y+6)
				pdf.CellFormat(cellMM, 3, fmt.Sprint(n), "", 0, "C", false, 0, "")
			}
		}
	}
	pdf.SetXY(marginMM, top+float64(g.Rows())*cellMM+6)

	if len(routes) > 0 {
		pdf.SetFont("Courier", "", 9)
		lines := make([]string, len(routes))
		for i, r := range routes {
			lines[i] = fmt.Sprintf("%s %v len=%d shortest=%t longest=%t", r.Direction, r.Values, r.Len(), r.IsShortest, r.IsLongest)
		}
		pdf.MultiCell(0, 4.5, strings.Join(lines, "\n"), "", "L", false)
	}

	return pdf.Output(w)
}

// TreePDF writes the tree outline followed by the trip tokens.
func TreePDF(w io.Writer, title string, root *squirrel.Node, trips []squirrel.Trip) error {
	if root == nil {
		return fmt.Errorf("render: %w", squirrel.ErrNilTree)
	}
	pdf := newDocument(title)
	pdf.SetFont("Courier", "", 10)

	err := root.Walk(func(n *squirrel.Node, level int) error {
		line := strings.Repeat("    ", level-1) + n.ID
		if !n.IsRoot() {
			line += fmt.Sprintf("  %d/%d", n.Stored, n.Capacity)
		}
		pdf.Cell(0, 5, line)
		pdf.Ln(5)
		return nil
	})
	if err != nil {
		return err
	}

	if len(trips) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Courier", "B", 10)
		pdf.Cell(0, 5, fmt.Sprintf("Trips (%d)", len(trips)))
		pdf.Ln(6)
		pdf.SetFont("Courier", "", 9)
		pdf.MultiCell(0, 4.5, DefaultTheme().Trips(trips, 10), "", "L", false)
	}
	pdf.SetFont("Courier", "", 8)
	pdf.Cell(0, 5, "structure: "+squirrel.Serialize(root))

	return pdf.Output(w)
}
