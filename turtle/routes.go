package turtle

import "github.com/katalvlaran/critters/grid"

// probeOrder is the order in which rays are cast from each start cell.
var probeOrder = [4]Direction{North, East, South, West}

// FindRoutes returns every straight-line route from a cell holding startValue
// to a cell holding endValue.
//
// Start cells are scanned row-major. From each one a ray is cast N, E, S and W
// up to the grid edge; every endValue cell met along a ray yields its own
// Route, and the ray keeps going past it, so one ray may report several
// nested routes. Once all candidates are known, routes whose length equals the
// minimum get IsShortest and those equal to the maximum get IsLongest; a lone
// route carries both.
//
// No match (or a nil grid) yields an empty slice.
// Complexity: O(R×C×(R+C)) cell checks plus the cost of copying each route.
func FindRoutes(g *grid.Grid, startValue, endValue int) []Route {
	routes := []Route{}
	if g == nil {
		return routes
	}

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			origin := grid.Position{Row: row, Col: col}
			if g.Value(origin) != startValue {
				continue
			}
			for _, dir := range probeOrder {
				routes = appendRay(routes, g, origin, dir, endValue)
			}
		}
	}
	if len(routes) == 0 {
		return routes
	}

	minLen, maxLen := routes[0].Len(), routes[0].Len()
	for _, r := range routes[1:] {
		if r.Len() < minLen {
			minLen = r.Len()
		}
		if r.Len() > maxLen {
			maxLen = r.Len()
		}
	}
	for i := range routes {
		routes[i].IsShortest = routes[i].Len() == minLen
		routes[i].IsLongest = routes[i].Len() == maxLen
	}

	return routes
}

// appendRay walks from origin along dir and appends one Route per endValue hit.
func appendRay(routes []Route, g *grid.Grid, origin grid.Position, dir Direction, endValue int) []Route {
	coords := []grid.Position{origin}
	values := []int{g.Value(origin)}
	d := dir.delta()
	for p := step(origin, d); g.InBounds(p); p = step(p, d) {
		coords = append(coords, p)
		values = append(values, g.Value(p))
		if g.Value(p) != endValue {
			continue
		}
		routes = append(routes, Route{
			Direction: dir,
			Coords:    append([]grid.Position(nil), coords...),
			Values:    append([]int(nil), values...),
		})
	}

	return routes
}

// Shortest returns the routes flagged IsShortest, in their original order.
func Shortest(routes []Route) []Route {
	return filterRoutes(routes, func(r Route) bool { return r.IsShortest })
}

// Longest returns the routes flagged IsLongest, in their original order.
func Longest(routes []Route) []Route {
	return filterRoutes(routes, func(r Route) bool { return r.IsLongest })
}

func filterRoutes(routes []Route, keep func(Route) bool) []Route {
	out := make([]Route, 0, len(routes))
	for _, r := range routes {
		if keep(r) {
			out = append(out, r)
		}
	}

	return out
}
