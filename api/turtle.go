package api

import (
	"fmt"
	"net/http"

	"github.com/katalvlaran/critters/grid"
	"github.com/katalvlaran/critters/turtle"
)

type sweepRequest struct {
	Matrix [][]int        `json:"matrix,omitempty"`
	Start  *grid.Position `json:"start,omitempty"`
}

type routesRequest struct {
	Matrix     [][]int `json:"matrix,omitempty"`
	StartValue *int    `json:"start_value"`
	EndValue   *int    `json:"end_value"`
}

type pathResponse struct {
	Path     []grid.Position `json:"path"`
	Values   []int           `json:"values"`
	Complete bool            `json:"complete"`
}

type routesResponse struct {
	Routes   []turtle.Route `json:"routes"`
	Shortest int            `json:"shortest"`
	Longest  int            `json:"longest"`
}

// matrix returns the request's grid or the configured one.
func (h *Handler) matrix(values [][]int) (*grid.Grid, error) {
	if values == nil {
		return h.cfg.Turtle.Grid()
	}

	return grid.New(values)
}

func newPathResponse(g *grid.Grid, path []grid.Position) pathResponse {
	values := make([]int, len(path))
	for i, p := range path {
		values[i] = g.Value(p)
	}

	return pathResponse{Path: path, Values: values, Complete: len(path) == g.Size()}
}

// ZigZag answers POST /api/turtle/zigzag.
func (h *Handler) ZigZag(w http.ResponseWriter, r *http.Request) {
	var req sweepRequest
	if err := DecodeJSONRequest(r, &req); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	g, err := h.matrix(req.Matrix)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteResponseWithStatus(w, http.StatusOK, newPathResponse(g, turtle.ZigZagSweep(g)))
}

// Spiral answers POST /api/turtle/spiral. An out-of-bounds start is not an
// error; it yields an empty path.
func (h *Handler) Spiral(w http.ResponseWriter, r *http.Request) {
	var req sweepRequest
	if err := DecodeJSONRequest(r, &req); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if req.Start == nil {
		h.fail(w, r, fmt.Errorf("%w: start is required", errBadRequest))
		return
	}
	g, err := h.matrix(req.Matrix)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteResponseWithStatus(w, http.StatusOK, newPathResponse(g, turtle.SpiralSweep(g, *req.Start)))
}

// Routes answers POST /api/turtle/routes.
func (h *Handler) Routes(w http.ResponseWriter, r *http.Request) {
	var req routesRequest
	if err := DecodeJSONRequest(r, &req); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if req.StartValue == nil || req.EndValue == nil {
		h.fail(w, r, fmt.Errorf("%w: start_value and end_value are required", errBadRequest))
		return
	}
	g, err := h.matrix(req.Matrix)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	routes := turtle.FindRoutes(g, *req.StartValue, *req.EndValue)
	resp := routesResponse{Routes: routes}
	for _, rt := range routes {
		if rt.IsShortest {
			resp.Shortest = rt.Len()
		}
		if rt.IsLongest {
			resp.Longest = rt.Len()
		}
	}
	h.log.Debugw("routes found", "start", *req.StartValue, "end", *req.EndValue, "count", len(routes))

	WriteResponseWithStatus(w, http.StatusOK, resp)
}
