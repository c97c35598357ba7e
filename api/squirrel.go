package api

import (
	"fmt"
	"net/http"

	"github.com/katalvlaran/critters/squirrel"
)

type squirrelRequest struct {
	// Input is the raw "walnuts,capacity,structure" line.
	Input   string `json:"input,omitempty"`
	Ceiling int    `json:"ceiling,omitempty"`
}

type parseResponse struct {
	Walnuts   int            `json:"walnuts"`
	Capacity  int            `json:"capacity"`
	Structure string         `json:"structure"`
	Nodes     int            `json:"nodes"`
	Depth     int            `json:"depth"`
	Room      int            `json:"room"`
	Tree      *squirrel.Node `json:"tree"`
}

type simulateResponse struct {
	Requested int             `json:"requested"`
	Placed    int             `json:"placed"`
	Saturated bool            `json:"saturated"`
	Tokens    []string        `json:"tokens"`
	Trips     []squirrel.Trip `json:"trips"`
	Tree      *squirrel.Node  `json:"tree"`
}

// loadTree parses the request input, or the configured one, and applies the
// builder policy the way the editor would.
func (h *Handler) loadTree(line string) (squirrel.Input, *squirrel.Node, error) {
	if line == "" {
		line = h.cfg.Squirrel.Input
	}
	in, err := squirrel.ParseInput(line)
	if err != nil {
		return in, nil, err
	}
	root, err := in.Tree()
	if err != nil {
		return in, nil, err
	}
	if err = h.cfg.Squirrel.Policy.Validate(root); err != nil {
		return in, nil, err
	}

	return in, root, nil
}

func (h *Handler) ceiling(requested int) int {
	if requested != 0 {
		return requested
	}

	return h.cfg.Squirrel.Ceiling
}

// Parse answers POST /api/squirrel/parse.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req squirrelRequest
	if err := DecodeJSONRequest(r, &req); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	in, root, err := h.loadTree(req.Input)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteResponseWithStatus(w, http.StatusOK, parseResponse{
		Walnuts:   in.Walnuts,
		Capacity:  in.Capacity,
		Structure: squirrel.Serialize(root),
		Nodes:     root.Count(),
		Depth:     root.Depth(),
		Room:      squirrel.Room(root, h.ceiling(req.Ceiling)),
		Tree:      root,
	})
}

// Simulate answers POST /api/squirrel/simulate.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req squirrelRequest
	if err := DecodeJSONRequest(r, &req); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	in, root, err := h.loadTree(req.Input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	dist, err := squirrel.Simulate(root, in.Walnuts, squirrel.WithCeiling(h.ceiling(req.Ceiling)))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	tokens := make([]string, len(dist.Trips))
	for i, tr := range dist.Trips {
		tokens[i] = tr.String()
	}
	h.log.Infow("simulated", "walnuts", in.Walnuts, "capacity", in.Capacity, "placed", dist.Placed())

	WriteResponseWithStatus(w, http.StatusOK, simulateResponse{
		Requested: dist.Requested,
		Placed:    dist.Placed(),
		Saturated: dist.Saturated(),
		Tokens:    tokens,
		Trips:     dist.Trips,
		Tree:      dist.Tree,
	})
}
