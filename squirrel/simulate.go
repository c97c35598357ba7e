package squirrel

import "fmt"

// DefaultCeiling is the most units any node may hold, whatever its capacity.
const DefaultCeiling = 5

// SimulateOption configures Simulate.
type SimulateOption func(*simulateOptions)

type simulateOptions struct {
	ceiling int
}

// WithCeiling replaces DefaultCeiling. n must be positive.
func WithCeiling(n int) SimulateOption {
	return func(o *simulateOptions) {
		o.ceiling = n
	}
}

// Distribution is the outcome of Simulate.
type Distribution struct {
	// Requested is the number of units asked for.
	Requested int `json:"requested"`
	// Trips lists one Trip per placed unit, in placement order.
	Trips []Trip `json:"trips"`
	// Tree is the filled clone; the input tree is never touched.
	Tree *Node `json:"tree"`
}

// Placed returns the number of units that found a hole.
func (d *Distribution) Placed() int { return len(d.Trips) }

// Saturated reports whether the tree ran out of room before all units were placed.
func (d *Distribution) Saturated() bool { return len(d.Trips) < d.Requested }

// Simulate distributes totalUnits over a deep clone of tree.
//
// Steps:
//  1. Clone tree; stored counts carry over into the clone.
//  2. Collect the non-root nodes in pre-order once.
//  3. Each pass visits them in that order and places one unit into every
//     node with Stored < Capacity and Stored < ceiling, until all units are
//     placed.
//  4. Stop when every unit is placed or a pass places nothing.
//
// Fewer trips than requested is a normal outcome, not an error.
// Returns ErrNilTree, ErrNegativeUnits or ErrInvalidCeiling for bad arguments.
// Complexity: O(N × passes) with passes ≤ ceiling.
func Simulate(tree *Node, totalUnits int, opts ...SimulateOption) (*Distribution, error) {
	o := simulateOptions{ceiling: DefaultCeiling}
	for _, opt := range opts {
		opt(&o)
	}
	if tree == nil {
		return nil, ErrNilTree
	}
	if totalUnits < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeUnits, totalUnits)
	}
	if o.ceiling <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCeiling, o.ceiling)
	}

	// 1) private copy
	clone := tree.Clone()
	// 2) fixed scan order
	holes := storageNodes(clone)

	// 3) passes
	trips := make([]Trip, 0, min(totalUnits, len(holes)*o.ceiling))
	for len(trips) < totalUnits {
		placed := 0
		for _, n := range holes {
			if len(trips) == totalUnits {
				break
			}
			if n.Stored >= n.Capacity || n.Stored >= o.ceiling {
				continue
			}
			n.Stored++
			placed++
			trips = append(trips, Trip{Order: len(trips) + 1, Path: n.Path(), Target: n.UID})
		}
		// 4) saturated
		if placed == 0 {
			break
		}
	}

	return &Distribution{Requested: totalUnits, Trips: trips, Tree: clone}, nil
}

// Room returns how many more units the tree can take under ceiling.
func Room(tree *Node, ceiling int) int {
	if tree == nil {
		return 0
	}
	room := 0
	for _, n := range storageNodes(tree.Root()) {
		if free := min(n.Capacity, ceiling) - n.Stored; free > 0 {
			room += free
		}
	}

	return room
}
