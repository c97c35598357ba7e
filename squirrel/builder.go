package squirrel

import "fmt"

// Policy holds the limits a tree editor enforces. Parse and Simulate ignore
// it; apply it explicitly where user edits enter the system.
type Policy struct {
	// MaxDepth is the number of levels allowed, the root counting as 1.
	MaxDepth int `mapstructure:"max_depth" json:"max_depth" yaml:"max_depth"`
	// MinCapacity and MaxCapacity bound every non-root capacity.
	MinCapacity int `mapstructure:"min_capacity" json:"min_capacity" yaml:"min_capacity"`
	MaxCapacity int `mapstructure:"max_capacity" json:"max_capacity" yaml:"max_capacity"`
	// Ceiling is the per-node unit limit used by CheckUnits.
	Ceiling int `mapstructure:"ceiling" json:"ceiling" yaml:"ceiling"`
}

// DefaultPolicy returns the builder limits: five levels, capacity 1..5,
// ceiling DefaultCeiling.
func DefaultPolicy() Policy {
	return Policy{MaxDepth: 5, MinCapacity: 1, MaxCapacity: 5, Ceiling: DefaultCeiling}
}

func validID(id string) bool {
	return len(id) == 1 && isLetter(id[0])
}

// Validate checks the whole tree against the policy.
func (p Policy) Validate(root *Node) error {
	if root == nil {
		return ErrNilTree
	}

	return root.Walk(func(n *Node, level int) error {
		if !validID(n.ID) {
			return fmt.Errorf("%w: %q", ErrInvalidID, n.ID)
		}
		if level > p.MaxDepth {
			return fmt.Errorf("%w: level %d > %d", ErrDepthLimit, level, p.MaxDepth)
		}
		if !n.IsRoot() && (n.Capacity < p.MinCapacity || n.Capacity > p.MaxCapacity) {
			return fmt.Errorf("%w: %d not in [%d,%d]", ErrCapacityRange, n.Capacity, p.MinCapacity, p.MaxCapacity)
		}
		return nil
	})
}

// CheckUnits rejects a unit count larger than the tree can ever hold.
func (p Policy) CheckUnits(root *Node, units int) error {
	if root == nil {
		return ErrNilTree
	}
	if units < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeUnits, units)
	}
	if room := Room(root, p.Ceiling); units > room {
		return fmt.Errorf("%w: %d > %d", ErrTooManyUnits, units, room)
	}

	return nil
}

// AddChild appends a new child with the given identifier and capacity.
// The identifier must be a single letter different from the root's.
func (p Policy) AddChild(parent *Node, id string, capacity int) (*Node, error) {
	if parent == nil {
		return nil, ErrNilTree
	}
	if !validID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if id == parent.Root().ID {
		return nil, fmt.Errorf("%w: %q is the root identifier", ErrInvalidID, id)
	}
	if parent.Level() >= p.MaxDepth {
		return nil, fmt.Errorf("%w: %q is at level %d", ErrDepthLimit, parent.Path(), parent.Level())
	}
	if capacity < p.MinCapacity || capacity > p.MaxCapacity {
		return nil, fmt.Errorf("%w: %d not in [%d,%d]", ErrCapacityRange, capacity, p.MinCapacity, p.MaxCapacity)
	}
	child := newNode(id, capacity, parent)
	parent.Children = append(parent.Children, child)

	return child, nil
}

// SetCapacity sets every non-root capacity in the tree.
func (p Policy) SetCapacity(root *Node, capacity int) error {
	if root == nil {
		return ErrNilTree
	}
	if capacity < p.MinCapacity || capacity > p.MaxCapacity {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrCapacityRange, capacity, p.MinCapacity, p.MaxCapacity)
	}
	for _, n := range storageNodes(root) {
		n.Capacity = capacity
	}

	return nil
}

// Remove detaches n and its subtree from the parent.
func Remove(n *Node) error {
	if n == nil {
		return ErrNilTree
	}
	if n.parent == nil {
		return ErrRemoveRoot
	}
	siblings := n.parent.Children
	for i, c := range siblings {
		if c.UID == n.UID {
			n.parent.Children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil

	return nil
}

// Rename changes n's identifier. Letters are upper-cased.
func Rename(n *Node, id string) error {
	if n == nil {
		return ErrNilTree
	}
	if !validID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	c := id[0]
	if 'a' <= c && c <= 'z' {
		c -= 'a' - 'A'
	}
	n.ID = string(c)

	return nil
}
