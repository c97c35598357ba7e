package squirrel

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Node is one storage hole of the tree. The root is the collection point and
// never stores units itself.
//
// ID is a single letter and need not be unique. UID is unique per created node
// and survives Clone, so it addresses the same logical node in every copy.
type Node struct {
	ID       string    `json:"id"`
	UID      uuid.UUID `json:"uid"`
	Capacity int       `json:"capacity"`
	Stored   int       `json:"stored"`
	Children []*Node   `json:"children,omitempty"`

	parent *Node
}

func newNode(id string, capacity int, parent *Node) *Node {
	return &Node{ID: id, UID: uuid.New(), Capacity: capacity, parent: parent}
}

// NewRoot returns a parentless node with capacity 0.
func NewRoot(id string) *Node { return newNode(id, 0, nil) }

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Root climbs to the top of n's tree.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}

	return n
}

// Path concatenates the identifiers from the root down to n.
func (n *Node) Path() string {
	var ids []string
	for cur := n; cur != nil; cur = cur.parent {
		ids = append(ids, cur.ID)
	}
	var b strings.Builder
	for i := len(ids) - 1; i >= 0; i-- {
		b.WriteString(ids[i])
	}

	return b.String()
}

// Level is 1 for the root, 2 for its children, and so on.
func (n *Node) Level() int {
	level := 1
	for cur := n.parent; cur != nil; cur = cur.parent {
		level++
	}

	return level
}

// Depth returns the number of levels in the subtree rooted at n (a leaf is 1).
func (n *Node) Depth() int {
	deepest := 0
	for _, c := range n.Children {
		deepest = max(deepest, c.Depth())
	}

	return deepest + 1
}

// Count returns the number of nodes in the subtree, n included.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}

	return total
}

// Clone deep-copies the subtree. The copy is detached: its root has no parent.
func (n *Node) Clone() *Node {
	return n.cloneUnder(nil)
}

func (n *Node) cloneUnder(parent *Node) *Node {
	cp := &Node{ID: n.ID, UID: n.UID, Capacity: n.Capacity, Stored: n.Stored, parent: parent}
	if len(n.Children) > 0 {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.cloneUnder(cp)
		}
	}

	return cp
}

// Walk visits the subtree in pre-order, passing each node and its level
// relative to n (n itself is level 1). A non-nil error from visit stops the
// walk and is returned wrapped with the node's path.
func (n *Node) Walk(visit func(node *Node, level int) error) error {
	return n.walk(visit, 1)
}

func (n *Node) walk(visit func(*Node, int) error, level int) error {
	if err := visit(n, level); err != nil {
		return fmt.Errorf("squirrel: walk stopped at %q: %w", n.Path(), err)
	}
	for _, c := range n.Children {
		if err := c.walk(visit, level+1); err != nil {
			return err
		}
	}

	return nil
}

// FindByPath returns the first node, in pre-order, whose Path equals path.
func (n *Node) FindByPath(path string) *Node {
	return n.findByPath(path, len(n.Path())-len(n.ID))
}

// findByPath matches path[offset:] against the subtree, offset being the
// length of the ancestors' part of the path.
func (n *Node) findByPath(path string, offset int) *Node {
	end := offset + len(n.ID)
	if end > len(path) || path[offset:end] != n.ID {
		return nil
	}
	if end == len(path) {
		return n
	}
	for _, c := range n.Children {
		if found := c.findByPath(path, end); found != nil {
			return found
		}
	}

	return nil
}

// FindByUID returns the node with the given UID, or nil.
func (n *Node) FindByUID(uid uuid.UUID) *Node {
	if n.UID == uid {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindByUID(uid); found != nil {
			return found
		}
	}

	return nil
}

// TotalStored returns the units held across the whole subtree of n.
func TotalStored(n *Node) int {
	total := 0
	_ = n.Walk(func(node *Node, _ int) error {
		total += node.Stored
		return nil
	})

	return total
}

// storageNodes returns the non-root nodes of the tree in pre-order.
func storageNodes(root *Node) []*Node {
	nodes := make([]*Node, 0, root.Count()-1)
	_ = root.Walk(func(node *Node, _ int) error {
		if !node.IsRoot() {
			nodes = append(nodes, node)
		}
		return nil
	})

	return nodes
}
