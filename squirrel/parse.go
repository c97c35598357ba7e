package squirrel

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultInput is the demo forest: 25 walnuts, capacity 3, thirteen nodes.
const DefaultInput = "25,3,ABEG)H)))C)DFIK)L))JM))))"

const closeMarker = ')'

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// Parse builds a tree from its serialized form.
//
// The first character names the root. Every following letter becomes a new
// child of the current node and then the current node; every ')' moves the
// current node back to its parent. Non-root nodes start with defaultCapacity
// and no units; the root has capacity 0. Nodes left open at the end of the
// string are accepted.
//
// Identifiers are not checked for uniqueness and capacity is not bounded;
// see Policy for the builder's limits.
//
// Returns ErrFormat for an empty string, a leading non-letter or any other
// foreign character, ErrStructure for a ')' with no open node.
// Complexity: O(len(serialized)).
func Parse(serialized string, defaultCapacity int) (*Node, error) {
	if serialized == "" {
		return nil, fmt.Errorf("%w: empty string", ErrFormat)
	}
	if !isLetter(serialized[0]) {
		return nil, fmt.Errorf("%w: first character %q is not a letter", ErrFormat, serialized[0])
	}

	root := newNode(serialized[:1], 0, nil)
	cur := root
	for i := 1; i < len(serialized); i++ {
		c := serialized[i]
		switch {
		case isLetter(c):
			child := newNode(serialized[i:i+1], defaultCapacity, cur)
			cur.Children = append(cur.Children, child)
			cur = child
		case c == closeMarker:
			if cur.parent == nil {
				return nil, fmt.Errorf("%w: ')' at offset %d", ErrStructure, i)
			}
			cur = cur.parent
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrFormat, c, i)
		}
	}

	return root, nil
}

// Serialize emits the tree in pre-order: each identifier, then its children,
// then one ')' for every node except the root. A nil tree yields "".
//
// Serialize(Parse(s)) == s whenever every non-root node in s is closed;
// strings that leave nodes open come back with the missing closes appended.
func Serialize(root *Node) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	writeNode(&b, root)

	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	b.WriteString(n.ID)
	for _, c := range n.Children {
		writeNode(b, c)
	}
	if n.parent != nil {
		b.WriteByte(closeMarker)
	}
}

// Input is the raw "walnuts,capacity,structure" line.
type Input struct {
	Walnuts   int    `json:"walnuts" yaml:"walnuts"`
	Capacity  int    `json:"capacity" yaml:"capacity"`
	Structure string `json:"structure" yaml:"structure"`
}

// ParseInput splits and validates a raw input line. Fields may be padded with
// spaces. The structure is only checked for presence here; Tree parses it.
func ParseInput(line string) (Input, error) {
	parts := strings.SplitN(line, ",", 3)
	if len(parts) < 3 {
		return Input{}, fmt.Errorf("%w: got %q", ErrInputFormat, line)
	}

	walnuts, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || walnuts < 0 {
		return Input{}, fmt.Errorf("%w: %q", ErrInvalidWalnuts, parts[0])
	}
	capacity, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || capacity <= 0 {
		return Input{}, fmt.Errorf("%w: %q", ErrInvalidCapacity, parts[1])
	}
	structure := strings.TrimSpace(parts[2])
	if structure == "" {
		return Input{}, fmt.Errorf("%w: empty structure", ErrFormat)
	}

	return Input{Walnuts: walnuts, Capacity: capacity, Structure: structure}, nil
}

// Tree parses the structure with the input's capacity.
func (in Input) Tree() (*Node, error) {
	return Parse(in.Structure, in.Capacity)
}

// String renders the input back into its line form.
func (in Input) String() string {
	return fmt.Sprintf("%d,%d,%s", in.Walnuts, in.Capacity, in.Structure)
}
