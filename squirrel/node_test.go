package squirrel_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/critters/squirrel"
)

var ignoreParent = cmpopts.IgnoreUnexported(squirrel.Node{})

func TestNode_Clone(t *testing.T) {
	root := mustParse(t, defaultStructure, 3)
	root.Children[0].Stored = 2

	cp := root.Clone()
	if diff := cmp.Diff(root, cp, ignoreParent); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	// parent links point into the copy
	require.NoError(t, cp.Walk(func(n *squirrel.Node, _ int) error {
		for _, c := range n.Children {
			assert.Same(t, n, c.Parent())
		}
		return nil
	}))

	cp.Children[0].Stored = 0
	cp.Children[0].Children = nil
	assert.Equal(t, 2, root.Children[0].Stored)
	assert.Equal(t, defaultStructure, squirrel.Serialize(root))
}

func TestNode_Metrics(t *testing.T) {
	root := mustParse(t, defaultStructure, 3)

	assert.Equal(t, 13, root.Count())
	assert.Equal(t, 5, root.Depth())

	k := root.FindByPath("ADFIK")
	require.NotNil(t, k)
	assert.Equal(t, "K", k.ID)
	assert.Equal(t, 5, k.Level())
	assert.Equal(t, 1, k.Depth())
	assert.Equal(t, "ADFIK", k.Path())
	assert.Same(t, root, k.Root())
}

func TestNode_FindByPath(t *testing.T) {
	root := mustParse(t, defaultStructure, 3)

	assert.Nil(t, root.FindByPath(""))
	assert.Nil(t, root.FindByPath("AX"))
	assert.Nil(t, root.FindByPath("BE"))
	assert.Same(t, root, root.FindByPath("A"))

	// the first B has no C below it, the second does
	dup := mustParse(t, "AB)BC))", 1)
	c := dup.FindByPath("ABC")
	require.NotNil(t, c)
	assert.Same(t, dup.Children[1], c.Parent())
	assert.Same(t, dup.Children[0], dup.FindByPath("AB"))
}

func TestNode_FindByUID(t *testing.T) {
	root := mustParse(t, defaultStructure, 3)
	m := root.FindByPath("ADFJM")
	require.NotNil(t, m)

	cp := root.Clone()
	found := cp.FindByUID(m.UID)
	require.NotNil(t, found)
	assert.Equal(t, "ADFJM", found.Path())
	assert.NotSame(t, m, found)
}

func TestNode_Walk(t *testing.T) {
	root := mustParse(t, defaultStructure, 3)

	var ids strings.Builder
	var levels []int
	require.NoError(t, root.Walk(func(n *squirrel.Node, level int) error {
		ids.WriteString(n.ID)
		levels = append(levels, level)
		return nil
	}))
	assert.Equal(t, "ABEGHCDFIKLJM", ids.String())
	assert.Equal(t, []int{1, 2, 3, 4, 4, 2, 2, 3, 4, 5, 5, 4, 5}, levels)

	stop := errors.New("stop")
	visited := 0
	err := root.Walk(func(n *squirrel.Node, _ int) error {
		visited++
		if n.ID == "H" {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Contains(t, err.Error(), `"ABEH"`)
	assert.Equal(t, 5, visited)
}

func TestTotalStored(t *testing.T) {
	root := mustParse(t, "AB)C)", 3)
	root.Children[0].Stored = 2
	root.Children[1].Stored = 1
	assert.Equal(t, 3, squirrel.TotalStored(root))
}
