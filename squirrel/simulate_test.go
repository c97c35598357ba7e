package squirrel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/critters/squirrel"
)

func tripPaths(trips []squirrel.Trip) []string {
	out := make([]string, len(trips))
	for i, tr := range trips {
		out[i] = tr.Path
	}

	return out
}

// TestSimulate_Ceiling: capacity 10 is clipped by the global ceiling of 5.
func TestSimulate_Ceiling(t *testing.T) {
	root := mustParse(t, "AB)", 10)

	dist, err := squirrel.Simulate(root, 10)
	require.NoError(t, err)
	assert.Len(t, dist.Trips, 5)
	assert.Equal(t, 5, dist.Placed())
	assert.True(t, dist.Saturated())
	assert.Equal(t, 5, dist.Tree.Children[0].Stored)

	dist, err = squirrel.Simulate(root, 10, squirrel.WithCeiling(2))
	require.NoError(t, err)
	assert.Len(t, dist.Trips, 2)
}

// TestSimulate_RoundRobin: each pass gives every open node one unit.
func TestSimulate_RoundRobin(t *testing.T) {
	root := mustParse(t, "AB)C)", 3)

	dist, err := squirrel.Simulate(root, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, dist.Tree.Children[0].Stored)
	assert.Equal(t, 2, dist.Tree.Children[1].Stored)
	assert.Equal(t, []string{"AB", "AC", "AB", "AC"}, tripPaths(dist.Trips))
	for i, tr := range dist.Trips {
		assert.Equal(t, i+1, tr.Order)
	}
	assert.False(t, dist.Saturated())
}

func TestSimulate_TemplateUntouched(t *testing.T) {
	root := mustParse(t, defaultStructure, 3)

	_, err := squirrel.Simulate(root, 25)
	require.NoError(t, err)
	assert.Zero(t, squirrel.TotalStored(root))
}

func TestSimulate_DefaultInput(t *testing.T) {
	in, err := squirrel.ParseInput(squirrel.DefaultInput)
	require.NoError(t, err)
	root, err := in.Tree()
	require.NoError(t, err)

	dist, err := squirrel.Simulate(root, in.Walnuts)
	require.NoError(t, err)
	require.Len(t, dist.Trips, 25)
	assert.Equal(t, 25, squirrel.TotalStored(dist.Tree))

	// 12 holes: two full passes, then one unit into the first hole
	assert.Equal(t, "AB", dist.Trips[0].Path)
	assert.Equal(t, "ADFJM", dist.Trips[11].Path)
	assert.Equal(t, "AB", dist.Trips[12].Path)
	assert.Equal(t, "AB", dist.Trips[24].Path)
	assert.Equal(t, 3, dist.Tree.FindByPath("AB").Stored)
	assert.Equal(t, 2, dist.Tree.FindByPath("ABE").Stored)
	assert.Equal(t, 36-25, squirrel.Room(dist.Tree, squirrel.DefaultCeiling))

	for _, tr := range dist.Trips {
		n := dist.Tree.FindByUID(tr.Target)
		require.NotNil(t, n, "trip %s", tr)
		assert.Equal(t, tr.Path, n.Path())
	}
}

func TestSimulate_Degenerate(t *testing.T) {
	root := mustParse(t, "AB)", 3)
	dist, err := squirrel.Simulate(root, 0)
	require.NoError(t, err)
	assert.Empty(t, dist.Trips)
	assert.False(t, dist.Saturated())

	lone := mustParse(t, "A", 3)
	dist, err = squirrel.Simulate(lone, 3)
	require.NoError(t, err)
	assert.Empty(t, dist.Trips)
	assert.True(t, dist.Saturated())
}

func TestSimulate_Errors(t *testing.T) {
	_, err := squirrel.Simulate(nil, 1)
	assert.ErrorIs(t, err, squirrel.ErrNilTree)

	root := mustParse(t, "AB)", 3)
	_, err = squirrel.Simulate(root, -1)
	assert.ErrorIs(t, err, squirrel.ErrNegativeUnits)

	_, err = squirrel.Simulate(root, 1, squirrel.WithCeiling(0))
	assert.ErrorIs(t, err, squirrel.ErrInvalidCeiling)
}
