package squirrel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/critters/squirrel"
)

func TestExpand_ChildOfRoot(t *testing.T) {
	steps := squirrel.Expand(squirrel.Trip{Order: 1, Path: "AB"})
	want := []squirrel.Step{
		{Kind: squirrel.StepMove, Path: "AB"},
		{Kind: squirrel.StepPickup, Path: "AB"},
		{Kind: squirrel.StepDrop, Path: "A"},
	}
	assert.Equal(t, want, steps)
}

func TestExpand_Deep(t *testing.T) {
	steps := squirrel.Expand(squirrel.Trip{Order: 7, Path: "ADFI"})
	want := []squirrel.Step{
		{Kind: squirrel.StepMove, Path: "AD"},
		{Kind: squirrel.StepMove, Path: "ADF"},
		{Kind: squirrel.StepMove, Path: "ADFI"},
		{Kind: squirrel.StepPickup, Path: "ADFI"},
		{Kind: squirrel.StepMove, Path: "ADF"},
		{Kind: squirrel.StepMove, Path: "AD"},
		{Kind: squirrel.StepDrop, Path: "A"},
	}
	assert.Equal(t, want, steps)
}

func TestExpand_NoHole(t *testing.T) {
	assert.Nil(t, squirrel.Expand(squirrel.Trip{Path: "A"}))
	assert.Nil(t, squirrel.Expand(squirrel.Trip{}))
}

func TestTrip_Token(t *testing.T) {
	tr := squirrel.Trip{Order: 12, Path: "ABE"}
	assert.Equal(t, "12ABE", tr.String())

	back, err := squirrel.ParseTrip("12ABE")
	require.NoError(t, err)
	assert.Equal(t, tr, back)

	for _, bad := range []string{"", "ABE", "0AB", "3A", "3A1", "3A-B"} {
		_, err := squirrel.ParseTrip(bad)
		assert.ErrorIs(t, err, squirrel.ErrTripFormat, "%q", bad)
	}
}
