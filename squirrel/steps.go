package squirrel

// StepKind names the action of a replay Step.
type StepKind string

const (
	// StepMove puts the forager on the node at Path.
	StepMove StepKind = "move"
	// StepPickup takes one unit out of the node at Path.
	StepPickup StepKind = "pickup"
	// StepDrop hands the carried unit to the root. Path is the root's.
	StepDrop StepKind = "drop"
)

// Step is one atomic replay action.
type Step struct {
	Kind StepKind `json:"kind"`
	Path string   `json:"path"`
}

// Expand turns a Trip into its replay steps.
//
// For a path of n identifiers it yields moves through the prefixes of length
// 2..n, one pickup at the full path, moves back through prefixes n-1..2 and
// a final drop at the root. The root itself is never a move target.
// A path shorter than 2 names no hole and yields nil.
//
// Example: "ABC" → move AB, move ABC, pickup ABC, move AB, drop A.
func Expand(trip Trip) []Step {
	path := trip.Path
	n := len(path)
	if n < 2 {
		return nil
	}

	steps := make([]Step, 0, 2*(n-1)+1)
	for i := 2; i <= n; i++ {
		steps = append(steps, Step{Kind: StepMove, Path: path[:i]})
	}
	steps = append(steps, Step{Kind: StepPickup, Path: path})
	for i := n - 1; i >= 2; i-- {
		steps = append(steps, Step{Kind: StepMove, Path: path[:i]})
	}
	steps = append(steps, Step{Kind: StepDrop, Path: path[:1]})

	return steps
}
