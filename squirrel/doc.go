// Package squirrel simulates a forager carrying units of food (walnuts)
// between a root collection point and the storage holes of a tree.
//
// What:
//
//   - Parse / Serialize: the compact tree grammar. Letters descend, `)` climbs
//     one level, the first letter is the root. "ABC)D))" is A→B→{C,D}.
//   - ParseInput: the raw "walnuts,capacity,structure" line, e.g. DefaultInput.
//   - Simulate: greedy placement. Every pass visits the non-root nodes in
//     pre-order and drops at most one unit into each node that is below both
//     its capacity and the global ceiling (5 unless WithCeiling says
//     otherwise). Passes repeat until the units run out or a pass places
//     nothing. Each placement is recorded as a Trip.
//   - Expand: turns a Trip into move / pickup / drop Steps.
//   - Run: replays the Steps of all Trips one at a time. It is a small state
//     machine, Idle → Running → (Paused ⇄ Running)* → Finished, with Reset
//     available from any state.
//   - Policy: the editing limits of the tree builder (depth, capacity range).
//     Parse and Simulate never apply it.
//
// Why:
//
//   - The caller's tree is a template. Simulate and Run always work on a deep
//     clone, so an editor holding the template never sees simulation effects.
//   - Run is an explicit cursor (trip index, step index) rather than a timer
//     loop; pacing belongs to the caller (see package playback), so every
//     transition is testable synchronously.
//
// Complexity:
//
//   - Parse, Serialize, Clone: O(N) for N nodes.
//   - Simulate:                O(N × passes), passes ≤ ceiling.
//   - Expand:                  O(D²) for a path of depth D (prefix strings).
//   - Run.Advance:             O(N) worst case to resolve the step's node.
//
// Errors:
//
//   - ErrFormat:    empty tree string, leading non-letter, or a foreign character.
//   - ErrStructure: a `)` with no open node to close.
//   - ErrInputFormat, ErrInvalidWalnuts, ErrInvalidCapacity: raw input line.
//   - ErrNilTree, ErrNegativeUnits, ErrInvalidCeiling: Simulate / NewRun arguments.
//   - ErrNotStarted, ErrPaused, ErrFinished, ErrNotRunning, ErrNotPaused,
//     ErrAlreadyStarted: Run transitions that the current state forbids.
//   - ErrNodeNotFound, ErrEmptyNode: a step cannot be applied to the tree.
//   - ErrDepthLimit, ErrCapacityRange, ErrInvalidID, ErrRemoveRoot: Policy.
package squirrel
