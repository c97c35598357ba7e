// Package critters is a small playground of two path engines and the tools
// around them.
//
// 🐢 turtle walks a rectangular grid of integers:
//
//	• ZigZagSweep: column by column, down then up then down …
//	• SpiralSweep: clockwise spiral out of any start cell
//	• FindRoutes:  straight rays from every start value to every end value,
//	               tagged shortest / longest
//
// 🐿 squirrel fills a tree of storage holes:
//
//	• Parse / Serialize: the "ABEG)H)))C)…" pre-order grammar
//	• Simulate:          round-robin placement of walnuts, one trip per walnut
//	• Expand:            a trip as move / pickup / drop steps
//	• Run:               Idle → Running ⇄ Paused → Finished replay cursor
//
// Around them:
//
//	grid/         validated rectangular matrix shared by turtle and render
//	playback/     ticker-paced driver for anything with Step() (done, err)
//	render/       lipgloss terminal views and gofpdf exports
//	tui/          bubbletea models for interactive replays
//	scenario/     YAML batches executed concurrently
//	config/       viper-backed settings (YAML file + CRITTERS_* env)
//	logging/      zap logger construction
//	api/          chi JSON routes and the replay WebSocket
//	cmd/critters  the cobra CLI tying everything together
//
// Quick ASCII example of a zig-zag over a 3×3 grid:
//
//	1 ┐ 6 ┌ 7
//	2 │ 5 │ 8
//	3 ┘ 4 ┘ 9
//
//	go install github.com/katalvlaran/critters/cmd/critters@latest
package critters
