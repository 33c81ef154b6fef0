// Package viz draws the arena in a terminal.
//
// Shapes are rasterised onto a Braille [Canvas] through [CanvasRenderer],
// and [Model] drives a live world with Bubble Tea.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Rebuild the scene
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	Q     - Quit
package viz
