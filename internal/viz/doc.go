// Package viz renders a cloth sheet in the terminal.
//
// [Model] is a Bubble Tea program that owns a grid and a solver and steps
// them on a 60 Hz tick. The sheet is drawn on a braille [Canvas], where
// each character cell holds a 2x4 block of sub-pixels.
//
// Nothing moves until the simulation is enabled, matching the desktop
// window.
//
// # Key Bindings
//
//	d     - Enable/disable the simulation
//	w     - Ramp wind on or off
//	t     - Cycle constraint tiers
//	+/-   - More/fewer relaxation passes
//	r     - Rebuild the sheet
//	q     - Quit
package viz
