// Package viz replays a trajectory in the terminal.
//
// [Replay] is a Bubble Tea model that advances one day per tick and draws
// the three compartments on braille [Canvas] layers, with an infected
// sparkline underneath. Playback loops until the user quits.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from day 0
//	+/-   - Faster/slower
//	Q     - Quit
package viz
