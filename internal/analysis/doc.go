// Package analysis derives epidemic indicators from an integrated trajectory.
//
//   - [Summarize]: reproduction number, peak, final sizes, herd threshold
//   - [PhasePortrait]: two compartments plotted against each other
//   - [PhasePortraitToASCII]: terminal rendering of a portrait
//
// # Example
//
//	sum := analysis.Summarize(traj, params)
//	fmt.Printf("peak %.3f on day %.0f\n", sum.PeakInfected, sum.PeakDay)
package analysis
