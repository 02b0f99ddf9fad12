// Package anim replays a trajectory frame by frame and writes the result
// as an animated artifact.
//
// A [Driver] walks the prefix lengths 1..n of a trajectory, draws each one
// on a [render.Surface] and hands the image to an [Encoder]. Encoders are
// chosen by file extension with [Open]:
//
//	.gif  animated GIF, looping forever when Options.Repeat is set
//	.avi  Motion JPEG video
//
// Saving is one-shot: once the artifact is finalized the driver is Done and
// further saves return [ErrFinalized].
package anim
