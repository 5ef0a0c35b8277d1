// Package viz renders tracking runs in the terminal.
//
// The package holds the drawing primitives shared by the live TUI and the
// exporters:
//
//   - [Canvas]: Braille-based pixel canvas
//   - [Viewport]: aspect-preserving world-frame to canvas mapping
//   - [ErrorChart]: ASCII line charts for recorded series
//   - [SparklineChart], [ProgressBar]: compact one-line indicators
//
// # Coordinates
//
// World coordinates are meters with y pointing up. A viewport fitted to
// the reference path keeps the robot and the path in view:
//
//	vp := viz.FitViewport(canvas, refPoses, 0.1)
//	vp.DrawPath(canvas, refPoses)
//	vp.DrawRobot(canvas, pose)
package viz
