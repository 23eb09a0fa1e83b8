// Package vision derives per-object attributes from raw detection boxes:
// dominant colour and its palette name, relative size class and the coarse
// 3x3 zone of the box centre.
//
// # Coordinate System
//
// Boxes are axis-aligned rectangles (xmin, ymin, xmax, ymax) with the origin at
// the top-left corner. The same functions accept pixel-space boxes and
// normalised (0..1) boxes; callers pass the matching width and height.
//
// # Failure Policy
//
// Colour extraction never fails: an empty or unreadable crop degrades to black.
// Geometry functions are total for any positive width and height.
package vision
