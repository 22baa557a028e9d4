// Package scenes groups thinned input events into spatially coherent
// scenes: contiguous time intervals worth zooming in on.
package scenes

import "github.com/demoreel/demoreel/internal/geom"

// ActivityPoint is a (t,x,y) sample derived from a single event, used to
// build scene bounding boxes.
type ActivityPoint struct {
	T    int64
	X, Y float64
}

// Scene is a closed time interval with a padded bounding box, center, and
// optimal zoom level. Scenes are always sorted by Start, are non-overlapping,
// and contain at least one activity point.
type Scene struct {
	ID         int
	Start, End int64
	BBox       geom.Rect
	Center     geom.Point
	Zoom       float64
	EventCount int
}
