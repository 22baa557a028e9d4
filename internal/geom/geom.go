// Package geom holds the small rectangle/point types shared by the scene
// splitter, frame differencer, zoom planner, and compositor, so each stage
// converts between screen/source/output coordinates through the same shapes.
package geom

import (
	"encoding/json"
	"math"
)

// Point is a screen-space coordinate pair in pixels.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box in pixels, left/top inclusive, right/bottom exclusive.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// MarshalJSON encodes Rect as the [left,top,right,bottom] array the
// recording metadata schema uses for window_initial_rect.
func (r Rect) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{r.Left, r.Top, r.Right, r.Bottom})
}

// UnmarshalJSON decodes a [left,top,right,bottom] array into a Rect.
func (r *Rect) UnmarshalJSON(data []byte) error {
	var a [4]float64
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	r.Left, r.Top, r.Right, r.Bottom = a[0], a[1], a[2], a[3]
	return nil
}

// Width returns the rect's horizontal extent.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the rect's vertical extent.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Center returns the rect's midpoint.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Union returns the smallest rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

// Pad grows the rect by n pixels on every side.
func (r Rect) Pad(n float64) Rect {
	return Rect{Left: r.Left - n, Top: r.Top - n, Right: r.Right + n, Bottom: r.Bottom + n}
}

// Clamp confines the rect to lie within [0,maxW]x[0,maxH], preserving its
// dimensions when possible by sliding rather than shrinking it.
func (r Rect) Clamp(maxW, maxH float64) Rect {
	w, h := r.Width(), r.Height()
	if w > maxW {
		w = maxW
	}
	if h > maxH {
		h = maxH
	}
	left := r.Left
	top := r.Top
	if left < 0 {
		left = 0
	}
	if top < 0 {
		top = 0
	}
	if left+w > maxW {
		left = maxW - w
	}
	if top+h > maxH {
		top = maxH - h
	}
	return Rect{Left: left, Top: top, Right: left + w, Bottom: top + h}
}

// MinSize grows the rect about its center so each dimension is at least minW/minH.
func (r Rect) MinSize(minW, minH float64) Rect {
	c := r.Center()
	w, h := r.Width(), r.Height()
	if w < minW {
		w = minW
	}
	if h < minH {
		h = minH
	}
	return Rect{Left: c.X - w/2, Top: c.Y - h/2, Right: c.X + w/2, Bottom: c.Y + h/2}
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Hypot(dx, dy)
}

// TimedPoint is a (t,x,y) sample, the shape shared by raw and smoothed
// cursor trajectories.
type TimedPoint struct {
	T int64
	X, Y float64
}

// ChangeRegion is a frame-differencer result: a bounding box of changed
// pixels timestamped at the midpoint of the frame pair that produced it.
// It lives here, rather than in the differencer's own package, so both the
// scene splitter and the zoom planner can consume it without depending on
// the differencer package itself.
type ChangeRegion struct {
	TimeMs        int64
	BBox          Rect
	ChangedPixels int
}

// Clamp confines v to [lo,hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
