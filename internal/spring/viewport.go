package spring

import "github.com/demoreel/demoreel/internal/geom"

// TargetPolicy picks the implicit half-life bucket for SetTarget when the
// caller does not supply an explicit spring hint.
type TargetPolicy int

const (
	// ZoomIn is used when the new target zoom exceeds the current target zoom.
	ZoomIn TargetPolicy = iota
	// ZoomOut is used otherwise.
	ZoomOut
)

// HalfLives is a (zoom, pan) half-life pair in seconds, as carried by a
// zoom keyframe's spring hint.
type HalfLives struct {
	Zoom float64
	Pan  float64
}

// Viewport composes three scalar springs (center_x, center_y, zoom) into the
// animated view rectangle the compositor crops each frame from.
type Viewport struct {
	CenterX Scalar
	CenterY Scalar
	Zoom    Scalar

	screenW, screenH float64

	zoomInHalfLives  HalfLives
	zoomOutHalfLives HalfLives
	lastHalfLives    HalfLives
}

// NewViewport returns a viewport snapped to the screen center at zoom 1,
// using zoomIn/zoomOut as the implicit half-lives for SetTarget.
func NewViewport(screenW, screenH float64, zoomIn, zoomOut HalfLives) *Viewport {
	v := &Viewport{
		screenW: screenW, screenH: screenH,
		zoomInHalfLives: zoomIn, zoomOutHalfLives: zoomOut,
		lastHalfLives: zoomIn,
	}
	v.Snap(screenW/2, screenH/2, 1.0)
	return v
}

// Snap hard-sets the viewport with no transition.
func (v *Viewport) Snap(x, y, zoom float64) {
	v.CenterX.Snap(x)
	v.CenterY.Snap(y)
	v.Zoom.Snap(zoom)
}

// SetTarget retargets all three springs, picking zoom-in or zoom-out
// half-lives depending on whether the new zoom target increases or
// decreases relative to the spring's current target.
func (v *Viewport) SetTarget(x, y, zoom float64) {
	hl := v.zoomOutHalfLives
	if zoom > v.Zoom.Target {
		hl = v.zoomInHalfLives
	}
	v.SetTargetWithHalfLife(x, y, zoom, hl)
}

// SetTargetWithHalfLife retargets all three springs using an explicit
// half-life pair, as supplied by a zoom keyframe's spring hint.
func (v *Viewport) SetTargetWithHalfLife(x, y, zoom float64, hl HalfLives) {
	v.CenterX.SetTarget(x)
	v.CenterY.SetTarget(y)
	v.Zoom.SetTarget(zoom)
	v.lastHalfLives = hl
}

// Update advances all three springs by dt seconds using the half-lives from
// the most recent SetTarget/SetTargetWithHalfLife call.
func (v *Viewport) Update(dt float64) {
	v.CenterX.Update(v.lastHalfLives.Pan, dt)
	v.CenterY.Update(v.lastHalfLives.Pan, dt)
	v.Zoom.Update(v.lastHalfLives.Zoom, dt)
}

// ViewRect returns the current clamped view rectangle on the raw frame.
func (v *Viewport) ViewRect() geom.Rect {
	zoom := v.Zoom.Position
	if zoom < 1 {
		zoom = 1
	}
	w := v.screenW / zoom
	h := v.screenH / zoom
	left := v.CenterX.Position - w/2
	top := v.CenterY.Position - h/2

	if left < 0 {
		left = 0
	}
	if top < 0 {
		top = 0
	}
	if left+w > v.screenW {
		left = v.screenW - w
	}
	if top+h > v.screenH {
		top = v.screenH - h
	}
	return geom.Rect{Left: left, Top: top, Right: left + w, Bottom: top + h}
}

// ToOutputCoords maps a screen-space point to the output-canvas point given
// the current view rectangle and output dimensions.
func (v *Viewport) ToOutputCoords(sx, sy float64, outputW, outputH float64) (float64, float64) {
	r := v.ViewRect()
	ox := (sx - r.Left) / r.Width() * outputW
	oy := (sy - r.Top) / r.Height() * outputH
	return ox, oy
}
