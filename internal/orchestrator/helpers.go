package orchestrator

import (
	"image"
	"image/png"
	"io"
	"sort"

	"github.com/demoreel/demoreel/internal/compositor"
	"github.com/demoreel/demoreel/internal/events"
	"github.com/demoreel/demoreel/internal/geom"
)

func encodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// trajectoryFromEvents extracts a (t,x,y) cursor trajectory from any
// coordinate-bearing event, sorted by time. Both the differencer's cursor
// exclusion and the cursor smoother consume this same representative
// trajectory.
func trajectoryFromEvents(evts []events.Event) []geom.TimedPoint {
	var pts []geom.TimedPoint
	for _, e := range evts {
		if e.HasCoords() {
			pts = append(pts, geom.TimedPoint{T: e.T, X: e.X, Y: e.Y})
		}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].T < pts[j].T })
	return pts
}

// cursorAt returns the trajectory's last position at or before t (the first
// sample when t precedes the whole trajectory), or nil if the trajectory is
// empty.
func cursorAt(traj []geom.TimedPoint, t int64) *geom.Point {
	if len(traj) == 0 {
		return nil
	}
	idx := sort.Search(len(traj), func(i int) bool { return traj[i].T > t })
	if idx == 0 {
		p := geom.Point{X: traj[0].X, Y: traj[0].Y}
		return &p
	}
	p := geom.Point{X: traj[idx-1].X, Y: traj[idx-1].Y}
	return &p
}

func buildClickEffects(evts []events.Event, durationMs int64) []compositor.ClickEffect {
	var out []compositor.ClickEffect
	for _, e := range evts {
		if e.Type != events.Click {
			continue
		}
		out = append(out, compositor.ClickEffect{StartMs: e.T, DurationMs: durationMs, X: e.X, Y: e.Y})
	}
	return out
}

func activeClickEffects(clicks []compositor.ClickEffect, frameTimeMs int64) []compositor.ClickEffect {
	var out []compositor.ClickEffect
	for _, c := range clicks {
		if frameTimeMs >= c.StartMs && frameTimeMs <= c.StartMs+c.DurationMs {
			out = append(out, c)
		}
	}
	return out
}

const keyOverlayWindowMs = 600

// buildKeyOverlays turns each key-press event into a fixed-duration badge
// window, merging overlapping windows from rapid successive keys into one.
func buildKeyOverlays(evts []events.Event) []compositor.KeyOverlay {
	var out []compositor.KeyOverlay
	for _, e := range evts {
		if e.Type != events.Key {
			continue
		}
		start, end := e.T, e.T+keyOverlayWindowMs
		if n := len(out); n > 0 && start <= out[n-1].EndMs {
			out[n-1].EndMs = end
			continue
		}
		out = append(out, compositor.KeyOverlay{StartMs: start, EndMs: end})
	}
	return out
}

func activeKeyOverlay(keys []compositor.KeyOverlay, frameTimeMs int64) *compositor.KeyOverlay {
	for i := range keys {
		if frameTimeMs >= keys[i].StartMs && frameTimeMs <= keys[i].EndMs {
			return &keys[i]
		}
	}
	return nil
}
