package orchestrator

import (
	"github.com/demoreel/demoreel/internal/events"
	"github.com/demoreel/demoreel/internal/geom"
	"github.com/demoreel/demoreel/internal/recording"
)

// toSourceSpace converts screen-space metadata and events into source
// space (spec.md §9: "source = screen minus window offset in window
// mode"). Outside window mode it is the identity. In window mode, the
// source origin is the window's initial top-left, and the source "screen"
// dimensions become the window's own width/height, so every downstream
// stage (scenes, zoom planner, compositor) can treat source space as the
// full frame to avoid zooming past the window's edge.
func toSourceSpace(meta recording.Meta, evts []events.Event) (recording.Meta, []events.Event, geom.Point) {
	if meta.RecordingMode != recording.ModeWindow {
		return meta, evts, geom.Point{}
	}

	offset := geom.Point{X: meta.WindowInitialRect.Left, Y: meta.WindowInitialRect.Top}

	sourceMeta := meta
	sourceMeta.ScreenWidth = int(meta.WindowInitialRect.Width())
	sourceMeta.ScreenHeight = int(meta.WindowInitialRect.Height())
	sourceMeta.WindowInitialRect = geom.Rect{
		Left: 0, Top: 0,
		Right: meta.WindowInitialRect.Width(), Bottom: meta.WindowInitialRect.Height(),
	}

	translated := make([]events.Event, len(evts))
	for i, e := range evts {
		if e.HasCoords() {
			e.X -= offset.X
			e.Y -= offset.Y
		}
		if e.Rect != nil {
			r := *e.Rect
			r.Left -= offset.X
			r.Right -= offset.X
			r.Top -= offset.Y
			r.Bottom -= offset.Y
			e.Rect = &r
		}
		translated[i] = e
	}

	return sourceMeta, translated, offset
}
