package zoom

import (
	"github.com/demoreel/demoreel/internal/geom"
	"github.com/demoreel/demoreel/internal/recording"
)

// overviewTarget returns the Overview state's (x,y,zoom): full screen in
// display mode, or the recorded window's initial rect fit with 5% padding
// in window mode.
func overviewTarget(meta recording.Meta, maxZoom float64) (x, y, zoom float64) {
	if meta.RecordingMode != recording.ModeWindow {
		return float64(meta.ScreenWidth) / 2, float64(meta.ScreenHeight) / 2, 1.0
	}

	r := meta.WindowInitialRect
	padX := r.Width() * 0.05
	padY := r.Height() * 0.05
	padded := geom.Rect{Left: r.Left - padX, Top: r.Top - padY, Right: r.Right + padX, Bottom: r.Bottom + padY}

	c := padded.Center()
	zx := float64(meta.ScreenWidth) / padded.Width()
	zy := float64(meta.ScreenHeight) / padded.Height()
	z := zx
	if zy < z {
		z = zy
	}
	return c.X, c.Y, geom.Clamp(z, 1.0, maxZoom)
}
