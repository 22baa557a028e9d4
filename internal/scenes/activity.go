package scenes

import (
	"github.com/demoreel/demoreel/internal/config"
	"github.com/demoreel/demoreel/internal/events"
)

// ActivityPoints projects a thinned event stream down to the (t,x,y)
// samples scenes are built from. Clicks, releases, scrolls, and UI focuses
// contribute their own coordinates; key events borrow the last click/focus
// coordinate if it occurred within the configured borrow window, otherwise
// they are discarded.
func ActivityPoints(evts []events.Event, cfg config.Scene) []ActivityPoint {
	var points []ActivityPoint
	var lastX, lastY float64
	var lastCoordT int64
	haveLast := false

	for _, e := range evts {
		switch e.Type {
		case events.Click:
			points = append(points, ActivityPoint{T: e.T, X: e.X, Y: e.Y})
			lastX, lastY, lastCoordT = e.X, e.Y, e.T
			haveLast = true
		case events.ClickRelease, events.Scroll:
			points = append(points, ActivityPoint{T: e.T, X: e.X, Y: e.Y})
		case events.Focus, events.WindowFocus:
			x, y := e.X, e.Y
			if e.Rect != nil {
				x = (e.Rect.Left + e.Rect.Right) / 2
				y = (e.Rect.Top + e.Rect.Bottom) / 2
			}
			points = append(points, ActivityPoint{T: e.T, X: x, Y: y})
			lastX, lastY, lastCoordT = x, y, e.T
			haveLast = true
		case events.Key:
			if haveLast && e.T-lastCoordT <= cfg.KeyBorrowWindowMs {
				points = append(points, ActivityPoint{T: e.T, X: lastX, Y: lastY})
			}
		}
	}
	return points
}
