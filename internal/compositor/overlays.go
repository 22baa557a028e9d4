package compositor

import (
	"image"
	"image/color"
	"math"

	"github.com/demoreel/demoreel/internal/config"
	"github.com/demoreel/demoreel/internal/geom"
)

// ClickEffect is one click-ring overlay instance, in source coordinates.
type ClickEffect struct {
	StartMs    int64
	DurationMs int64
	X, Y       float64
}

// KeyOverlay is the active key-badge window; it carries no label text since
// no glyph-rendering library is wired (see DESIGN.md) — the badge itself is
// a plain rounded-rectangle indicator.
type KeyOverlay struct {
	StartMs, EndMs int64
}

func easeOutCubic(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv*inv
}

// drawClickRing draws one click-ring effect at output coordinates (ox,oy),
// active iff frameTimeMs falls within [start, start+duration].
func drawClickRing(canvas *image.RGBA, ox, oy float64, effect ClickEffect, frameTimeMs int64, style config.ClickRing, zoom float64) {
	if frameTimeMs < effect.StartMs || frameTimeMs > effect.StartMs+effect.DurationMs || effect.DurationMs <= 0 {
		return
	}
	progress := float64(frameTimeMs-effect.StartMs) / float64(effect.DurationMs)
	eased := easeOutCubic(progress)

	col, err := parseHexColor(style.Color)
	if err != nil {
		return
	}
	radius := style.MaxRadius * zoom * eased
	ringAlpha := (1 - eased) * float64(col.A)
	fillAlpha := ringAlpha * 0.15

	minX, maxX := int(ox-radius-2), int(ox+radius+2)
	minY, maxY := int(oy-radius-2), int(oy+radius+2)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			d := math.Hypot(float64(x)-ox, float64(y)-oy)
			switch {
			case d <= radius:
				blendOver(canvas, x, y, withAlpha(col, fillAlpha))
			case d-radius <= 1.0:
				blendOver(canvas, x, y, withAlpha(col, ringAlpha*(1-(d-radius))))
			}
		}
	}
}

// drawKeyBadge draws a rounded-rectangle badge centered near the bottom of
// the output frame.
func drawKeyBadge(output *image.RGBA) {
	const badgeW, badgeH, margin, radius = 120.0, 48.0, 24.0, 12.0
	b := output.Bounds()
	cx := float64(b.Min.X+b.Max.X) / 2
	top := float64(b.Max.Y) - badgeH - margin
	rect := geom.Rect{Left: cx - badgeW/2, Top: top, Right: cx + badgeW/2, Bottom: top + badgeH}
	fillRoundedRect(output, rect, radius, color.RGBA{R: 20, G: 20, B: 20, A: 200})
}
