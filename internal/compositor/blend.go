package compositor

import (
	"image"
	"image/color"
	"math"

	"github.com/demoreel/demoreel/internal/config"
	"github.com/demoreel/demoreel/internal/geom"
)

// blendOver composites src (straight alpha) onto dst at (x,y) using
// src-over. Numeric rounding truncates toward zero after clamp, per the
// pipeline's determinism rule for pixel math.
func blendOver(dst *image.RGBA, x, y int, src color.RGBA) {
	if src.A == 0 {
		return
	}
	b := dst.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	idx := dst.PixOffset(x, y)
	dr, dg, db, da := dst.Pix[idx], dst.Pix[idx+1], dst.Pix[idx+2], dst.Pix[idx+3]

	sa := float64(src.A) / 255
	daF := float64(da) / 255
	outA := sa + daF*(1-sa)
	if outA == 0 {
		dst.Pix[idx+3] = 0
		return
	}

	mix := func(sc, dc uint8) uint8 {
		scF := float64(sc) / 255
		dcF := float64(dc) / 255
		v := (scF*sa + dcF*daF*(1-sa)) / outA
		return clampByte(v * 255)
	}
	dst.Pix[idx] = mix(src.R, dr)
	dst.Pix[idx+1] = mix(src.G, dg)
	dst.Pix[idx+2] = mix(src.B, db)
	dst.Pix[idx+3] = clampByte(outA * 255)
}

func clampByte(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// compositeImage blends src onto dst at offset (ox,oy), scaling src's own
// alpha by opacity.
func compositeImage(dst *image.RGBA, src image.Image, ox, oy int, opacity float64) {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			c := color.RGBA{
				R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8),
				A: clampByte(float64(a>>8) * opacity),
			}
			blendOver(dst, ox+(x-b.Min.X), oy+(y-b.Min.Y), c)
		}
	}
}

// applyRoundedCorners anti-aliases the four corners of img in place: pixels
// inside the rounding circle keep full alpha, a half-pixel ring is
// anti-aliased, and pixels outside the circle go transparent.
func applyRoundedCorners(img *image.RGBA, radius float64) {
	if radius <= 0 {
		return
	}
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	type corner struct {
		cx, cy float64
		inSet  func(x, y float64) bool
	}
	corners := []corner{
		{radius, radius, func(x, y float64) bool { return x < radius && y < radius }},
		{w - radius, radius, func(x, y float64) bool { return x >= w-radius && y < radius }},
		{radius, h - radius, func(x, y float64) bool { return x < radius && y >= h-radius }},
		{w - radius, h - radius, func(x, y float64) bool { return x >= w-radius && y >= h-radius }},
	}

	for py := 0; py < b.Dy(); py++ {
		for px := 0; px < b.Dx(); px++ {
			x, y := float64(px)+0.5, float64(py)+0.5
			for _, c := range corners {
				if !c.inSet(x, y) {
					continue
				}
				d := math.Hypot(x-c.cx, y-c.cy)
				scale := geom.Clamp(radius+0.5-d, 0, 1)
				idx := img.PixOffset(b.Min.X+px, b.Min.Y+py)
				img.Pix[idx+3] = uint8(float64(img.Pix[idx+3]) * scale)
				break
			}
		}
	}
}

// roundedRectSDF returns the signed distance from (px,py) to the boundary
// of a rounded rect: negative inside, positive outside.
func roundedRectSDF(px, py float64, r geom.Rect, radius float64) float64 {
	cx, cy := (r.Left+r.Right)/2, (r.Top+r.Bottom)/2
	halfW := r.Width()/2 - radius
	halfH := r.Height()/2 - radius
	qx := math.Abs(px-cx) - halfW
	qy := math.Abs(py-cy) - halfH
	outside := math.Hypot(math.Max(qx, 0), math.Max(qy, 0)) - radius
	inside := math.Min(math.Max(qx, qy), 0)
	return outside + inside
}

func fillRoundedRect(canvas *image.RGBA, rect geom.Rect, radius float64, col color.RGBA) {
	for y := int(rect.Top); y < int(rect.Bottom); y++ {
		for x := int(rect.Left); x < int(rect.Right); x++ {
			d := roundedRectSDF(float64(x)+0.5, float64(y)+0.5, rect, radius)
			if d > 0.5 {
				continue
			}
			a := geom.Clamp(0.5-d, 0, 1) * float64(col.A)
			blendOver(canvas, x, y, withAlpha(col, a))
		}
	}
}

func drawDropShadow(canvas *image.RGBA, rect geom.Rect, radius float64, shadow config.Shadow) {
	if !shadow.Enabled || shadow.Blur <= 0 {
		return
	}
	col, err := parseHexColor("#000000")
	if err != nil {
		return
	}
	offRect := geom.Rect{Left: rect.Left, Top: rect.Top + shadow.OffsetY, Right: rect.Right, Bottom: rect.Bottom + shadow.OffsetY}

	margin := int(shadow.Blur)
	minX, maxX := int(offRect.Left)-margin, int(offRect.Right)+margin
	minY, maxY := int(offRect.Top)-margin, int(offRect.Bottom)+margin

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			d := roundedRectSDF(float64(x)+0.5, float64(y)+0.5, offRect, radius)
			if d <= 0 || d > shadow.Blur {
				continue
			}
			t := d / shadow.Blur
			falloff := (1 - t) * (1 - t)
			a := shadow.Opacity * falloff
			blendOver(canvas, x, y, withAlpha(col, a*255))
		}
	}
}
