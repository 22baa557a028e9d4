package compositor

import (
	"image"
	stddraw "image/draw"
	"math"

	"github.com/demoreel/demoreel/internal/config"
	"github.com/demoreel/demoreel/internal/geom"
)

// buildBackground renders the canvas background once per compositor
// lifetime: solid, a 2-color linear gradient at the configured angle, or
// transparent.
func buildBackground(style config.Style) *image.RGBA {
	w, h := style.CanvasWidth, style.CanvasHeight
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	switch style.Background.Kind {
	case "transparent":
		return img
	case "solid":
		col, err := parseHexColor(style.Background.ColorA)
		if err != nil {
			return img
		}
		stddraw.Draw(img, img.Bounds(), &image.Uniform{C: col}, image.Point{}, stddraw.Src)
	default: // "gradient"
		a, errA := parseHexColor(style.Background.ColorA)
		b, errB := parseHexColor(style.Background.ColorB)
		if errA != nil || errB != nil {
			return img
		}
		angle := style.Background.AngleDeg * math.Pi / 180
		dx, dy := math.Cos(angle), math.Sin(angle)
		span := float64(w)*math.Abs(dx) + float64(h)*math.Abs(dy)
		if span == 0 {
			span = 1
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				t := geom.Clamp((float64(x)*dx+float64(y)*dy)/span, 0, 1)
				img.Set(x, y, lerpColor(a, b, t))
			}
		}
	}
	return img
}

func cloneImage(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
