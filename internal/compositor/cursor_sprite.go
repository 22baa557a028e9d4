package compositor

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/demoreel/demoreel/internal/config"
)

func loadOrBuildCursorSprite(style config.Style) (image.Image, error) {
	if style.CursorSpritePath == "" {
		return buildDefaultCursorSprite(), nil
	}
	img, err := imaging.Open(style.CursorSpritePath)
	if err != nil {
		return nil, fmt.Errorf("compositor: loading cursor sprite %s: %w", style.CursorSpritePath, err)
	}
	return img, nil
}

// resizeSprite scales the cursor sprite to the given width, preserving
// aspect ratio, using a high-quality filter since the sprite is small and
// resized every frame.
func resizeSprite(img image.Image, width int) image.Image {
	if width == img.Bounds().Dx() {
		return img
	}
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// buildDefaultCursorSprite draws a simple filled circle with a dark ring,
// used when no custom sprite is configured.
func buildDefaultCursorSprite() image.Image {
	const size = 24
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := float64(size) / 2
	fill := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ring := color.RGBA{R: 20, G: 20, B: 20, A: 255}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-center, float64(y)+0.5-center)
			switch {
			case d <= center-2:
				img.Set(x, y, fill)
			case d <= center:
				img.Set(x, y, ring)
			}
		}
	}
	return img
}
