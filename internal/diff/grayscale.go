package diff

import (
	"fmt"
	"image/png"
	"os"
)

// grayFrame is a downsampled grayscale rendering of one captured frame.
type grayFrame struct {
	Pix    []byte
	Width  int
	Height int
}

// loadGraySubsampled decodes the PNG at path and nearest-neighbor downsamples
// it by factor while converting to 8-bit luminance, matching the spec's
// "grayscale at 1/downsample_factor resolution using nearest-neighbor" step.
func loadGraySubsampled(path string, factor int) (grayFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return grayFrame{}, fmt.Errorf("diff: opening %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return grayFrame{}, fmt.Errorf("diff: decoding %s: %w", path, err)
	}

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	dstW, dstH := srcW/factor, srcH/factor
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	out := grayFrame{Pix: make([]byte, dstW*dstH), Width: dstW, Height: dstH}
	for dy := 0; dy < dstH; dy++ {
		sy := bounds.Min.Y + dy*factor
		for dx := 0; dx < dstW; dx++ {
			sx := bounds.Min.X + dx*factor
			r, g, b, _ := img.At(sx, sy).RGBA()
			lum := (299*r + 587*g + 114*b) / 1000
			out.Pix[dy*dstW+dx] = byte(lum >> 8)
		}
	}
	return out, nil
}
