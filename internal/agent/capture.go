package agent

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	vidio "github.com/AlexEidt/Vidio"
)

// runCapture reads desktop frames off the screen device at the configured
// target fps and writes them as sequentially numbered PNGs, until ctx is
// cancelled.
func (s *Session) runCapture(ctx context.Context) {
	fps := s.cfg.TargetFPS
	if fps <= 0 {
		fps = 30
	}

	screen, err := vidio.NewScreen(0, 0, 0, 0, fps)
	if err != nil {
		return
	}
	defer screen.Close()

	s.mu.Lock()
	s.screenW = screen.Width()
	s.screenH = screen.Height()
	s.mu.Unlock()

	buf := make([]byte, screen.Width()*screen.Height()*3)
	index := 0

	for screen.Read() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		copy(buf, screen.FrameBuffer())
		img := rgbBufferToImage(buf, screen.Width(), screen.Height())
		if err := writeFrame(s.outputDir, index, img); err == nil {
			index++
		}

		s.mu.Lock()
		s.frameCount = index
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func rgbBufferToImage(buf []byte, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		si := i * 3
		di := i * 4
		img.Pix[di] = buf[si]
		img.Pix[di+1] = buf[si+1]
		img.Pix[di+2] = buf[si+2]
		img.Pix[di+3] = 255
	}
	return img
}

func writeFrame(outputDir string, index int, img image.Image) error {
	path := filepath.Join(outputDir, "frames", fmt.Sprintf("frame_%08d.png", index))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
