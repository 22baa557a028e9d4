package compositor

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demoreel/demoreel/internal/config"
	"github.com/demoreel/demoreel/internal/geom"
	"github.com/demoreel/demoreel/internal/zoom"
)

func testStyle() config.Style {
	s := config.Default().Style
	s.OutputWidth, s.OutputHeight = 320, 180
	s.CanvasWidth, s.CanvasHeight = 320, 180
	return s
}

func solidFrame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestNewCompositorSnapsToScreenCenterAtZoomOne(t *testing.T) {
	c, err := New(testStyle(), 1920, 1080, config.Default().Zoom, geom.Point{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.viewport.Zoom.Position)
	assert.Equal(t, 960.0, c.viewport.CenterX.Position)
	assert.Equal(t, 540.0, c.viewport.CenterY.Position)
	assert.Nil(t, c.prevComposed)
}

func TestComposeFrameProducesOutputSizedCanvas(t *testing.T) {
	style := testStyle()
	c, err := New(style, 1920, 1080, config.Default().Zoom, geom.Point{}, nil)
	require.NoError(t, err)

	raw := solidFrame(1920, 1080, color.RGBA{R: 100, G: 150, B: 200, A: 255})
	out := c.ComposeFrame(raw, 0, nil, nil, nil, 1.0/30)

	assert.Equal(t, style.CanvasWidth, out.Bounds().Dx())
	assert.Equal(t, style.CanvasHeight, out.Bounds().Dy())
}

func TestApplyKeyframeMovesViewportOverSuccessiveFrames(t *testing.T) {
	style := testStyle()
	c, err := New(style, 1920, 1080, config.Default().Zoom, geom.Point{}, nil)
	require.NoError(t, err)

	c.ApplyKeyframe(zoom.Keyframe{TargetX: 400, TargetY: 300, ZoomLevel: 2.0})

	raw := solidFrame(1920, 1080, color.RGBA{R: 10, G: 10, B: 10, A: 255})
	for i := 0; i < 60; i++ {
		c.ComposeFrame(raw, int64(i)*33, nil, nil, nil, 1.0/30)
	}

	assert.InDelta(t, 400, c.viewport.CenterX.Position, 5)
	assert.InDelta(t, 300, c.viewport.CenterY.Position, 5)
	assert.InDelta(t, 2.0, c.viewport.Zoom.Position, 0.05)
}

func TestRoundedCornersMakeCornerPixelTransparent(t *testing.T) {
	img := solidFrame(100, 100, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	applyRoundedCorners(img, 20)
	_, _, _, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), a)
	_, _, _, aCenter := img.At(50, 50).RGBA()
	assert.NotEqual(t, uint32(0), aCenter)
}

func TestClickRingOnlyActiveWithinDuration(t *testing.T) {
	canvas := image.NewRGBA(image.Rect(0, 0, 100, 100))
	style := config.Default().Style.ClickRing
	effect := ClickEffect{StartMs: 1000, DurationMs: 300, X: 50, Y: 50}

	before := cloneImage(canvas)
	drawClickRing(canvas, 50, 50, effect, 500, style, 1.0)
	assert.Equal(t, before.Pix, canvas.Pix)

	drawClickRing(canvas, 50, 50, effect, 1100, style, 1.0)
	assert.NotEqual(t, before.Pix, canvas.Pix)
}

func TestMotionBlurSkippedBelowThreshold(t *testing.T) {
	style := testStyle()
	style.MotionBlurEnabled = true
	c, err := New(style, 1920, 1080, config.Default().Zoom, geom.Point{}, nil)
	require.NoError(t, err)

	raw := solidFrame(1920, 1080, color.RGBA{R: 50, G: 50, B: 50, A: 255})
	first := c.ComposeFrame(raw, 0, nil, nil, nil, 1.0/30)
	firstCopy := cloneImage(first)

	second := c.ComposeFrame(raw, 33, nil, nil, nil, 1.0/30)
	assert.Equal(t, firstCopy.Pix, second.Pix)
}

func TestOutputPlacementCentersWithinCanvas(t *testing.T) {
	style := testStyle()
	style.CanvasWidth, style.CanvasHeight = 400, 300
	style.OutputWidth, style.OutputHeight = 320, 180
	c, err := New(style, 1920, 1080, config.Default().Zoom, geom.Point{}, nil)
	require.NoError(t, err)

	r := c.outputPlacement()
	assert.Equal(t, geom.Rect{Left: 40, Top: 60, Right: 360, Bottom: 240}, r)
}
