// Package compositor renders one composed output frame per tick: viewport
// crop/scale, cursor sprite, click rings, key badge, rounded corners,
// background, drop shadow, and optional motion blur (spec.md §4.7).
package compositor

import (
	"image"
	stddraw "image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"go.uber.org/zap"

	"github.com/demoreel/demoreel/internal/config"
	"github.com/demoreel/demoreel/internal/geom"
	"github.com/demoreel/demoreel/internal/spring"
	"github.com/demoreel/demoreel/internal/zoom"
)

// Compositor holds per-run state: the animated viewport, the cached
// background, the cursor sprite, and the previously composed frame (for
// motion blur). State never rewinds once a run starts.
type Compositor struct {
	style            config.Style
	screenW, screenH float64

	viewport     *spring.Viewport
	cursorSprite image.Image
	background   *image.RGBA
	prevComposed *image.RGBA
	lastCenter   geom.Point
	lastZoom     float64

	// sourceOffset is the source-space origin's position in screen
	// (raw-capture) coordinates: zero in display mode, the window's
	// initial top-left in window mode. Every viewport/cursor/click
	// coordinate the compositor receives is in source space; raw
	// captured frames stay in screen space, so the crop step alone
	// converts back by adding this offset.
	sourceOffset geom.Point

	logger *zap.Logger
}

// New constructs a compositor for a source-space canvas of the given
// dimensions, snapped to (center, zoom=1) with no cached background and
// no previous frame. sourceOffset is the source origin's position in the
// raw capture's screen coordinates (zero outside window mode).
func New(style config.Style, screenW, screenH int, zoomCfg config.Zoom, sourceOffset geom.Point, logger *zap.Logger) (*Compositor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sprite, err := loadOrBuildCursorSprite(style)
	if err != nil {
		return nil, err
	}
	vp := spring.NewViewport(float64(screenW), float64(screenH),
		spring.HalfLives{Zoom: zoomCfg.ZoomIn.Zoom, Pan: zoomCfg.ZoomIn.Pan},
		spring.HalfLives{Zoom: zoomCfg.ZoomOut.Zoom, Pan: zoomCfg.ZoomOut.Pan},
	)
	return &Compositor{
		style:        style,
		screenW:      float64(screenW),
		screenH:      float64(screenH),
		viewport:     vp,
		cursorSprite: sprite,
		lastZoom:     1.0,
		sourceOffset: sourceOffset,
		logger:       logger,
	}, nil
}

// ApplyKeyframe updates the viewport's spring targets, using the
// keyframe's spring hint for the half-lives.
func (c *Compositor) ApplyKeyframe(kf zoom.Keyframe) {
	c.viewport.SetTargetWithHalfLife(kf.TargetX, kf.TargetY, kf.ZoomLevel, kf.SpringHint)
}

// ComposeFrame renders one output frame from a raw captured frame.
func (c *Compositor) ComposeFrame(raw image.Image, frameTimeMs int64, cursorXY *geom.Point, clicks []ClickEffect, key *KeyOverlay, dt float64) *image.RGBA {
	c.viewport.Update(dt)

	viewRect := c.viewport.ViewRect()
	screenRect := geom.Rect{
		Left: viewRect.Left + c.sourceOffset.X, Top: viewRect.Top + c.sourceOffset.Y,
		Right: viewRect.Right + c.sourceOffset.X, Bottom: viewRect.Bottom + c.sourceOffset.Y,
	}
	cropped := cropImage(raw, screenRect)

	output := image.NewRGBA(image.Rect(0, 0, c.style.OutputWidth, c.style.OutputHeight))
	xdraw.BiLinear.Scale(output, output.Bounds(), cropped, cropped.Bounds(), stddraw.Over, nil)

	if cursorXY != nil {
		c.drawCursor(output, *cursorXY)
	}
	for _, effect := range clicks {
		ox, oy := c.viewport.ToOutputCoords(effect.X, effect.Y, float64(c.style.OutputWidth), float64(c.style.OutputHeight))
		drawClickRing(output, ox, oy, effect, frameTimeMs, c.style.ClickRing, c.viewport.Zoom.Position)
	}
	if key != nil && frameTimeMs >= key.StartMs && frameTimeMs <= key.EndMs {
		drawKeyBadge(output)
	}

	applyRoundedCorners(output, c.style.BorderRadius)

	canvas := c.backgroundFrame()
	outputRect := c.outputPlacement()
	drawDropShadow(canvas, outputRect, c.style.BorderRadius, c.style.Shadow)
	compositeImage(canvas, output, int(outputRect.Left), int(outputRect.Top), 1.0)

	c.applyMotionBlur(canvas)

	c.prevComposed = canvas
	c.lastCenter = geom.Point{X: c.viewport.CenterX.Position, Y: c.viewport.CenterY.Position}
	c.lastZoom = c.viewport.Zoom.Position

	return canvas
}

func (c *Compositor) drawCursor(output *image.RGBA, pos geom.Point) {
	ox, oy := c.viewport.ToOutputCoords(pos.X, pos.Y, float64(c.style.OutputWidth), float64(c.style.OutputHeight))
	scale := c.style.CursorSizeMultiplier * c.viewport.Zoom.Position

	baseW := c.cursorSprite.Bounds().Dx()
	scaledW := int(float64(baseW) * scale)
	if scaledW < 1 {
		scaledW = 1
	}
	scaled := resizeSprite(c.cursorSprite, scaledW)

	hotspotX := float64(scaled.Bounds().Dx()) / 2
	hotspotY := float64(scaled.Bounds().Dy()) / 2
	compositeImage(output, scaled, int(ox-hotspotX), int(oy-hotspotY), 1.0)
}

func (c *Compositor) backgroundFrame() *image.RGBA {
	if c.background == nil {
		c.background = buildBackground(c.style)
	}
	return cloneImage(c.background)
}

func (c *Compositor) outputPlacement() geom.Rect {
	left := float64(c.style.CanvasWidth-c.style.OutputWidth) / 2
	top := float64(c.style.CanvasHeight-c.style.OutputHeight) / 2
	return geom.Rect{
		Left: left, Top: top,
		Right: left + float64(c.style.OutputWidth), Bottom: top + float64(c.style.OutputHeight),
	}
}

func (c *Compositor) applyMotionBlur(current *image.RGBA) {
	if !c.style.MotionBlurEnabled || c.prevComposed == nil {
		return
	}
	if current.Bounds() != c.prevComposed.Bounds() {
		c.logger.Warn("skipping motion blur: composed frame bounds changed mid-run",
			zap.Stringer("current", current.Bounds()), zap.Stringer("previous", c.prevComposed.Bounds()))
		return
	}
	dCenter := geom.Dist(geom.Point{X: c.viewport.CenterX.Position, Y: c.viewport.CenterY.Position}, c.lastCenter)
	screenDiag := math.Hypot(c.screenW, c.screenH)
	if screenDiag == 0 {
		return
	}
	motion := dCenter/screenDiag + math.Abs(c.viewport.Zoom.Position-c.lastZoom)
	if motion <= 0.005 {
		return
	}
	weight := math.Min(motion*3, 0.35)
	for i := range current.Pix {
		current.Pix[i] = clampByte(float64(current.Pix[i])*(1-weight) + float64(c.prevComposed.Pix[i])*weight)
	}
}

func cropImage(raw image.Image, r geom.Rect) image.Image {
	bounds := image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom))
	if sub, ok := raw.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(bounds)
	}
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	stddraw.Draw(dst, dst.Bounds(), raw, bounds.Min, stddraw.Src)
	return dst
}
