package zoom

import (
	"testing"

	"github.com/demoreel/demoreel/internal/config"
	"github.com/demoreel/demoreel/internal/geom"
	"github.com/demoreel/demoreel/internal/recording"
	"github.com/demoreel/demoreel/internal/scenes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMeta() recording.Meta {
	return recording.Meta{ScreenWidth: 1920, ScreenHeight: 1080, FPS: 30, DurationMs: 3000}
}

func TestEmptyEventsProducesOnlyOverviewKeyframe(t *testing.T) {
	kfs := Plan(nil, testMeta(), config.Default().Zoom, nil)
	require.Len(t, kfs, 1)
	assert.Equal(t, int64(0), kfs[0].TimeMs)
	assert.Equal(t, SpringOut, kfs[0].Transition)
	assert.Equal(t, 1.0, kfs[0].ZoomLevel)
	assert.InDelta(t, 960, kfs[0].TargetX, 0.001)
	assert.InDelta(t, 540, kfs[0].TargetY, 0.001)
}

func TestSingleClickProducesOverviewThenSpringIn(t *testing.T) {
	scs := []scenes.Scene{{ID: 0, Start: 500, End: 500, BBox: geom.Rect{Left: 420, Top: 220, Right: 580, Bottom: 380}, Center: geom.Point{X: 500, Y: 300}, Zoom: 2.0, EventCount: 1}}
	meta := testMeta()
	meta.DurationMs = 3000
	kfs := Plan(scs, meta, config.Default().Zoom, nil)
	require.Len(t, kfs, 2)
	assert.Equal(t, int64(0), kfs[0].TimeMs)
	assert.Equal(t, SpringIn, kfs[1].Transition)
	assert.GreaterOrEqual(t, kfs[1].TimeMs, int64(0))
	assert.Less(t, kfs[1].TimeMs, int64(500))
}

func TestTwoScenesWithLongIdleEmitsOverviewBetween(t *testing.T) {
	scs := []scenes.Scene{
		{ID: 0, Start: 0, End: 500, BBox: geom.Rect{Left: 300, Top: 200, Right: 700, Bottom: 400}, Center: geom.Point{X: 500, Y: 300}, Zoom: 2.0},
		{ID: 1, Start: 10000, End: 10000, BBox: geom.Rect{Left: 1400, Top: 700, Right: 1600, Bottom: 900}, Center: geom.Point{X: 1500, Y: 800}, Zoom: 2.0},
	}
	meta := testMeta()
	meta.DurationMs = 12000
	cfg := config.Default().Zoom
	cfg.IdleZoomOutMs = 5000

	kfs := Plan(scs, meta, cfg, nil)

	var sawOverviewBetween bool
	for _, k := range kfs {
		if k.Transition == SpringOut && k.TimeMs > 500 && k.TimeMs < 9500 {
			sawOverviewBetween = true
		}
	}
	assert.True(t, sawOverviewBetween, "expected an Overview keyframe in the idle gap")
}

func TestChangeRegionInGapSuppressesOverview(t *testing.T) {
	scs := []scenes.Scene{
		{ID: 0, Start: 0, End: 500, BBox: geom.Rect{Left: 300, Top: 200, Right: 700, Bottom: 400}, Center: geom.Point{X: 500, Y: 300}, Zoom: 2.0},
		{ID: 1, Start: 10000, End: 10000, BBox: geom.Rect{Left: 1400, Top: 700, Right: 1600, Bottom: 900}, Center: geom.Point{X: 1500, Y: 800}, Zoom: 2.0},
	}
	meta := testMeta()
	meta.DurationMs = 12000
	cfg := config.Default().Zoom
	cfg.IdleZoomOutMs = 5000
	regions := []geom.ChangeRegion{{TimeMs: 5000, BBox: geom.Rect{Left: 400, Top: 200, Right: 700, Bottom: 400}}}

	kfs := Plan(scs, meta, cfg, regions)

	for _, k := range kfs {
		assert.False(t, k.Transition == SpringOut && k.TimeMs > 500 && k.TimeMs < 9500,
			"no Overview keyframe should be emitted in a gap containing a change region")
	}
}

func TestKeyframesAreSortedAndRespectMinInterval(t *testing.T) {
	scs := []scenes.Scene{
		{ID: 0, Start: 2000, End: 2100, Center: geom.Point{X: 500, Y: 300}, Zoom: 1.5},
		{ID: 1, Start: 2150, End: 2200, Center: geom.Point{X: 510, Y: 310}, Zoom: 1.6},
	}
	cfg := config.Default().Zoom
	kfs := Plan(scs, testMeta(), cfg, nil)
	for i := 1; i < len(kfs); i++ {
		assert.GreaterOrEqual(t, kfs[i].TimeMs, kfs[i-1].TimeMs)
		assert.GreaterOrEqual(t, kfs[i].TimeMs-kfs[i-1].TimeMs, cfg.MinKeyframeIntervalMs)
	}
}

func TestWindowModeClampsZoomToOverview(t *testing.T) {
	meta := testMeta()
	meta.RecordingMode = recording.ModeWindow
	meta.WindowInitialRect = geom.Rect{Left: 100, Top: 100, Right: 900, Bottom: 700}
	scs := []scenes.Scene{{ID: 0, Start: 100, End: 100, Center: geom.Point{X: 500, Y: 400}, Zoom: 10.0}}
	cfg := config.Default().Zoom
	kfs := Plan(scs, meta, cfg, nil)
	_, _, ozoom := overviewTarget(meta, cfg.MaxZoom)
	for _, k := range kfs {
		if k.Transition != SpringOut {
			assert.LessOrEqual(t, k.ZoomLevel, ozoom)
		}
	}
}
