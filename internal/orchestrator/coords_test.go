package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/demoreel/demoreel/internal/events"
	"github.com/demoreel/demoreel/internal/geom"
	"github.com/demoreel/demoreel/internal/recording"
)

func TestToSourceSpaceIsIdentityInDisplayMode(t *testing.T) {
	meta := recording.Meta{ScreenWidth: 1920, ScreenHeight: 1080, RecordingMode: recording.ModeDisplay}
	evts := []events.Event{{Type: events.Click, T: 10, X: 500, Y: 300}}

	sourceMeta, sourceEvts, offset := toSourceSpace(meta, evts)

	assert.Equal(t, meta, sourceMeta)
	assert.Equal(t, evts, sourceEvts)
	assert.Equal(t, geom.Point{}, offset)
}

func TestToSourceSpaceTranslatesByWindowTopLeft(t *testing.T) {
	meta := recording.Meta{
		ScreenWidth: 1920, ScreenHeight: 1080,
		RecordingMode:     recording.ModeWindow,
		WindowInitialRect: geom.Rect{Left: 200, Top: 100, Right: 1200, Bottom: 700},
	}
	evts := []events.Event{{Type: events.Click, T: 10, X: 300, Y: 150}}

	sourceMeta, sourceEvts, offset := toSourceSpace(meta, evts)

	assert.Equal(t, geom.Point{X: 200, Y: 100}, offset)
	assert.Equal(t, 1000, sourceMeta.ScreenWidth)
	assert.Equal(t, 600, sourceMeta.ScreenHeight)
	assert.Equal(t, geom.Rect{Left: 0, Top: 0, Right: 1000, Bottom: 600}, sourceMeta.WindowInitialRect)
	assert.Equal(t, 100.0, sourceEvts[0].X)
	assert.Equal(t, 50.0, sourceEvts[0].Y)
}

func TestToSourceSpaceLeavesNonCoordEventsUntouched(t *testing.T) {
	meta := recording.Meta{
		RecordingMode:     recording.ModeWindow,
		WindowInitialRect: geom.Rect{Left: 50, Top: 50, Right: 250, Bottom: 250},
	}
	evts := []events.Event{{Type: events.Key, T: 10, Key: "a"}}

	_, sourceEvts, _ := toSourceSpace(meta, evts)

	assert.Equal(t, "a", sourceEvts[0].Key)
	assert.Equal(t, 0.0, sourceEvts[0].X)
}
