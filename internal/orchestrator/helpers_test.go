package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/demoreel/demoreel/internal/events"
	"github.com/demoreel/demoreel/internal/geom"
)

func TestCursorAtHoldsLastKnownPosition(t *testing.T) {
	traj := []geom.TimedPoint{{T: 0, X: 0, Y: 0}, {T: 100, X: 10, Y: 10}}
	p := cursorAt(traj, 150)
	require := assert.New(t)
	require.Equal(10.0, p.X)
	require.Equal(10.0, p.Y)
}

func TestCursorAtBeforeFirstSampleReturnsFirst(t *testing.T) {
	traj := []geom.TimedPoint{{T: 50, X: 5, Y: 5}}
	p := cursorAt(traj, 0)
	assert.Equal(t, 5.0, p.X)
}

func TestCursorAtEmptyTrajectoryReturnsNil(t *testing.T) {
	assert.Nil(t, cursorAt(nil, 0))
}

func TestBuildKeyOverlaysMergesOverlappingWindows(t *testing.T) {
	evts := []events.Event{
		{Type: events.Key, T: 0},
		{Type: events.Key, T: 200},
		{Type: events.Key, T: 2000},
	}
	overlays := buildKeyOverlays(evts)
	require := assert.New(t)
	require.Len(overlays, 2)
	require.Equal(int64(0), overlays[0].StartMs)
	require.Equal(int64(800), overlays[0].EndMs)
	require.Equal(int64(2000), overlays[1].StartMs)
}

func TestBuildClickEffectsOnlyFromClickEvents(t *testing.T) {
	evts := []events.Event{
		{Type: events.Click, T: 10, X: 1, Y: 2},
		{Type: events.MouseMove, T: 20, X: 3, Y: 4},
	}
	effects := buildClickEffects(evts, 300)
	require := assert.New(t)
	require.Len(effects, 1)
	require.Equal(int64(10), effects[0].StartMs)
}

func TestTrajectoryFromEventsOnlyKeepsCoordBearingEvents(t *testing.T) {
	evts := []events.Event{
		{Type: events.Key, T: 0, Key: "a"},
		{Type: events.MouseMove, T: 10, X: 5, Y: 6},
	}
	traj := trajectoryFromEvents(evts)
	require := assert.New(t)
	require.Len(traj, 1)
	require.Equal(int64(10), traj[0].T)
}
