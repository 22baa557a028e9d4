package recording

import (
	"time"

	"github.com/demoreel/demoreel/internal/geom"
)

// Mode is the recording's capture mode, set by the recording agent and
// read back by the orchestrator to pick the zoom planner's Overview target.
type Mode string

const (
	ModeDisplay Mode = "display"
	ModeWindow  Mode = "window"
	ModeArea    Mode = "area"
)

// Meta is meta.json (schema v2): the one piece of required metadata about
// a recording artifact.
type Meta struct {
	ScreenWidth  int       `json:"screen_width"`
	ScreenHeight int       `json:"screen_height"`
	FPS          int       `json:"fps"`
	StartTime    time.Time `json:"start_time"`
	DurationMs   int64     `json:"duration_ms"`
	HasAudio     bool      `json:"has_audio"`

	RecordingMode     Mode      `json:"recording_mode,omitempty"`
	WindowTitle       string    `json:"window_title,omitempty"`
	WindowInitialRect geom.Rect `json:"window_initial_rect,omitempty"`
}

// Valid reports whether required fields are present, per the
// MetadataInvalid error kind (spec.md §7: "meta parse fails or required
// fields missing").
func (m Meta) Valid() bool {
	return m.ScreenWidth > 0 && m.ScreenHeight > 0 && m.FPS > 0 && m.DurationMs > 0
}
