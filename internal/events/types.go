// Package events decodes the recording's input event log and thins the raw
// mouse-move stream into a manageable set of activity samples plus detected
// drag gestures.
package events

import (
	"encoding/json"
	"fmt"
)

// Type discriminates the closed set of input event variants. Events are
// decoded into a single flat struct rather than an interface hierarchy, per
// the "closed tagged union, not open interfaces" design note.
type Type string

const (
	MouseMove    Type = "mouse_move"
	Click        Type = "click"
	ClickRelease Type = "click_release"
	Scroll       Type = "scroll"
	Key          Type = "key"
	Focus        Type = "focus"
	WindowFocus  Type = "window_focus"
)

// Rect mirrors a window rectangle as carried by a focus/window_focus event.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Event is one line of the recording's events.jsonl / window_events.jsonl.
// Fields not relevant to Type are left zero.
type Event struct {
	Type Type   `json:"type"`
	T    int64  `json:"t"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`

	Button string `json:"button,omitempty"`

	DX float64 `json:"dx,omitempty"`
	DY float64 `json:"dy,omitempty"`

	Key       string   `json:"key,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`

	Rect  *Rect  `json:"rect,omitempty"`
	Name  string `json:"name,omitempty"`
	Title string `json:"title,omitempty"`
}

// UnmarshalJSON validates the discriminator before decoding the rest of the
// record, so a malformed event line is rejected rather than silently
// producing a zero-valued event of an unknown type.
func (e *Event) UnmarshalJSON(data []byte) error {
	type raw Event
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	switch r.Type {
	case MouseMove, Click, ClickRelease, Scroll, Key, Focus, WindowFocus:
	default:
		return fmt.Errorf("events: unknown event type %q", r.Type)
	}
	*e = Event(r)
	return nil
}

// HasCoords reports whether the event variant carries an (x,y) sample.
func (e Event) HasCoords() bool {
	switch e.Type {
	case MouseMove, Click, ClickRelease, Scroll:
		return true
	default:
		return false
	}
}

// Drag is a detected press-move-release (or press-move-abandon) gesture.
type Drag struct {
	StartMs, EndMs         int64
	StartX, StartY         float64
	EndX, EndY             float64
}
