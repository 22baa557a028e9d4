// Package zoom plans the ordered list of zoom keyframes that drive the
// compositor's viewport springs, per spec.md §4.4's 2-state
// Overview/WorkArea model.
package zoom

import "github.com/demoreel/demoreel/internal/spring"

// Transition names the spring behavior a keyframe should use when the
// compositor applies it; it does not change the half-life math, only the
// observable "character" of the move as seen by a caller inspecting the plan.
type Transition string

const (
	SpringOut Transition = "spring_out"
	SpringIn  Transition = "spring_in"
	Smooth    Transition = "smooth"
)

// Keyframe is one entry of the zoom plan.
type Keyframe struct {
	TimeMs     int64
	TargetX    float64
	TargetY    float64
	ZoomLevel  float64
	Transition Transition
	SpringHint spring.HalfLives
}
