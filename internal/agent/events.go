package agent

import (
	"context"
	"time"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"

	"github.com/demoreel/demoreel/internal/events"
)

// runEventHooks polls the cursor at the target fps and registers gohook
// callbacks for clicks, scrolls, and key presses, appending each as a
// tagged Event. Blocks until ctx is cancelled.
func (s *Session) runEventHooks(ctx context.Context) {
	fps := s.cfg.TargetFPS
	if fps <= 0 {
		fps = 30
	}
	go s.pollCursor(ctx, fps)

	hook.Register(hook.MouseDown, []string{}, func(e hook.Event) {
		s.appendEvent(events.Event{
			Type:   events.Click,
			T:      s.elapsedMs(),
			X:      float64(e.X),
			Y:      float64(e.Y),
			Button: buttonName(e.Button),
		})
	})
	hook.Register(hook.MouseUp, []string{}, func(e hook.Event) {
		s.appendEvent(events.Event{
			Type:   events.ClickRelease,
			T:      s.elapsedMs(),
			X:      float64(e.X),
			Y:      float64(e.Y),
			Button: buttonName(e.Button),
		})
	})
	hook.Register(hook.MouseWheel, []string{}, func(e hook.Event) {
		s.appendEvent(events.Event{
			Type: events.Scroll,
			T:    s.elapsedMs(),
			X:    float64(e.X),
			Y:    float64(e.Y),
			DX:   float64(e.Rotation),
		})
	})
	hook.Register(hook.KeyDown, []string{}, func(e hook.Event) {
		s.appendEvent(events.Event{
			Type: events.Key,
			T:    s.elapsedMs(),
			Key:  string(rune(e.Rawcode)),
		})
	})

	evChan := hook.Start()
	go func() {
		<-ctx.Done()
		hook.End()
	}()
	<-hook.Process(evChan)
}

func (s *Session) pollCursor(ctx context.Context, fps int) {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			x, y := robotgo.Location()
			s.appendEvent(events.Event{
				Type: events.MouseMove,
				T:    s.elapsedMs(),
				X:    float64(x),
				Y:    float64(y),
			})
		}
	}
}

func (s *Session) elapsedMs() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.startTime).Milliseconds()
}

func buttonName(b int) string {
	switch b {
	case 1:
		return "left"
	case 2:
		return "right"
	case 3:
		return "middle"
	default:
		return "left"
	}
}
