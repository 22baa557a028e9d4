// Package agent is the recording-side collaborator: it captures the
// screen, polls the cursor, hooks input events, and writes a recording
// directory in the layout internal/orchestrator reads back (spec.md §6).
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/demoreel/demoreel/internal/config"
	"github.com/demoreel/demoreel/internal/events"
	"github.com/demoreel/demoreel/internal/geom"
	"github.com/demoreel/demoreel/internal/recording"
)

// Session owns one recording's lifecycle: capture, event hooks, and the
// on-disk artifact layout. At most one recording runs per Session,
// mirroring the teacher's Recorder.isRecording guard.
type Session struct {
	cfg config.Recording

	mu          sync.Mutex
	isRecording bool
	outputDir   string
	startTime   time.Time
	mode        recording.Mode
	windowTitle string
	windowRect  geom.Rect

	eventsFile *os.File
	eventsMu   sync.Mutex

	cancel     context.CancelFunc
	doneChan   chan struct{}
	frameCount int
	screenW    int
	screenH    int
}

// New constructs a Session against the given recording tunables.
func New(cfg config.Recording) *Session {
	return &Session{cfg: cfg}
}

// StartOpts selects the capture mode and, for window mode, the window's
// title and screen-relative initial rect (translated by the caller's
// window-tracking backend before the session starts).
type StartOpts struct {
	Mode        recording.Mode
	WindowTitle string
	WindowRect  geom.Rect
}

// Start begins capture into <outputDir>/<recordingID>/, returning
// immediately; capture runs on a background goroutine until Stop is
// called.
func (s *Session) Start(recordingID string, opts StartOpts) error {
	s.mu.Lock()
	if s.isRecording {
		s.mu.Unlock()
		return fmt.Errorf("recording already in progress")
	}
	s.isRecording = true
	s.mode = opts.Mode
	s.windowTitle = opts.WindowTitle
	s.windowRect = opts.WindowRect
	s.startTime = time.Now()
	s.outputDir = filepath.Join(s.cfg.OutputDir, recordingID)
	s.mu.Unlock()

	if err := os.MkdirAll(filepath.Join(s.outputDir, "frames"), 0755); err != nil {
		return fmt.Errorf("agent: creating output dir: %w", err)
	}

	ef, err := os.Create(filepath.Join(s.outputDir, "events.jsonl"))
	if err != nil {
		return fmt.Errorf("agent: creating events log: %w", err)
	}
	s.eventsFile = ef

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.doneChan = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); s.runCapture(ctx) }()
	go func() { defer wg.Done(); s.runEventHooks(ctx) }()
	go func() {
		wg.Wait()
		close(s.doneChan)
	}()

	return nil
}

// appendEvent serializes one event as a JSONL line, append-only, safe for
// concurrent callers (the cursor poller and the input-hook callbacks run on
// separate goroutines).
func (s *Session) appendEvent(e events.Event) {
	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()
	if s.eventsFile == nil {
		return
	}
	line, err := json.Marshal(e)
	if err != nil {
		return
	}
	s.eventsFile.Write(append(line, '\n'))
}

// Stop ends capture, flushes the recording's metadata, and returns the
// recording directory path.
func (s *Session) Stop() (string, error) {
	s.mu.Lock()
	if !s.isRecording {
		s.mu.Unlock()
		return "", fmt.Errorf("no recording in progress")
	}
	s.isRecording = false
	s.mu.Unlock()

	s.cancel()
	<-s.doneChan

	s.eventsMu.Lock()
	s.eventsFile.Close()
	s.eventsMu.Unlock()

	meta := recording.Meta{
		ScreenWidth:       s.screenW,
		ScreenHeight:      s.screenH,
		FPS:               s.cfg.TargetFPS,
		StartTime:         s.startTime,
		DurationMs:        time.Since(s.startTime).Milliseconds(),
		HasAudio:          false,
		RecordingMode:     s.mode,
		WindowTitle:       s.windowTitle,
		WindowInitialRect: s.windowRect,
	}
	if err := s.writeMeta(meta); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.outputDir, "frame_count.txt"), []byte(fmt.Sprint(s.frameCount)), 0644); err != nil {
		return "", fmt.Errorf("agent: writing frame_count.txt: %w", err)
	}
	dims := fmt.Sprintf("%dx%d", s.screenW, s.screenH)
	if err := os.WriteFile(filepath.Join(s.outputDir, "dimensions.txt"), []byte(dims), 0644); err != nil {
		return "", fmt.Errorf("agent: writing dimensions.txt: %w", err)
	}

	return s.outputDir, nil
}

func (s *Session) writeMeta(meta recording.Meta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("agent: marshaling meta.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.outputDir, "meta.json"), data, 0644); err != nil {
		return fmt.Errorf("agent: writing meta.json: %w", err)
	}
	return nil
}
