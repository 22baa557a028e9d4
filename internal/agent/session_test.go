package agent

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demoreel/demoreel/internal/events"
	"github.com/demoreel/demoreel/internal/recording"
)

func TestWriteMetaProducesReadableJSON(t *testing.T) {
	dir := t.TempDir()
	s := &Session{outputDir: dir}

	meta := recording.Meta{ScreenWidth: 1920, ScreenHeight: 1080, FPS: 30, DurationMs: 5000}
	require.NoError(t, s.writeMeta(meta))

	data, err := os.ReadFile(filepath.Join(dir, "meta.json"))
	require.NoError(t, err)

	var decoded recording.Meta
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1920, decoded.ScreenWidth)
	assert.True(t, decoded.Valid())
}

func TestAppendEventWritesOneJSONLLinePerCall(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "events.jsonl"))
	require.NoError(t, err)
	s := &Session{eventsFile: f}

	s.appendEvent(events.Event{Type: events.Click, T: 100, X: 10, Y: 20})
	s.appendEvent(events.Event{Type: events.MouseMove, T: 150, X: 11, Y: 21})
	f.Close()

	data, err := os.ReadFile(filepath.Join(dir, "events.jsonl"))
	require.NoError(t, err)
	lines := splitLines(data)
	require.Len(t, lines, 2)

	var first events.Event
	require.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, events.Click, first.Type)
}

func TestStartRejectsSecondConcurrentRecording(t *testing.T) {
	s := &Session{isRecording: true}
	err := s.Start("anything", StartOpts{})
	assert.Error(t, err)
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			if i > start {
				lines = append(lines, data[start:i])
			}
			start = i + 1
		}
	}
	return lines
}
