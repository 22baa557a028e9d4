package orchestrator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demoreel/demoreel/internal/pipelineerr"
)

func TestLoadMetaMissingIsRecordingNotFound(t *testing.T) {
	_, err := loadMeta(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, pipelineerr.ErrRecordingNotFound))
}

func TestLoadMetaMissingRequiredFieldIsMetadataInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meta.json"), []byte(`{"screen_width":0}`), 0644))

	_, err := loadMeta(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pipelineerr.ErrMetadataInvalid))
}

func TestLoadMetaValid(t *testing.T) {
	dir := t.TempDir()
	body := `{"screen_width":1920,"screen_height":1080,"fps":30,"duration_ms":5000}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meta.json"), []byte(body), 0644))

	meta, err := loadMeta(dir)
	require.NoError(t, err)
	assert.Equal(t, 1920, meta.ScreenWidth)
}

func TestLoadFrameCountZeroIsNoFrames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "frame_count.txt"), []byte("0"), 0644))

	_, err := loadFrameCount(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pipelineerr.ErrNoFrames))
}

func TestLoadEventsMergesAndSortsBothLogs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "events.jsonl"),
		[]byte(`{"type":"click","t":200,"x":1,"y":1}`+"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "window_events.jsonl"),
		[]byte(`{"type":"window_focus","t":100,"title":"x"}`+"\n"), 0644))

	evts, err := loadEvents(dir)
	require.NoError(t, err)
	require.Len(t, evts, 2)
	assert.Equal(t, int64(100), evts[0].T)
	assert.Equal(t, int64(200), evts[1].T)
}

func TestLoadEventsSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "events.jsonl"),
		[]byte("not json\n"+`{"type":"click","t":5,"x":1,"y":1}`+"\n"), 0644))

	evts, err := loadEvents(dir)
	require.NoError(t, err)
	require.Len(t, evts, 1)
}
