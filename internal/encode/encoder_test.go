package encode

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demoreel/demoreel/internal/pipelineerr"
)

func TestPresetForKnownQualities(t *testing.T) {
	social := presetFor("social", 1920, 1080)
	assert.Equal(t, Params{Width: 1920, Height: 1080, FPS: 30, CRF: 23}, social)

	high := presetFor("high", 2560, 1440)
	assert.Equal(t, Params{Width: 2560, Height: 1440, FPS: 60, CRF: 18}, high)

	low := presetFor("low", 2560, 1440)
	assert.Equal(t, 1280, low.Width)
}

func TestPresetForUnknownQualityFallsBackToHigh(t *testing.T) {
	p := presetFor("ultra", 1000, 800)
	assert.Equal(t, presetFor("high", 1000, 800), p)
}

func TestHasUsableAudioRejectsEmptyHeaderOnlyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audio.wav")
	require.NoError(t, os.WriteFile(path, make([]byte, 44), 0644))
	assert.False(t, hasUsableAudio(path))

	require.NoError(t, os.WriteFile(path, make([]byte, 100), 0644))
	assert.True(t, hasUsableAudio(path))
}

func TestHasUsableAudioRejectsMissingPath(t *testing.T) {
	assert.False(t, hasUsableAudio(""))
	assert.False(t, hasUsableAudio("/nonexistent/audio.wav"))
}

func TestResolveBinaryMissingSurfacesEncoderMissing(t *testing.T) {
	t.Setenv("PATH", "")
	_, err := resolveBinary("/definitely/not/a/real/ffmpeg/binary")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pipelineerr.ErrEncoderMissing))
}
