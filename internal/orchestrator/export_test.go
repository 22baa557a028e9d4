package orchestrator

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/demoreel/demoreel/internal/config"
	"github.com/demoreel/demoreel/internal/pipelineerr"
)

func TestSecondConcurrentExportFailsImmediately(t *testing.T) {
	o := New(t.TempDir(), config.Default(), nil)
	o.exporting = true

	_, err := o.Export("whatever", "mp4", "high", nil)
	assert.True(t, errors.Is(err, pipelineerr.ErrExportAlreadyInProgress))
}

func TestExportGuardReleasedAfterFailure(t *testing.T) {
	o := New(t.TempDir(), config.Default(), nil)

	_, err := o.Export("does-not-exist", "mp4", "high", nil)
	assert.True(t, errors.Is(err, pipelineerr.ErrRecordingNotFound))

	o.mu.Lock()
	releasedState := o.exporting
	o.mu.Unlock()
	assert.False(t, releasedState)
}

func TestExportReportsErrorProgress(t *testing.T) {
	o := New(t.TempDir(), config.Default(), nil)

	var mu sync.Mutex
	var stages []string
	_, _ = o.Export("does-not-exist", "mp4", "high", func(p Progress) {
		mu.Lock()
		stages = append(stages, p.Stage)
		mu.Unlock()
	})

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, stages, "error")
}
