// Package pipelineerr defines the closed taxonomy of errors the export
// pipeline can surface to a caller, distinct from the Go error values that
// wrap them for a human-readable message.
package pipelineerr

import (
	"errors"
	"fmt"
)

var (
	// ErrRecordingNotFound means the metadata or frame directory is missing.
	ErrRecordingNotFound = errors.New("recording not found")
	// ErrMetadataInvalid means meta.json failed to parse or is missing required fields.
	ErrMetadataInvalid = errors.New("recording metadata invalid")
	// ErrNoFrames means frame_count.txt reports zero frames.
	ErrNoFrames = errors.New("recording has no frames")
	// ErrFrameUnreadable means a single frame failed to decode; recoverable.
	ErrFrameUnreadable = errors.New("frame unreadable")
	// ErrEncoderMissing means no encoder binary was found on PATH or configured locations.
	ErrEncoderMissing = errors.New("encoder binary not found")
	// ErrEncoderFailed means the encoder process exited non-zero.
	ErrEncoderFailed = errors.New("encoder failed")
	// ErrExportAlreadyInProgress means a second export was requested while one is in flight.
	ErrExportAlreadyInProgress = errors.New("export already in progress")
	// ErrIO wraps filesystem failures during composition or temp-dir management.
	ErrIO = errors.New("io error")
)

// Wrap associates err with a taxonomy sentinel so callers can classify it
// with errors.Is while keeping a formatted message.
func Wrap(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
}
