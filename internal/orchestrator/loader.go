package orchestrator

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/demoreel/demoreel/internal/events"
	"github.com/demoreel/demoreel/internal/pipelineerr"
	"github.com/demoreel/demoreel/internal/recording"
)

// loadMeta reads and validates meta.json, per the RecordingNotFound /
// MetadataInvalid split in spec.md §7.
func loadMeta(recordingDir string) (recording.Meta, error) {
	path := filepath.Join(recordingDir, "meta.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return recording.Meta{}, pipelineerr.Wrap(pipelineerr.ErrRecordingNotFound, "meta.json missing in %s", recordingDir)
		}
		return recording.Meta{}, pipelineerr.Wrap(pipelineerr.ErrIO, "reading meta.json: %s", err)
	}

	var meta recording.Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return recording.Meta{}, pipelineerr.Wrap(pipelineerr.ErrMetadataInvalid, "parsing meta.json: %s", err)
	}
	if !meta.Valid() {
		return recording.Meta{}, pipelineerr.Wrap(pipelineerr.ErrMetadataInvalid, "meta.json missing required fields")
	}
	return meta, nil
}

// loadFrameCount reads frame_count.txt, surfacing NoFrames for a zero
// count and RecordingNotFound if the file is absent.
func loadFrameCount(recordingDir string) (int, error) {
	path := filepath.Join(recordingDir, "frame_count.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, pipelineerr.Wrap(pipelineerr.ErrRecordingNotFound, "frame_count.txt missing in %s", recordingDir)
		}
		return 0, pipelineerr.Wrap(pipelineerr.ErrIO, "reading frame_count.txt: %s", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, pipelineerr.Wrap(pipelineerr.ErrMetadataInvalid, "parsing frame_count.txt: %s", err)
	}
	if n == 0 {
		return 0, pipelineerr.ErrNoFrames
	}
	return n, nil
}

// loadEvents reads events.jsonl and, if present, window_events.jsonl,
// decoding each line and sorting the merged result stably by timestamp.
func loadEvents(recordingDir string) ([]events.Event, error) {
	var all []events.Event

	for _, name := range []string{"events.jsonl", "window_events.jsonl"} {
		path := filepath.Join(recordingDir, name)
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, pipelineerr.Wrap(pipelineerr.ErrIO, "opening %s: %s", name, err)
		}

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			var e events.Event
			if err := json.Unmarshal([]byte(line), &e); err != nil {
				continue // a malformed line is skipped, not fatal
			}
			all = append(all, e)
		}
		f.Close()
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].T < all[j].T })
	return all, nil
}

// audioPath returns the recording's audio.wav path; the caller decides
// usability from file size (spec.md §6: "valid iff size > 44 bytes").
func audioPath(recordingDir string) string {
	return filepath.Join(recordingDir, "audio.wav")
}

func framesDir(recordingDir string) string {
	return filepath.Join(recordingDir, "frames")
}
