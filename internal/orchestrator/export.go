// Package orchestrator drives a single export end to end: load a
// recording directory, run every analysis stage in order, compose frames,
// and invoke the external encoder (spec.md §4.8).
package orchestrator

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/demoreel/demoreel/internal/compositor"
	"github.com/demoreel/demoreel/internal/config"
	"github.com/demoreel/demoreel/internal/cursor"
	"github.com/demoreel/demoreel/internal/diff"
	"github.com/demoreel/demoreel/internal/encode"
	"github.com/demoreel/demoreel/internal/events"
	"github.com/demoreel/demoreel/internal/geom"
	"github.com/demoreel/demoreel/internal/pipelineerr"
	"github.com/demoreel/demoreel/internal/recording"
	"github.com/demoreel/demoreel/internal/scenes"
	"github.com/demoreel/demoreel/internal/zoom"
)

// staticRecordingThreshold is the mean per-pair changed-pixel fraction below
// which a recording is treated as static enough that expanding scene bboxes
// with change regions would just be chasing compression noise.
const staticRecordingThreshold = 0.001

// Progress is one discrete notification delivered to a caller's callback,
// per spec.md §6.
type Progress struct {
	Stage      string // "composing" | "encoding" | "complete" | "error"
	Fraction   float64
	OutputPath string
	Message    string // set only when Stage is "error"
}

// ProgressFunc receives Progress notifications; nil is a valid no-op.
type ProgressFunc func(Progress)

// Orchestrator drives exports against a library of recordings rooted at
// RecordingsDir. At most one export may be in flight, guarded the same way
// the teacher's Recorder guards isRecording.
type Orchestrator struct {
	RecordingsDir string
	Cfg           *config.Config
	Logger        *zap.Logger

	mu       sync.Mutex
	exporting bool
}

// New constructs an Orchestrator rooted at recordingsDir, using cfg for
// every stage's tunables.
func New(recordingsDir string, cfg *config.Config, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{RecordingsDir: recordingsDir, Cfg: cfg, Logger: logger}
}

// Export runs the full pipeline for recordingID and returns the output
// file path. format is one of "mp4"/"gif"/"webm"; quality is one of
// "low"/"medium"/"high"/"social". progress may be nil.
func (o *Orchestrator) Export(recordingID, format, quality string, progress ProgressFunc) (string, error) {
	return o.export(recordingID, format, quality, nil, progress)
}

// ExportWithKeyframes bypasses the zoom planner and scene splitter,
// driving the compositor directly from an externally supplied keyframe
// list (e.g. from a manual editing pass).
func (o *Orchestrator) ExportWithKeyframes(recordingID, format, quality string, keyframes []zoom.Keyframe, progress ProgressFunc) (string, error) {
	return o.export(recordingID, format, quality, keyframes, progress)
}

func (o *Orchestrator) export(recordingID, format, quality string, overrideKeyframes []zoom.Keyframe, progress ProgressFunc) (string, error) {
	o.mu.Lock()
	if o.exporting {
		o.mu.Unlock()
		return "", pipelineerr.ErrExportAlreadyInProgress
	}
	o.exporting = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.exporting = false
		o.mu.Unlock()
	}()

	report := func(p Progress) {
		if progress != nil {
			progress(p)
		}
	}

	outputPath, err := o.run(recordingID, format, quality, overrideKeyframes, report)
	if err != nil {
		report(Progress{Stage: "error", Message: err.Error()})
		return "", err
	}
	return outputPath, nil
}

func (o *Orchestrator) run(recordingID, format, quality string, overrideKeyframes []zoom.Keyframe, report ProgressFunc) (string, error) {
	recordingDir := filepath.Join(o.RecordingsDir, recordingID)

	meta, err := loadMeta(recordingDir)
	if err != nil {
		return "", err
	}
	frameCount, err := loadFrameCount(recordingDir)
	if err != nil {
		return "", err
	}

	actualFPS := meta.FPS
	if meta.DurationMs > 0 && frameCount > 0 {
		actualFPS = int(int64(frameCount) * 1000 / meta.DurationMs)
	}
	frameStepMs := float64(meta.DurationMs) / float64(frameCount)

	rawEvents, err := loadEvents(recordingDir)
	if err != nil {
		return "", err
	}

	sourceMeta, sourceEvents, sourceOffset := toSourceSpace(meta, rawEvents)
	screenW, screenH := float64(sourceMeta.ScreenWidth), float64(sourceMeta.ScreenHeight)

	thinned, _ := events.Preprocess(sourceEvents) // drags are not consumed by any compositor overlay today

	keyframes := overrideKeyframes
	var sceneList []scenes.Scene
	if keyframes == nil {
		activity := scenes.ActivityPoints(thinned, o.Cfg.Scene)
		sceneList = scenes.Split(activity, screenW, screenH, o.Cfg.Zoom.MaxZoom, o.Cfg.Scene)

		var regions []geom.ChangeRegion
		if o.Cfg.Zoom.AutoZoomEnabled {
			cursorTrack := trajectoryFromEvents(thinned)
			diffResult, err := diff.Run(framesDir(recordingDir), frameCount, meta.DurationMs, cursorTrack, int(screenW), int(screenH), o.Cfg.Diff)
			if err != nil {
				o.Logger.Warn("frame differencing failed, continuing without change regions", zap.Error(err))
			} else {
				regions = diffResult.Regions
				o.Logger.Info("frame differencing complete",
					zap.Int("pairs_analyzed", diffResult.PairsAnalyzed),
					zap.Int("pairs_excluded", diffResult.PairsExcluded),
					zap.Float64("mean_change_fraction", diffResult.MeanChangeFraction),
					zap.Int("regions_found", len(regions)))
				if diffResult.PairsAnalyzed > 0 && diffResult.MeanChangeFraction < staticRecordingThreshold {
					o.Logger.Info("recording is mostly static, skipping change-region scene expansion")
				} else {
					sceneList = scenes.ExpandWithChangeRegions(sceneList, regions, screenW, screenH, o.Cfg.Zoom.MaxZoom)
				}
			}
		}
		keyframes = zoom.Plan(sceneList, sourceMeta, o.Cfg.Zoom, regions)
	}

	cursorTrajectory := cursor.Smooth(trajectoryFromEvents(thinned))
	clickEffects := buildClickEffects(thinned, o.Cfg.Style.ClickRing.DurationMs)
	keyOverlays := buildKeyOverlays(thinned)

	tmpDir, err := os.MkdirTemp("", "demoreel-export-*")
	if err != nil {
		return "", pipelineerr.Wrap(pipelineerr.ErrIO, "creating temp output dir: %s", err)
	}
	defer os.RemoveAll(tmpDir)

	comp, err := compositor.New(o.Cfg.Style, int(screenW), int(screenH), o.Cfg.Zoom, sourceOffset, o.Logger)
	if err != nil {
		return "", fmt.Errorf("orchestrator: building compositor: %w", err)
	}

	produced, err := o.composeFrames(comp, recordingDir, tmpDir, frameCount, frameStepMs, keyframes, cursorTrajectory, clickEffects, keyOverlays, report)
	if err != nil {
		return "", err
	}
	if produced == 0 {
		return "", pipelineerr.ErrNoFrames
	}

	outputPath := o.outputPath(meta, format)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", pipelineerr.Wrap(pipelineerr.ErrIO, "creating output dir: %s", err)
	}

	report(Progress{Stage: "encoding", Fraction: 0.8})
	fpsOverride := actualFPS
	if produced != frameCount && meta.DurationMs > 0 {
		fpsOverride = int(int64(produced) * 1000 / meta.DurationMs)
	}
	if err := encode.Run(encode.Request{
		Binary:       o.Cfg.Encoder.Binary,
		FramesDir:    tmpDir,
		AudioPath:    audioPath(recordingDir),
		OutputPath:   outputPath,
		Format:       format,
		Quality:      quality,
		SourceWidth:  meta.ScreenWidth,
		SourceHeight: meta.ScreenHeight,
		FPSOverride:  fpsOverride,
	}); err != nil {
		return "", err
	}

	report(Progress{Stage: "complete", Fraction: 1.0, OutputPath: outputPath})
	return outputPath, nil
}

func (o *Orchestrator) composeFrames(
	comp *compositor.Compositor,
	recordingDir, tmpDir string,
	frameCount int,
	frameStepMs float64,
	keyframes []zoom.Keyframe,
	cursorTrajectory []geom.TimedPoint,
	clicks []compositor.ClickEffect,
	keys []compositor.KeyOverlay,
	report ProgressFunc,
) (int, error) {
	kfIdx := 0
	produced := 0
	lastMilestone := time.Now()

	for i := 0; i < frameCount; i++ {
		frameTimeMs := int64(float64(i) * frameStepMs)

		for kfIdx < len(keyframes) && keyframes[kfIdx].TimeMs <= frameTimeMs {
			comp.ApplyKeyframe(keyframes[kfIdx])
			kfIdx++
		}

		raw, err := loadFrame(recordingDir, i)
		if err != nil {
			o.Logger.Warn("skipping unreadable frame", zap.Int("index", i), zap.Error(err))
			continue
		}

		cursorPos := cursorAt(cursorTrajectory, frameTimeMs)
		activeClicks := activeClickEffects(clicks, frameTimeMs)
		activeKey := activeKeyOverlay(keys, frameTimeMs)

		out := comp.ComposeFrame(raw, frameTimeMs, cursorPos, activeClicks, activeKey, frameStepMs/1000)
		if err := writeComposedFrame(tmpDir, produced, out); err != nil {
			return produced, pipelineerr.Wrap(pipelineerr.ErrIO, "writing composed frame %d: %s", produced, err)
		}
		produced++

		if time.Since(lastMilestone) > 200*time.Millisecond {
			report(Progress{Stage: "composing", Fraction: float64(i) / float64(frameCount) * 0.8})
			lastMilestone = time.Now()
		}
	}

	return produced, nil
}

func (o *Orchestrator) outputPath(meta recording.Meta, format string) string {
	name := meta.StartTime.Format("20060102_150405")
	ext := format
	if ext == "" {
		ext = "mp4"
	}
	return filepath.Join(o.Cfg.Recording.OutputDir, fmt.Sprintf("%s.%s", name, ext))
}

func loadFrame(recordingDir string, index int) (image.Image, error) {
	path := filepath.Join(framesDir(recordingDir), fmt.Sprintf("frame_%08d.png", index))
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, pipelineerr.Wrap(pipelineerr.ErrFrameUnreadable, "decoding %s: %s", path, err)
	}
	return img, nil
}

func writeComposedFrame(dir string, index int, img image.Image) error {
	path := filepath.Join(dir, fmt.Sprintf("frame_%08d.png", index))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return encodePNG(f, img)
}
