// Package encode invokes an external video encoder (ffmpeg) against a
// composed-frame directory, per spec.md §4.9.
package encode

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/demoreel/demoreel/internal/pipelineerr"
)

// Request describes one encode invocation.
type Request struct {
	Binary      string // configured ffmpeg path, or "" to search PATH
	FramesDir   string // composed-frame directory, frame_%08d.png
	AudioPath   string // optional; used iff it exists and is non-trivial
	OutputPath  string
	Format      string // "mp4" | "gif" | "webm"
	Quality     string // "low" | "medium" | "high" | "social"
	SourceWidth int
	SourceHeight int
	// FPSOverride replaces the quality preset's nominal fps, when nonzero.
	// The orchestrator sets it to the recording's actual capture rate
	// (frames over duration), counting only the frames actually composed
	// when unreadable ones were skipped, so playback duration still matches
	// the original recording's wall-clock length.
	FPSOverride int
}

// Run resolves the ffmpeg binary and dispatches to the format-specific
// encode function. The composed-frame directory and output path are the
// caller's responsibility to create/clean up.
func Run(req Request) error {
	bin, err := resolveBinary(req.Binary)
	if err != nil {
		return err
	}
	params := presetFor(req.Quality, req.SourceWidth, req.SourceHeight)
	if req.FPSOverride > 0 {
		params.FPS = req.FPSOverride
	}

	audio := ""
	if hasUsableAudio(req.AudioPath) {
		audio = req.AudioPath
	}

	switch req.Format {
	case "gif":
		return encodeGIF(bin, req.FramesDir, req.OutputPath, params)
	case "webm":
		return encodeWebM(bin, req.FramesDir, req.OutputPath, params, audio)
	default:
		return encodeMP4(bin, req.FramesDir, req.OutputPath, params, audio)
	}
}

// hasUsableAudio matches the layout's "valid iff size > 44 bytes" rule for
// audio.wav (an empty WAV header alone is not usable audio).
func hasUsableAudio(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Size() > 44
}

func resolveBinary(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
		if p, err := exec.LookPath(configured); err == nil {
			return p, nil
		}
	}
	if p, err := exec.LookPath("ffmpeg"); err == nil {
		return p, nil
	}
	return "", pipelineerr.Wrap(pipelineerr.ErrEncoderMissing, "ffmpeg not found on PATH or at configured location %q", configured)
}

func framePattern(dir string) string {
	return filepath.Join(dir, "frame_%08d.png")
}

func runCmd(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return pipelineerr.Wrap(pipelineerr.ErrEncoderFailed, "%s: %s", err, string(out))
	}
	return nil
}

func encodeMP4(bin, framesDir, output string, params Params, audio string) error {
	args := []string{
		"-y", "-framerate", fmt.Sprint(params.FPS),
		"-i", framePattern(framesDir),
	}
	if audio != "" {
		args = append(args, "-i", audio, "-c:a", "aac", "-b:a", "128k")
	}
	args = append(args,
		"-c:v", "libx264",
		"-crf", fmt.Sprint(params.CRF),
		"-preset", "medium",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
	)
	if params.Width > 0 && params.Height > 0 {
		args = append(args, "-vf", fmt.Sprintf("scale=%d:%d", params.Width, params.Height))
	}
	args = append(args, output)
	return runCmd(bin, args...)
}

func encodeWebM(bin, framesDir, output string, params Params, audio string) error {
	args := []string{
		"-y", "-framerate", fmt.Sprint(params.FPS),
		"-i", framePattern(framesDir),
	}
	if audio != "" {
		args = append(args, "-i", audio, "-c:a", "libopus")
	}
	args = append(args,
		"-c:v", "libvpx-vp9",
		"-crf", fmt.Sprint(params.CRF),
		"-b:v", "0",
	)
	if params.Width > 0 && params.Height > 0 {
		args = append(args, "-vf", fmt.Sprintf("scale=%d:%d", params.Width, params.Height))
	}
	args = append(args, output)
	return runCmd(bin, args...)
}

// encodeGIF runs ffmpeg's standard two-pass palette workflow: pass 1
// generates a palette from the scaled frames, pass 2 applies it.
func encodeGIF(bin, framesDir, output string, params Params) error {
	fps := params.FPS
	if fps > 15 {
		fps = 15
	}
	width := params.Width
	if width <= 0 || width > 640 {
		width = 640
	}

	palette := output + ".palette.png"
	defer os.Remove(palette)

	if err := runCmd(bin,
		"-y", "-framerate", fmt.Sprint(fps),
		"-i", framePattern(framesDir),
		"-vf", fmt.Sprintf("scale=%d:-1:flags=lanczos,palettegen", width),
		palette,
	); err != nil {
		return err
	}

	return runCmd(bin,
		"-y", "-framerate", fmt.Sprint(fps),
		"-i", framePattern(framesDir),
		"-i", palette,
		"-lavfi", fmt.Sprintf("scale=%d:-1:flags=lanczos[x];[x][1:v]paletteuse", width),
		output,
	)
}
