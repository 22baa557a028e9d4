// Package diff finds visual change regions between sampled frame pairs,
// excluding changes attributable to the cursor, to feed the zoom planner's
// idle-gap suppression and scene bbox expansion.
package diff

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/demoreel/demoreel/internal/config"
	"github.com/demoreel/demoreel/internal/geom"
)

// Result is the differencer's output: the change regions it found plus
// accounting for how many pairs were analyzed versus rejected.
type Result struct {
	Regions           []geom.ChangeRegion
	PairsAnalyzed     int
	PairsExcluded     int
	MeanChangeFraction float64
}

// pairOutcome is one worker's verdict on a single frame pair.
type pairOutcome struct {
	region         *geom.ChangeRegion
	changeFraction float64
}

// Run computes change regions across the frame sequence in framesDir.
// cursor is the trajectory used to exclude cursor-local change (it need not
// be the smoothed trajectory; raw samples are fine since exclusion only
// needs approximate position).
func Run(framesDir string, frameCount int, durationMs int64, cursor []geom.TimedPoint, screenW, screenH int, cfg config.Diff) (Result, error) {
	if frameCount < 2 || cfg.SampleInterval < 1 {
		return Result{}, nil
	}
	frameStepMs := float64(durationMs) / float64(frameCount)

	type pair struct{ i, j int }
	var pairs []pair
	for i := 0; i+cfg.SampleInterval < frameCount; i += cfg.SampleInterval {
		pairs = append(pairs, pair{i: i, j: i + cfg.SampleInterval})
	}

	outcomes := make([]*pairOutcome, len(pairs))
	g := new(errgroup.Group)

	for idx, p := range pairs {
		idx, p := idx, p
		g.Go(func() error {
			outcome, err := comparePair(framesDir, p.i, p.j, frameStepMs, cursor, screenW, screenH, cfg)
			if err != nil {
				return fmt.Errorf("diff: comparing frames %d/%d: %w", p.i, p.j, err)
			}
			outcomes[idx] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var regions []geom.ChangeRegion
	var fractions []float64
	excluded := 0
	for _, o := range outcomes {
		fractions = append(fractions, o.changeFraction)
		if o.region != nil {
			regions = append(regions, *o.region)
		} else {
			excluded++
		}
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].TimeMs < regions[j].TimeMs })

	meanFrac := 0.0
	if len(fractions) > 0 {
		meanFrac = stat.Mean(fractions, nil)
	}

	return Result{
		Regions:            regions,
		PairsAnalyzed:      len(pairs),
		PairsExcluded:      excluded,
		MeanChangeFraction: meanFrac,
	}, nil
}

func comparePair(framesDir string, i, j int, frameStepMs float64, cursor []geom.TimedPoint, screenW, screenH int, cfg config.Diff) (*pairOutcome, error) {
	fa, err := loadGraySubsampled(framePath(framesDir, i), cfg.DownsampleFactor)
	if err != nil {
		return nil, err
	}
	fb, err := loadGraySubsampled(framePath(framesDir, j), cfg.DownsampleFactor)
	if err != nil {
		return nil, err
	}
	if fa.Width != fb.Width || fa.Height != fb.Height {
		return &pairOutcome{}, nil
	}

	timeA := int64(float64(i) * frameStepMs)
	timeB := int64(float64(j) * frameStepMs)
	cax, cay := nearestCursor(cursor, timeA)
	cbx, cby := nearestCursor(cursor, timeB)

	factor := float64(cfg.DownsampleFactor)

	minX, minY := math.MaxInt32, math.MaxInt32
	maxX, maxY := -1, -1
	changed := 0

	for y := 0; y < fa.Height; y++ {
		for x := 0; x < fa.Width; x++ {
			idx := y*fa.Width + x
			delta := int(fa.Pix[idx]) - int(fb.Pix[idx])
			if delta < 0 {
				delta = -delta
			}
			if delta < cfg.PixelThreshold {
				continue
			}

			sx, sy := float64(x)*factor, float64(y)*factor
			if len(cursor) > 0 && (dist(sx, sy, cax, cay) < cfg.CursorExcludeRadius || dist(sx, sy, cbx, cby) < cfg.CursorExcludeRadius) {
				continue
			}

			changed++
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	totalPixels := fa.Width * fa.Height
	changeFraction := float64(changed) / float64(totalPixels)

	if changed == 0 || changeFraction > cfg.MaxChangeFraction {
		return &pairOutcome{changeFraction: changeFraction}, nil
	}

	bboxW := float64(maxX-minX+1) * factor
	bboxH := float64(maxY-minY+1) * factor
	if math.Max(bboxW, bboxH) < cfg.MinRegionSize {
		return &pairOutcome{changeFraction: changeFraction}, nil
	}

	bbox := geom.Rect{
		Left:   float64(minX) * factor,
		Top:    float64(minY) * factor,
		Right:  float64(maxX+1) * factor,
		Bottom: float64(maxY+1) * factor,
	}.Clamp(float64(screenW), float64(screenH))

	region := geom.ChangeRegion{
		TimeMs:        (timeA + timeB) / 2,
		BBox:          bbox,
		ChangedPixels: changed,
	}
	return &pairOutcome{region: &region, changeFraction: changeFraction}, nil
}

func framePath(dir string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("frame_%08d.png", index))
}

func dist(x1, y1, x2, y2 float64) float64 {
	dx, dy := x1-x2, y1-y2
	return math.Sqrt(dx*dx + dy*dy)
}
