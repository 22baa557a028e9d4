package zoom

import (
	"sort"

	"github.com/demoreel/demoreel/internal/config"
	"github.com/demoreel/demoreel/internal/geom"
	"github.com/demoreel/demoreel/internal/recording"
	"github.com/demoreel/demoreel/internal/scenes"
	"github.com/demoreel/demoreel/internal/spring"
)

// Plan builds the sorted, deduplicated zoom keyframe list for a recording's
// scenes, per spec.md §4.4.
func Plan(scs []scenes.Scene, meta recording.Meta, cfg config.Zoom, regions []geom.ChangeRegion) []Keyframe {
	ox, oy, ozoom := overviewTarget(meta, cfg.MaxZoom)
	overviewHint := scaledHalfLives(cfg.ZoomOut, cfg.AnimationSpeedScale)

	kfs := []Keyframe{{TimeMs: 0, TargetX: ox, TargetY: oy, ZoomLevel: ozoom, Transition: SpringOut, SpringHint: overviewHint}}

	if !cfg.AutoZoomEnabled || len(scs) == 0 {
		return dedup(kfs, cfg.MinKeyframeIntervalMs)
	}

	fromOverview := true
	var prevEnd int64

	for _, sc := range scs {
		gapBefore := sc.Start - prevEnd
		if gapBefore >= cfg.IdleZoomOutMs && !hasChangeRegionIn(regions, prevEnd, sc.Start) {
			t := prevEnd + min64(cfg.IdleZoomOutMs, gapBefore/3, 2000)
			kfs = append(kfs, Keyframe{TimeMs: t, TargetX: ox, TargetY: oy, ZoomLevel: ozoom, Transition: SpringOut, SpringHint: overviewHint})
			fromOverview = true
		}

		hl := cfg.SceneToScene
		kind := Smooth
		if fromOverview {
			hl = cfg.ZoomIn
			kind = SpringIn
		}
		scaled := scaledHalfLives(hl, cfg.AnimationSpeedScale)

		anticipationMs := int64(scaled.Pan * 4 * 1000)
		targetTime := max64(sc.Start-anticipationMs, prevEnd)

		zoom := sc.Zoom
		if meta.RecordingMode == recording.ModeWindow && zoom > ozoom {
			zoom = ozoom
		}

		kfs = append(kfs, Keyframe{TimeMs: targetTime, TargetX: sc.Center.X, TargetY: sc.Center.Y, ZoomLevel: zoom, Transition: kind, SpringHint: scaled})
		fromOverview = false
		prevEnd = sc.End
	}

	last := scs[len(scs)-1]
	trailingGap := meta.DurationMs - last.End
	if trailingGap >= cfg.IdleZoomOutMs && !hasChangeRegionIn(regions, last.End, meta.DurationMs) {
		t := last.End + min64(cfg.IdleZoomOutMs, trailingGap/3, 2000)
		kfs = append(kfs, Keyframe{TimeMs: t, TargetX: ox, TargetY: oy, ZoomLevel: ozoom, Transition: SpringOut, SpringHint: overviewHint})
	}

	return dedup(kfs, cfg.MinKeyframeIntervalMs)
}

// dedup collapses keyframes scheduled too close together, keeping the later
// of each colliding pair. The very first keyframe is always the engine's
// starting state and is never collapsed away, even if an early scene's own
// keyframe lands right on top of it.
func dedup(kfs []Keyframe, minIntervalMs int64) []Keyframe {
	sort.Slice(kfs, func(i, j int) bool { return kfs[i].TimeMs < kfs[j].TimeMs })
	if len(kfs) == 0 {
		return kfs
	}
	out := []Keyframe{kfs[0]}
	for _, k := range kfs[1:] {
		if len(out) > 1 && k.TimeMs-out[len(out)-1].TimeMs < minIntervalMs {
			out[len(out)-1] = k
			continue
		}
		out = append(out, k)
	}
	return out
}

func hasChangeRegionIn(regions []geom.ChangeRegion, start, end int64) bool {
	for _, r := range regions {
		if r.TimeMs >= start && r.TimeMs <= end {
			return true
		}
	}
	return false
}

func scaledHalfLives(hl config.HalfLives, scale float64) spring.HalfLives {
	return spring.HalfLives{Zoom: hl.Zoom * scale, Pan: hl.Pan * scale}
}

func min64(vals ...int64) int64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func max64(vals ...int64) int64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
