package scenes

import (
	"github.com/demoreel/demoreel/internal/config"
	"github.com/demoreel/demoreel/internal/geom"
)

// Split groups activity points into scenes: a primary split on idle gaps,
// a sub-split of any overly large/busy group, bbox/center/zoom computation,
// and a merge pass that coalesces scenes whose centers are close together.
func Split(points []ActivityPoint, screenW, screenH, maxZoom float64, cfg config.Scene) []Scene {
	if len(points) == 0 {
		return nil
	}

	var out []Scene
	for _, group := range primarySplit(points, cfg.IdleGapMs) {
		for _, sub := range subSplit(group, screenW, screenH, cfg) {
			out = append(out, sceneFromGroup(sub, screenW, screenH, maxZoom, cfg))
		}
	}
	return mergePass(out, screenW, screenH, maxZoom, cfg)
}

// ExpandWithChangeRegions unions each scene's bbox with the bboxes of any
// change region whose timestamp falls inside the scene, then recomputes
// center and zoom. Every scene's bbox is clamped to the screen, whether or
// not any region matched it. It is an optional post-pass the orchestrator
// runs only when auto-zoom is enabled and frame differencing succeeded on a
// recording that is not near-static.
func ExpandWithChangeRegions(scs []Scene, regions []geom.ChangeRegion, screenW, screenH, maxZoom float64) []Scene {
	out := make([]Scene, len(scs))
	copy(out, scs)
	for i := range out {
		bbox := out[i].BBox
		for _, r := range regions {
			if r.TimeMs >= out[i].Start && r.TimeMs <= out[i].End {
				bbox = bbox.Union(r.BBox)
			}
		}
		bbox = bbox.Clamp(screenW, screenH)
		out[i].BBox = bbox
		out[i].Center = bbox.Center()
		out[i].Zoom = optimalZoom(bbox, screenW, screenH, maxZoom)
	}
	return out
}

func primarySplit(points []ActivityPoint, idleGapMs int64) [][]ActivityPoint {
	groups := [][]ActivityPoint{{points[0]}}
	for i := 1; i < len(points); i++ {
		if points[i].T-points[i-1].T >= idleGapMs {
			groups = append(groups, []ActivityPoint{points[i]})
			continue
		}
		last := len(groups) - 1
		groups[last] = append(groups[last], points[i])
	}
	return groups
}

func subSplit(group []ActivityPoint, screenW, screenH float64, cfg config.Scene) [][]ActivityPoint {
	bbox := bboxOf(group)
	screenArea := screenW * screenH
	if bbox.Width()*bbox.Height() <= cfg.SubSplitAreaFrac*screenArea || len(group) < cfg.SubSplitMinPoints {
		return [][]ActivityPoint{group}
	}

	subs := [][]ActivityPoint{{group[0]}}
	for i := 1; i < len(group); i++ {
		gap := group[i].T - group[i-1].T
		jump := geom.Dist(geom.Point{X: group[i-1].X, Y: group[i-1].Y}, geom.Point{X: group[i].X, Y: group[i].Y})
		if gap >= cfg.SubSplitGapMs && jump >= cfg.SubSplitJumpPx {
			subs = append(subs, []ActivityPoint{group[i]})
			continue
		}
		last := len(subs) - 1
		subs[last] = append(subs[last], group[i])
	}
	if len(subs) == 1 {
		return [][]ActivityPoint{group}
	}
	return subs
}

func sceneFromGroup(group []ActivityPoint, screenW, screenH, maxZoom float64, cfg config.Scene) Scene {
	bbox := bboxOf(group).MinSize(cfg.MinBBoxSize, cfg.MinBBoxSize).Pad(cfg.BBoxPadding)
	return Scene{
		Start:      group[0].T,
		End:        group[len(group)-1].T,
		BBox:       bbox,
		Center:     bbox.Center(),
		Zoom:       optimalZoom(bbox, screenW, screenH, maxZoom),
		EventCount: len(group),
	}
}

func optimalZoom(bbox geom.Rect, screenW, screenH, maxZoom float64) float64 {
	zx := screenW / bbox.Width()
	zy := screenH / bbox.Height()
	z := zx
	if zy < z {
		z = zy
	}
	return geom.Clamp(z, 1.0, maxZoom)
}

func mergePass(scs []Scene, screenW, screenH, maxZoom float64, cfg config.Scene) []Scene {
	if len(scs) == 0 {
		return scs
	}
	out := []Scene{scs[0]}
	for i := 1; i < len(scs); i++ {
		last := out[len(out)-1]
		cur := scs[i]
		if geom.Dist(last.Center, cur.Center) <= cfg.MergeCenterDist {
			out[len(out)-1] = mergeScenes(last, cur, screenW, screenH, maxZoom)
			continue
		}
		out = append(out, cur)
	}
	renumber(out)
	return out
}

func mergeScenes(a, b Scene, screenW, screenH, maxZoom float64) Scene {
	bbox := a.BBox.Union(b.BBox)
	start, end := a.Start, a.End
	if b.Start < start {
		start = b.Start
	}
	if b.End > end {
		end = b.End
	}
	return Scene{
		Start:      start,
		End:        end,
		BBox:       bbox,
		Center:     bbox.Center(),
		Zoom:       optimalZoom(bbox, screenW, screenH, maxZoom),
		EventCount: a.EventCount + b.EventCount,
	}
}

func bboxOf(points []ActivityPoint) geom.Rect {
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return geom.Rect{Left: minX, Top: minY, Right: maxX, Bottom: maxY}
}

func renumber(scs []Scene) {
	for i := range scs {
		scs[i].ID = i
	}
}
