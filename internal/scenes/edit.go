package scenes

import "github.com/demoreel/demoreel/internal/config"

// Merge unions scene sceneID with sceneID+1, recomputing the bbox from the
// activity points that fall inside the union range; it falls back to a
// plain bbox union when no points fall in range. IDs are renumbered
// afterward. Out-of-range sceneID values are a no-op.
func Merge(scs []Scene, points []ActivityPoint, sceneID int, screenW, screenH, maxZoom float64, cfg config.Scene) []Scene {
	if sceneID < 0 || sceneID+1 >= len(scs) {
		return scs
	}
	a, b := scs[sceneID], scs[sceneID+1]

	var group []ActivityPoint
	for _, p := range points {
		if p.T >= a.Start && p.T <= b.End {
			group = append(group, p)
		}
	}

	var merged Scene
	if len(group) > 0 {
		merged = sceneFromGroup(group, screenW, screenH, maxZoom, cfg)
		merged.Start, merged.End = a.Start, b.End
	} else {
		merged = mergeScenes(a, b, screenW, screenH, maxZoom)
	}

	out := make([]Scene, 0, len(scs)-1)
	out = append(out, scs[:sceneID]...)
	out = append(out, merged)
	out = append(out, scs[sceneID+2:]...)
	renumber(out)
	return out
}

// SplitAt partitions scene sceneID's activity points by splitTime; each
// non-empty half becomes its own scene. A splitTime outside the scene's
// activity leaves one scene, rebuilt from that scene's activity points.
// An out-of-range sceneID, or a scene with no activity points, is a no-op.
func SplitAt(scs []Scene, points []ActivityPoint, sceneID int, splitTime int64, screenW, screenH, maxZoom float64, cfg config.Scene) []Scene {
	if sceneID < 0 || sceneID >= len(scs) {
		return scs
	}
	target := scs[sceneID]

	var before, after []ActivityPoint
	for _, p := range points {
		if p.T < target.Start || p.T > target.End {
			continue
		}
		if p.T < splitTime {
			before = append(before, p)
		} else {
			after = append(after, p)
		}
	}

	var replacement []Scene
	if len(before) > 0 {
		replacement = append(replacement, sceneFromGroup(before, screenW, screenH, maxZoom, cfg))
	}
	if len(after) > 0 {
		replacement = append(replacement, sceneFromGroup(after, screenW, screenH, maxZoom, cfg))
	}
	if len(replacement) == 0 {
		return scs
	}

	out := make([]Scene, 0, len(scs)-1+len(replacement))
	out = append(out, scs[:sceneID]...)
	out = append(out, replacement...)
	out = append(out, scs[sceneID+1:]...)
	renumber(out)
	return out
}
