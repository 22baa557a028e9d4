package events

import "github.com/demoreel/demoreel/internal/geom"

const (
	moveThinDistancePx  = 3.0
	moveThinStopMs      = 200
	significantWindowMs = 100
	dragReleaseMinPx    = 20.0
	dragAbandonMinPx    = 50.0
)

// Preprocess thins the raw mouse-move stream and detects drag gestures. It
// is total: there is no failure mode, per spec.
func Preprocess(raw []Event) (thinned []Event, drags []Drag) {
	sig := significantTimes(raw)
	thinned = thinMoves(raw, sig)
	drags = detectDrags(raw)
	return thinned, drags
}

func significantTimes(raw []Event) []int64 {
	var sig []int64
	for _, e := range raw {
		switch e.Type {
		case Click, ClickRelease, Scroll, Key:
			sig = append(sig, e.T)
		}
	}
	return sig
}

// nearSignificant reports whether t lies within windowMs of any timestamp in
// sig. sig is assumed to arrive in the same order as the event log, which is
// monotonically non-decreasing per source, so a linear scan from the last
// matched index would suffice; a plain scan is used here since event logs
// are not large enough to warrant the bookkeeping.
func nearSignificant(t int64, sig []int64, windowMs int64) bool {
	for _, s := range sig {
		d := t - s
		if d < 0 {
			d = -d
		}
		if d <= windowMs {
			return true
		}
	}
	return false
}

func thinMoves(raw []Event, sig []int64) []Event {
	out := make([]Event, 0, len(raw))
	var last Event
	haveLast := false

	for _, e := range raw {
		if e.Type != MouseMove {
			out = append(out, e)
			continue
		}

		keep := !haveLast
		if !haveLast {
			keep = true
		} else {
			dist := geom.Dist(geom.Point{X: last.X, Y: last.Y}, geom.Point{X: e.X, Y: e.Y})
			if dist >= moveThinDistancePx {
				keep = true
			}
			if e.T-last.T >= moveThinStopMs {
				keep = true
			}
			if nearSignificant(e.T, sig, significantWindowMs) {
				keep = true
			}
		}

		if keep {
			out = append(out, e)
			last = e
			haveLast = true
		}
	}
	return out
}

func detectDrags(raw []Event) []Drag {
	var drags []Drag
	for i, e := range raw {
		if e.Type != Click || e.Button != "left" {
			continue
		}

		startX, startY, startT := e.X, e.Y, e.T
		maxDist := 0.0
		endX, endY, endT := startX, startY, startT
		foundRelease := false

		for j := i + 1; j < len(raw); j++ {
			f := raw[j]
			if f.Type == Click {
				break
			}
			if f.HasCoords() {
				d := geom.Dist(geom.Point{X: startX, Y: startY}, geom.Point{X: f.X, Y: f.Y})
				if d > maxDist {
					maxDist = d
				}
				endX, endY, endT = f.X, f.Y, f.T
			}
			if f.Type == ClickRelease && f.Button == e.Button {
				foundRelease = true
				break
			}
		}

		displacement := geom.Dist(geom.Point{X: startX, Y: startY}, geom.Point{X: endX, Y: endY})
		switch {
		case foundRelease && displacement > dragReleaseMinPx:
			drags = append(drags, Drag{StartMs: startT, EndMs: endT, StartX: startX, StartY: startY, EndX: endX, EndY: endY})
		case !foundRelease && maxDist > dragAbandonMinPx:
			drags = append(drags, Drag{StartMs: startT, EndMs: endT, StartX: startX, StartY: startY, EndX: endX, EndY: endY})
		}
	}
	return drags
}
