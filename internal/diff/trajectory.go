package diff

import "github.com/demoreel/demoreel/internal/geom"

// nearestCursor binary-searches a time-sorted cursor trajectory and returns
// the position of whichever bracketing sample is closer in time to t. An
// empty trajectory yields (0,0), meaning the caller applies no exclusion.
func nearestCursor(traj []geom.TimedPoint, t int64) (float64, float64) {
	if len(traj) == 0 {
		return 0, 0
	}

	lo, hi := 0, len(traj)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if traj[mid].T < t {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	if lo == 0 {
		return traj[0].X, traj[0].Y
	}
	before, after := traj[lo-1], traj[lo]
	if t-before.T <= after.T-t {
		return before.X, before.Y
	}
	return after.X, after.Y
}
