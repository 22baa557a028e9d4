// Package cursor spring-smooths the raw cursor trajectory recorded during
// capture so the compositor's cursor sprite doesn't visibly jitter at the
// input device's native sample rate.
package cursor

import (
	"github.com/demoreel/demoreel/internal/geom"
	"github.com/demoreel/demoreel/internal/spring"
)

// SmoothingHalfLife is the half-life used to smooth the raw cursor signal.
// It is not configurable via internal/config because it is an implementation
// detail of the smoother rather than a tunable the zoom plan exposes.
const SmoothingHalfLife = 0.08

// Smooth takes time-ordered (t,x,y) samples and returns smoothed samples at
// the same timestamps. It is frame-rate independent: the same input samples
// always yield the same output samples, regardless of how fast the caller
// processes them, because each step advances the spring by the samples'
// own dt rather than a wall-clock tick.
func Smooth(samples []geom.TimedPoint) []geom.TimedPoint {
	if len(samples) == 0 {
		return nil
	}

	x := spring.NewScalar(samples[0].X)
	y := spring.NewScalar(samples[0].Y)
	out := make([]geom.TimedPoint, len(samples))
	out[0] = samples[0]

	for i := 1; i < len(samples); i++ {
		dt := float64(samples[i].T-samples[i-1].T) / 1000
		x.SetTarget(samples[i].X)
		y.SetTarget(samples[i].Y)
		x.Update(SmoothingHalfLife, dt)
		y.Update(SmoothingHalfLife, dt)
		out[i] = geom.TimedPoint{T: samples[i].T, X: x.Position, Y: y.Position}
	}
	return out
}
