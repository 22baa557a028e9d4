// Package spring implements the critically damped spring used to animate
// the zoom viewport and smooth the cursor trajectory. The integration is
// closed-form: a single update step advances the spring by an arbitrary dt
// with no iterative sub-stepping, so output is identical regardless of the
// caller's frame rate.
package spring

import "math"

// epsilon floors half_life so ω never divides by zero.
const epsilon = 1e-6

// Scalar holds the state of one critically damped spring axis.
type Scalar struct {
	Position float64
	Velocity float64
	Target   float64
}

// NewScalar returns a spring at rest at p, targeting p.
func NewScalar(p float64) Scalar {
	return Scalar{Position: p, Velocity: 0, Target: p}
}

// Snap hard-sets position, velocity, and target, discarding any motion.
func (s *Scalar) Snap(p float64) {
	s.Position = p
	s.Velocity = 0
	s.Target = p
}

// SetTarget changes the target without touching position or velocity.
func (s *Scalar) SetTarget(target float64) {
	s.Target = target
}

// Update advances the spring by dt seconds using the closed-form
// critically damped solution. dt < 0 is treated as a no-op, matching the
// spec's "non-negative dt is a no-op on dt=0" invariant generalized to any
// non-positive input.
func (s *Scalar) Update(halfLife, dt float64) {
	if dt <= 0 {
		return
	}
	if halfLife < epsilon {
		halfLife = epsilon
	}
	omega := 4 * math.Ln2 / halfLife

	j0 := s.Position - s.Target
	j1 := s.Velocity + j0*(omega/2)
	e := math.Exp(-(omega / 2) * dt)

	newPosition := e*(j0+j1*dt) + s.Target
	newVelocity := e * (s.Velocity - j1*(omega/2)*dt)

	s.Position = newPosition
	s.Velocity = newVelocity
}
