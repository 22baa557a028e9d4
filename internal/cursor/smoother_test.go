package cursor

import (
	"testing"

	"github.com/demoreel/demoreel/internal/geom"
	"github.com/stretchr/testify/assert"
)

func TestSmoothIsFrameRateIndependent(t *testing.T) {
	samples := []geom.TimedPoint{
		{T: 0, X: 0, Y: 0},
		{T: 16, X: 10, Y: 5},
		{T: 33, X: 20, Y: 10},
		{T: 50, X: 30, Y: 12},
	}
	a := Smooth(samples)
	b := Smooth(samples)
	assert.Equal(t, a, b)
}

func TestSmoothPreservesTimestamps(t *testing.T) {
	samples := []geom.TimedPoint{
		{T: 0, X: 0, Y: 0},
		{T: 100, X: 50, Y: 50},
	}
	out := Smooth(samples)
	for i, s := range samples {
		assert.Equal(t, s.T, out[i].T)
	}
}

func TestSmoothFirstSampleUnchanged(t *testing.T) {
	samples := []geom.TimedPoint{{T: 0, X: 42, Y: 17}}
	out := Smooth(samples)
	assert.Equal(t, samples, out)
}
