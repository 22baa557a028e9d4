package diff

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/demoreel/demoreel/internal/config"
	"github.com/demoreel/demoreel/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFrame(t *testing.T, dir string, index int, fill func(x, y int) color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, fill(x, y))
		}
	}
	f, err := os.Create(filepath.Join(dir, framePathName(index)))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func framePathName(index int) string {
	return filepath.Base(framePath("", index))
}

func gray(v uint8) color.RGBA { return color.RGBA{R: v, G: v, B: v, A: 255} }

func testDiffConfig() config.Diff {
	cfg := config.Default().Diff
	cfg.SampleInterval = 1
	cfg.DownsampleFactor = 2
	return cfg
}

func TestIdenticalFramesProduceNoRegion(t *testing.T) {
	dir := t.TempDir()
	writeFrame(t, dir, 0, func(x, y int) color.RGBA { return gray(100) })
	writeFrame(t, dir, 1, func(x, y int) color.RGBA { return gray(100) })

	res, err := Run(dir, 2, 1000, nil, 200, 200, testDiffConfig())
	require.NoError(t, err)
	assert.Empty(t, res.Regions)
}

func TestChangeNearCursorIsExcluded(t *testing.T) {
	dir := t.TempDir()
	writeFrame(t, dir, 0, func(x, y int) color.RGBA { return gray(100) })
	writeFrame(t, dir, 1, func(x, y int) color.RGBA {
		if x >= 30 && x < 70 && y >= 30 && y < 70 {
			return gray(255)
		}
		return gray(100)
	})
	cfg := testDiffConfig()
	cfg.CursorExcludeRadius = 20
	cursor := []geom.TimedPoint{{T: 0, X: 50, Y: 50}, {T: 1000, X: 50, Y: 50}}

	res, err := Run(dir, 2, 1000, cursor, 200, 200, cfg)
	require.NoError(t, err)
	assert.Empty(t, res.Regions)
}

func TestChangeFarFromCursorProducesRegion(t *testing.T) {
	dir := t.TempDir()
	writeFrame(t, dir, 0, func(x, y int) color.RGBA { return gray(100) })
	writeFrame(t, dir, 1, func(x, y int) color.RGBA {
		if x >= 120 && x < 160 && y >= 120 && y < 160 {
			return gray(255)
		}
		return gray(100)
	})
	cfg := testDiffConfig()
	cfg.CursorExcludeRadius = 20
	cfg.MinRegionSize = 10
	cursor := []geom.TimedPoint{{T: 0, X: 50, Y: 50}, {T: 1000, X: 50, Y: 50}}

	res, err := Run(dir, 2, 1000, cursor, 200, 200, cfg)
	require.NoError(t, err)
	require.Len(t, res.Regions, 1)
	r := res.Regions[0]
	assert.InDelta(t, 120, r.BBox.Left, 10)
	assert.InDelta(t, 160, r.BBox.Right, 10)
}

func TestNearestCursorPicksClosestBracket(t *testing.T) {
	traj := []geom.TimedPoint{{T: 0, X: 0, Y: 0}, {T: 100, X: 100, Y: 0}, {T: 300, X: 300, Y: 0}}
	x, _ := coordAt(traj, 90)
	assert.Equal(t, 100.0, x)
	x, _ = coordAt(traj, 40)
	assert.Equal(t, 0.0, x)
}

func coordAt(traj []geom.TimedPoint, t int64) (float64, float64) {
	return nearestCursor(traj, t)
}
