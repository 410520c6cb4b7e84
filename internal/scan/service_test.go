package scan

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"ic-gauge/pkg/geometry"
)

func syntheticPhoto(w, h int, rect geometry.OrientedRect) gocv.Mat {
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(190, 190, 190, 0), h, w, gocv.MatTypeCV8UC3)

	c := rect.Corners()
	pts := make([]image.Point, len(c))
	for i, p := range c {
		pts[i] = p.ToImagePoint()
	}
	pv := gocv.NewPointsVectorFromPoints([][]image.Point{pts})
	defer pv.Close()
	gocv.FillPoly(&img, pv, color.RGBA{R: 45, G: 45, B: 45, A: 255})

	return img
}

func testRect() geometry.OrientedRect {
	return geometry.OrientedRect{
		Center: geometry.Point2D{X: 400, Y: 300},
		Width:  300,
		Height: 100,
		Angle:  10,
	}
}

func TestAnalyze(t *testing.T) {
	img := syntheticPhoto(800, 600, testRect())
	defer img.Close()

	result, err := NewService().Analyze(context.Background(), img)
	require.NoError(t, err)

	require.InDelta(t, 300, result.Width, 6)
	require.InDelta(t, 100, result.Height, 3)
	require.InDelta(t, 10, result.Angle, 1)
	require.Greater(t, result.Confidence, 0.8)
	require.Equal(t, "1/1", result.Agreement)
}

func TestCropWritesFileAndStats(t *testing.T) {
	img := syntheticPhoto(800, 600, testRect())
	defer img.Close()

	svc := NewService()
	dest := filepath.Join(t.TempDir(), "crop.png")
	outcome, err := svc.Crop(context.Background(), img, dest)
	require.NoError(t, err)
	defer outcome.Image.Close()

	// Both consumption modes derive from the same pipeline geometry.
	analyzed, err := svc.Analyze(context.Background(), img)
	require.NoError(t, err)
	require.InDelta(t, analyzed.Width, outcome.Width, 1e-9)
	require.InDelta(t, analyzed.Height, outcome.Height, 1e-9)
	require.InDelta(t, analyzed.Angle, outcome.Angle, 1e-9)

	require.InDelta(t, 300, outcome.Width, 6)
	require.InDelta(t, 100, outcome.Height, 3)
	require.InDelta(t, 10, outcome.Angle, 1)
	require.InDelta(t, outcome.Width, outcome.OriginalWidth, 8)
	require.Equal(t, dest, outcome.Path)

	require.Equal(t, int(outcome.Height), outcome.Image.Rows())
	require.Equal(t, int(outcome.Width), outcome.Image.Cols())

	info, err := os.Stat(dest)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestCropWithoutDestination(t *testing.T) {
	img := syntheticPhoto(800, 600, testRect())
	defer img.Close()

	outcome, err := NewService().Crop(context.Background(), img, "")
	require.NoError(t, err)
	defer outcome.Image.Close()

	require.Empty(t, outcome.Path)
	require.False(t, outcome.Image.Empty())
}

func TestCanceledContext(t *testing.T) {
	img := syntheticPhoto(800, 600, testRect())
	defer img.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService()
	_, err := svc.Analyze(ctx, img)
	require.ErrorIs(t, err, context.Canceled)

	_, err = svc.Crop(ctx, img, "")
	require.ErrorIs(t, err, context.Canceled)
}
