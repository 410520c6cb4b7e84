package detect

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"ic-gauge/internal/body"
	"ic-gauge/internal/pipeline"
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

func TestProjectionDetect(t *testing.T) {
	rect := geometry.OrientedRect{
		Center: geometry.Point2D{X: 400, Y: 300},
		Width:  300,
		Height: 100,
		Angle:  10,
	}
	img := syntheticPhoto(800, 600, rect)
	defer img.Close()

	d := NewProjectionDetector(pipeline.New())
	result, err := d.Detect(img)
	require.NoError(t, err)

	require.Equal(t, "projection-profile", result.MethodName)
	require.InDelta(t, 300, result.Width, 6)
	require.InDelta(t, 100, result.Height, 3)
	require.InDelta(t, 10, result.Angle, 1)
	require.Greater(t, result.Confidence, 0.8)
	require.Nil(t, result.Debug)
}

func TestProjectionDetectDebugOverlay(t *testing.T) {
	rect := geometry.OrientedRect{
		Center: geometry.Point2D{X: 300, Y: 200},
		Width:  200,
		Height: 80,
	}
	img := syntheticPhoto(600, 400, rect)
	defer img.Close()

	d := NewProjectionDetector(pipeline.New())
	d.DebugMode = true
	result, err := d.Detect(img)
	require.NoError(t, err)

	require.NotNil(t, result.Debug)
	defer result.Debug.Close()
	require.Equal(t, img.Rows(), result.Debug.Rows())
	require.Equal(t, img.Cols(), result.Debug.Cols())
}

func TestProjectionDetectNoBody(t *testing.T) {
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(190, 190, 190, 0), 400, 400, gocv.MatTypeCV8UC3)
	defer img.Close()

	_, err := NewProjectionDetector(pipeline.New()).Detect(img)
	require.ErrorIs(t, err, body.ErrNoBodyDetected)
}
