package refine

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"ic-gauge/pkg/geometry"
)

// fillRect rasterizes an oriented rectangle into a binary mask.
func fillRect(mask *gocv.Mat, r geometry.OrientedRect) {
	c := r.Corners()
	pts := make([]image.Point, len(c))
	for i, p := range c {
		pts[i] = p.ToImagePoint()
	}
	pv := gocv.NewPointsVectorFromPoints([][]image.Point{pts})
	defer pv.Close()
	gocv.FillPoly(mask, pv, color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

func TestRefineCleanBody(t *testing.T) {
	mask := gocv.NewMatWithSize(300, 300, gocv.MatTypeCV8U)
	defer mask.Close()

	rect := geometry.OrientedRect{
		Center: geometry.Point2D{X: 150, Y: 150},
		Width:  200,
		Height: 100,
	}
	fillRect(&mask, rect)

	res, err := Refine(mask, rect, DefaultParams())
	require.NoError(t, err)

	require.InDelta(t, 200, res.Width, 2)
	require.InDelta(t, 100, res.Height, 2)
	require.InDelta(t, 150, res.Center.X, 1)
	require.InDelta(t, 150, res.Center.Y, 1)
	require.Equal(t, 0.0, res.Angle)
	require.Equal(t, FamilySoicStandard, res.Family)
	require.InDelta(t, 2.0, res.Metrics.AspectRatio, 0.1)
}

func TestRefineRotatedBody(t *testing.T) {
	mask := gocv.NewMatWithSize(400, 400, gocv.MatTypeCV8U)
	defer mask.Close()

	rect := geometry.OrientedRect{
		Center: geometry.Point2D{X: 200, Y: 200},
		Width:  200,
		Height: 80,
		Angle:  30,
	}
	fillRect(&mask, rect)

	res, err := Refine(mask, rect, DefaultParams())
	require.NoError(t, err)

	require.InDelta(t, 200, res.Width, 6)
	require.InDelta(t, 80, res.Height, 4)
	require.InDelta(t, 200, res.Center.X, 2)
	require.InDelta(t, 200, res.Center.Y, 2)
	require.Equal(t, 30.0, res.Angle)
}

func TestRefineDegenerate(t *testing.T) {
	mask := gocv.NewMatWithSize(60, 60, gocv.MatTypeCV8U)
	defer mask.Close()

	// A 4x4 blob is below the 10px floor in both dimensions.
	rect := geometry.OrientedRect{
		Center: geometry.Point2D{X: 30, Y: 30},
		Width:  4,
		Height: 4,
	}
	fillRect(&mask, rect)

	res, err := Refine(mask, rect, DefaultParams())
	require.ErrorIs(t, err, ErrRefinementDegenerate)

	// Fallback carries the unrefined rectangle for zero-confidence reporting.
	require.Equal(t, rect.Width, res.Width)
	require.Equal(t, rect.Height, res.Height)
	require.Equal(t, rect.Center, res.Center)
	require.Equal(t, rect.Center, res.CenterRotated)
}

func TestResultRect(t *testing.T) {
	res := Result{
		Width:  120,
		Height: 40,
		Center: geometry.Point2D{X: 5, Y: 6},
		Angle:  12,
	}
	rect := res.Rect()
	require.Equal(t, res.Center, rect.Center)
	require.Equal(t, res.Width, rect.Width)
	require.Equal(t, res.Height, rect.Height)
	require.Equal(t, res.Angle, rect.Angle)
}
