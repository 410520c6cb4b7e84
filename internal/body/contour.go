package body

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
)

// ErrNoBodyDetected indicates that no contour survived the area filter —
// either the mask was empty or everything in it was noise or full-frame.
var ErrNoBodyDetected = errors.New("no package body detected")

// SelectContour extracts external contours from the mask and returns the one
// most likely to be the package body: the largest contour whose enclosed area
// lies strictly between MinAreaFrac and MaxAreaFrac of the image area. The
// fractional window keeps selection invariant to camera distance and
// resolution.
func SelectContour(mask gocv.Mat, params Params) ([]image.Point, error) {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	imgArea := float64(mask.Cols() * mask.Rows())
	minArea := params.MinAreaFrac * imgArea
	maxArea := params.MaxAreaFrac * imgArea

	bestIdx := -1
	bestArea := 0.0
	for i := 0; i < contours.Size(); i++ {
		area := gocv.ContourArea(contours.At(i))
		if area <= minArea || area >= maxArea {
			continue
		}
		if area > bestArea {
			bestArea = area
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return nil, ErrNoBodyDetected
	}

	// Copy out of the C-owned vector so the contour outlives it
	return contours.At(bestIdx).ToPoints(), nil
}
