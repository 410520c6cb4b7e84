package refine

import (
	"errors"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"ic-gauge/internal/profile"
	"ic-gauge/pkg/geometry"
)

// ErrRefinementDegenerate indicates the refined body fell below the minimum
// size floor in at least one dimension.
var ErrRefinementDegenerate = errors.New("refined body dimensions degenerate")

// ErrRegionExtraction indicates the padded ROI could not be extracted from
// the straightened mask.
var ErrRegionExtraction = errors.New("region extraction failed")

// Result is the refiner output. On failure the fields still carry the
// unrefined rectangle so callers can report a zero-confidence fallback.
type Result struct {
	Width  float64
	Height float64
	// Center is the refined center in the original image frame.
	Center geometry.Point2D
	// CenterRotated is the refined center in the straightened frame; the
	// crop path extracts from the rotated image at this point.
	CenterRotated geometry.Point2D
	Angle         float64
	Family        Family
	Metrics       Metrics
}

// Rect returns the refined geometry as an oriented rectangle in the original
// image frame.
func (r Result) Rect() geometry.OrientedRect {
	return geometry.OrientedRect{
		Center: r.Center,
		Width:  r.Width,
		Height: r.Height,
		Angle:  r.Angle,
	}
}

// unrefined builds the fallback result for a failed refinement.
func unrefined(rect geometry.OrientedRect) Result {
	return Result{
		Width:         rect.Width,
		Height:        rect.Height,
		Center:        rect.Center,
		CenterRotated: rect.Center,
		Angle:         rect.Angle,
	}
}

// Refine straightens the mask by the rect angle, projects the padded ROI onto
// both axes, and re-derives the body bounds with family-specific profile
// thresholds that exclude pin rows. The returned center is expressed in the
// original image frame by applying the inverse of the straightening rotation
// to the measured offset.
func Refine(mask gocv.Mat, rect geometry.OrientedRect, params Params) (Result, error) {
	center := rect.Center.ToImagePoint()

	// Straighten the mask about the rect center. Nearest-neighbor keeps the
	// mask binary.
	rot := gocv.GetRotationMatrix2D(center, rect.Angle, 1.0)
	defer rot.Close()
	straight := gocv.NewMat()
	defer straight.Close()
	gocv.WarpAffineWithParams(mask, &straight, rot, image.Pt(mask.Cols(), mask.Rows()),
		gocv.InterpolationNearestNeighbor, gocv.BorderConstant, color.RGBA{})

	// Padded ROI: the pad guarantees the full pin extent is captured even
	// though the final body may be smaller than the initial estimate.
	roiW := int(rect.Width) + 2*params.Pad
	roiH := int(rect.Height) + 2*params.Pad
	roi := gocv.NewMat()
	defer roi.Close()
	gocv.GetRectSubPix(straight, image.Pt(roiW, roiH), center, &roi)
	if roi.Empty() || roi.Cols() == 0 || roi.Rows() == 0 {
		return unrefined(rect), ErrRegionExtraction
	}

	rowProf := profile.RowSums(roi)
	colProf := profile.ColSums(roi)

	// Aspect estimate at the 90% level, falling back to the rect's own
	// dimensions on a degenerate range.
	y0, y1 := rowProf.Range(0.90)
	x0, x1 := colProf.Range(0.90)
	hEst := float64(y1 - y0)
	wEst := float64(x1 - x0)
	if hEst == 0 {
		hEst = rect.Height
	}
	if wEst == 0 {
		wEst = rect.Width
	}

	metrics := Metrics{
		AspectRatio: wEst / hEst,
		SlopeH:      1.0,
		SlopeW:      1.0,
		TailRatio:   rowProf.TailRatio(rect.Height),
	}

	y0w, y1w := rowProf.Range(0.50)
	if hEst > 0 {
		metrics.SlopeH = float64(y1w-y0w) / hEst
	}
	x0w, x1w := colProf.Range(0.50)
	if wEst > 0 {
		metrics.SlopeW = float64(x1w-x0w) / wEst
	}

	family := Classify(metrics, params)
	thresholds := params.Thresholds[family]

	yStart, yEnd := rowProf.Range(thresholds.Height)
	xStart, xEnd := colProf.Range(thresholds.Width)

	newH := yEnd - yStart
	newW := xEnd - xStart
	if newH < params.MinBodyPx || newW < params.MinBodyPx {
		res := unrefined(rect)
		res.Family = family
		res.Metrics = metrics
		return res, ErrRefinementDegenerate
	}

	// Offset of the refined region center from the ROI center, measured in
	// the straightened frame.
	shift := geometry.Point2D{
		X: float64(xStart+xEnd)/2 - float64(roiW/2),
		Y: float64(yStart+yEnd)/2 - float64(roiH/2),
	}

	// Map the offset back into the original frame. The straightening warp
	// rotates coordinates by -angle, so the inverse is a rotation by +angle.
	global := geometry.Rotation(rect.Angle * math.Pi / 180).Apply(shift)

	return Result{
		Width:         float64(newW),
		Height:        float64(newH),
		Center:        rect.Center.Add(global),
		CenterRotated: rect.Center.Add(shift),
		Angle:         rect.Angle,
		Family:        family,
		Metrics:       metrics,
	}, nil
}
