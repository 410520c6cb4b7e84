// Package pipeline composes the detection stages into one shared
// measure/materialize core. Both consumption modes — dimension analysis and
// smart cropping — derive their geometry from the same Measure call, so the
// two paths cannot drift apart.
package pipeline

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"ic-gauge/internal/body"
	"ic-gauge/internal/refine"
	"ic-gauge/pkg/geometry"
)

// ErrInputInvalid indicates the supplied image is not a usable raster.
var ErrInputInvalid = errors.New("input image invalid")

// Pipeline holds the stage parameters. The zero value is not usable; build
// one with New and override fields as needed.
type Pipeline struct {
	Body   body.Params
	Refine refine.Params
}

// New returns a pipeline with the tuned default parameters.
func New() *Pipeline {
	return &Pipeline{
		Body:   body.DefaultParams(),
		Refine: refine.DefaultParams(),
	}
}

// Geometry is the shared intermediate state of one detection run.
type Geometry struct {
	Contour []image.Point         // Selected body contour, original frame
	Rect    geometry.OrientedRect // Initial normalized min-area rect
	Refined refine.Result         // Pin-excluded body geometry

	ImageWidth  int
	ImageHeight int
}

// Measure runs preprocessing, contour selection, orientation normalization,
// and projection-profile refinement over one image.
//
// On refine.ErrRefinementDegenerate and refine.ErrRegionExtraction the
// returned Geometry is still populated with the unrefined rectangle, so
// callers can report a zero-confidence fallback instead of fabricating a
// degenerate size. All other errors return a nil Geometry.
func (p *Pipeline) Measure(img gocv.Mat) (*Geometry, error) {
	if img.Empty() {
		return nil, ErrInputInvalid
	}

	mask, err := body.Preprocess(img, p.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputInvalid, err)
	}
	defer mask.Close()

	contour, err := body.SelectContour(mask, p.Body)
	if err != nil {
		return nil, err
	}

	rect := body.Orient(contour)

	refined, err := refine.Refine(mask, rect, p.Refine)
	geo := &Geometry{
		Contour:     contour,
		Rect:        rect,
		Refined:     refined,
		ImageWidth:  img.Cols(),
		ImageHeight: img.Rows(),
	}
	return geo, err
}

// Materialize rotates the color image by the measured angle and extracts the
// refined body region. It reuses the geometry from Measure; the only
// difference from the measurement path is cubic interpolation, which
// preserves visual quality where the mask warp used nearest-neighbor.
func (p *Pipeline) Materialize(img gocv.Mat, geo *Geometry) (gocv.Mat, error) {
	if img.Empty() || geo == nil {
		return gocv.NewMat(), ErrInputInvalid
	}

	center := geo.Rect.Center.ToImagePoint()
	rot := gocv.GetRotationMatrix2D(center, geo.Rect.Angle, 1.0)
	defer rot.Close()

	rotated := gocv.NewMat()
	defer rotated.Close()
	gocv.WarpAffineWithParams(img, &rotated, rot, image.Pt(img.Cols(), img.Rows()),
		gocv.InterpolationCubic, gocv.BorderConstant, color.RGBA{})

	crop := gocv.NewMat()
	size := image.Pt(int(geo.Refined.Width), int(geo.Refined.Height))
	gocv.GetRectSubPix(rotated, size, geo.Refined.CenterRotated.ToImagePoint(), &crop)
	if crop.Empty() {
		return crop, refine.ErrRegionExtraction
	}
	return crop, nil
}
