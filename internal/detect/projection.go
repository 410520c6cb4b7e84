package detect

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"ic-gauge/internal/pipeline"
	"ic-gauge/internal/refine"
)

// baseConfidence is the fixed score of a successful projection-profile
// detection; refinement failures multiply it by zero.
const baseConfidence = 0.9

// ProjectionDetector measures body geometry with CLAHE preprocessing and
// projection-profile refinement. It is the one shipped Detector.
type ProjectionDetector struct {
	Pipeline  *pipeline.Pipeline
	DebugMode bool
}

// NewProjectionDetector creates the detector over a shared pipeline.
func NewProjectionDetector(p *pipeline.Pipeline) *ProjectionDetector {
	return &ProjectionDetector{Pipeline: p}
}

// Name implements Detector.
func (d *ProjectionDetector) Name() string {
	return "projection-profile"
}

// Detect implements Detector. A body whose refinement degrades (degenerate
// size, failed ROI extraction) is reported with the unrefined rectangle at
// confidence 0; a missing body propagates as an error.
func (d *ProjectionDetector) Detect(img gocv.Mat) (DetectionResult, error) {
	geo, err := d.Pipeline.Measure(img)
	factor := 1.0
	if err != nil {
		if !errors.Is(err, refine.ErrRefinementDegenerate) && !errors.Is(err, refine.ErrRegionExtraction) {
			return DetectionResult{}, err
		}
		factor = 0
	}

	if d.DebugMode {
		m := geo.Refined.Metrics
		fmt.Printf("Detect: rect %.1fx%.1f at %.1f deg, family=%s ar=%.2f slopeH=%.2f slopeW=%.2f tail=%.3f\n",
			geo.Rect.Width, geo.Rect.Height, geo.Rect.Angle,
			geo.Refined.Family, m.AspectRatio, m.SlopeH, m.SlopeW, m.TailRatio)
	}

	result := DetectionResult{
		Width:      geo.Refined.Width,
		Height:     geo.Refined.Height,
		Angle:      geo.Refined.Angle,
		Confidence: baseConfidence * factor,
		MethodName: d.Name(),
	}

	if d.DebugMode {
		overlay := drawOverlay(img, geo)
		result.Debug = &overlay
	}

	return result, nil
}

// drawOverlay renders the detection on a copy of the input: source contour in
// red, refined body box in green, dimensions label at the center.
func drawOverlay(img gocv.Mat, geo *pipeline.Geometry) gocv.Mat {
	out := img.Clone()

	contours := gocv.NewPointsVectorFromPoints([][]image.Point{geo.Contour})
	defer contours.Close()
	gocv.DrawContours(&out, contours, 0, color.RGBA{R: 255}, 1)

	green := color.RGBA{G: 255}
	corners := geo.Refined.Rect().Corners()
	for i := range corners {
		a := corners[i].ToImagePoint()
		b := corners[(i+1)%len(corners)].ToImagePoint()
		gocv.Line(&out, a, b, green, 3)
	}

	label := fmt.Sprintf("%.1fx%.1fpx", geo.Refined.Width, geo.Refined.Height)
	at := image.Pt(int(geo.Refined.Center.X)-50, int(geo.Refined.Center.Y))
	gocv.PutText(&out, label, at, gocv.FontHersheySimplex, 1, color.RGBA{R: 255, G: 255, B: 255}, 2)

	return out
}
