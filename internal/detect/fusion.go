package detect

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"ic-gauge/internal/body"
)

// agreementTolerance is the relative deviation from the fused dimensions
// within which a method counts as agreeing.
const agreementTolerance = 0.05

// FinalResult is the fused, externally visible measurement.
type FinalResult struct {
	Width      float64
	Height     float64
	Angle      float64
	Confidence float64
	Agreement  string // e.g. "1/1": methods agreeing / methods run
	Results    []DetectionResult
}

// Fuse combines detector outputs into one measurement. A single result passes
// through unchanged. Multiple results are averaged weighted by confidence,
// with the agreement descriptor counting methods within tolerance of the
// fused dimensions. An empty input means every detector failed outright,
// which is a missing body, not a zero-confidence geometry.
func Fuse(results []DetectionResult) (FinalResult, error) {
	if len(results) == 0 {
		return FinalResult{}, body.ErrNoBodyDetected
	}

	if len(results) == 1 {
		r := results[0]
		return FinalResult{
			Width:      r.Width,
			Height:     r.Height,
			Angle:      r.Angle,
			Confidence: r.Confidence,
			Agreement:  "1/1",
			Results:    results,
		}, nil
	}

	widths := make([]float64, len(results))
	heights := make([]float64, len(results))
	angles := make([]float64, len(results))
	weights := make([]float64, len(results))
	for i, r := range results {
		widths[i] = r.Width
		heights[i] = r.Height
		angles[i] = r.Angle
		w := r.Confidence
		if w <= 0 {
			w = 1e-6 // keep zero-confidence methods from dropping out of the mean entirely
		}
		weights[i] = w
	}

	fused := FinalResult{
		Width:   stat.Mean(widths, weights),
		Height:  stat.Mean(heights, weights),
		Angle:   stat.Mean(angles, weights),
		Results: results,
	}

	agreed := 0
	maxConf := 0.0
	for _, r := range results {
		if withinTolerance(r.Width, fused.Width) && withinTolerance(r.Height, fused.Height) {
			agreed++
		}
		if r.Confidence > maxConf {
			maxConf = r.Confidence
		}
	}
	fused.Confidence = maxConf * float64(agreed) / float64(len(results))
	fused.Agreement = fmt.Sprintf("%d/%d", agreed, len(results))

	return fused, nil
}

func withinTolerance(v, ref float64) bool {
	if ref == 0 {
		return v == 0
	}
	return math.Abs(v-ref)/math.Abs(ref) <= agreementTolerance
}
