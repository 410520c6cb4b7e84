// Package detect defines the detector capability set and result fusion.
// A detector produces one DetectionResult per image; fusion combines any
// number of them into the externally visible FinalResult. Only the
// projection-profile detector ships today, but the contract stays pluggable.
package detect

import (
	"gocv.io/x/gocv"
)

// DetectionResult is the output of a single detection method.
type DetectionResult struct {
	Width      float64
	Height     float64
	Angle      float64 // degrees
	Confidence float64 // 0-1
	MethodName string

	// Debug is an optional annotated overlay, nil unless the detector ran
	// with debugging enabled. The caller owns it and must Close it.
	Debug *gocv.Mat
}

// Detector measures package-body geometry with one method.
type Detector interface {
	// Name identifies the method in results and diagnostics.
	Name() string

	// Detect measures the package body in a BGR image. A degraded-but-found
	// body is reported with confidence 0; an outright failure is an error.
	Detect(img gocv.Mat) (DetectionResult, error)
}
