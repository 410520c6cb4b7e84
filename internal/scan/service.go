// Package scan exposes the two consumption modes of the detection core:
// measurement only (Analyze) and measurement plus physical crop (Crop). Both
// derive from the same pipeline geometry. The service holds no mutable state
// between calls and is safe for concurrent use as long as each call owns its
// input Mat.
package scan

import (
	"context"

	"gocv.io/x/gocv"

	"ic-gauge/internal/body"
	"ic-gauge/internal/detect"
	"ic-gauge/internal/imgio"
	"ic-gauge/internal/pipeline"
)

// Service dispatches images to the registered detectors and the crop path.
type Service struct {
	pipeline  *pipeline.Pipeline
	detectors []detect.Detector
}

// NewService builds a service with the default pipeline and the
// projection-profile detector.
func NewService() *Service {
	p := pipeline.New()
	return NewServiceWith(p, detect.NewProjectionDetector(p))
}

// NewServiceWith builds a service over an explicit pipeline and detector set.
func NewServiceWith(p *pipeline.Pipeline, detectors ...detect.Detector) *Service {
	return &Service{pipeline: p, detectors: detectors}
}

// Analyze measures the package body with every registered detector and fuses
// the results. Detectors that fail outright are skipped; if none succeed the
// first failure is returned verbatim. There are no internal retries.
func (s *Service) Analyze(ctx context.Context, img gocv.Mat) (*detect.FinalResult, error) {
	results := make([]detect.DetectionResult, 0, len(s.detectors))
	var firstErr error

	for _, d := range s.detectors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := d.Detect(img)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		results = append(results, r)
	}

	if len(results) == 0 {
		if firstErr != nil {
			return nil, firstErr
		}
		return nil, body.ErrNoBodyDetected
	}

	fused, err := detect.Fuse(results)
	if err != nil {
		return nil, err
	}
	return &fused, nil
}

// CropOutcome is the result of a successful crop.
type CropOutcome struct {
	Image gocv.Mat // Cropped raster; the caller must Close it

	Width          float64
	Height         float64
	Angle          float64
	OriginalWidth  float64 // Unrefined rect dimensions, pins included
	OriginalHeight float64

	Path string // Where the crop was written, empty if destPath was empty
}

// Crop measures the package body and extracts the rotated, pin-excluded crop
// from the color image. The geometry is the same one Analyze reports. When
// destPath is non-empty the crop is also written there; storage layout is the
// caller's decision.
func (s *Service) Crop(ctx context.Context, img gocv.Mat, destPath string) (*CropOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	geo, err := s.pipeline.Measure(img)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	crop, err := s.pipeline.Materialize(img, geo)
	if err != nil {
		crop.Close()
		return nil, err
	}

	if destPath != "" {
		if err := imgio.Save(destPath, crop); err != nil {
			crop.Close()
			return nil, err
		}
	}

	return &CropOutcome{
		Image:          crop,
		Width:          geo.Refined.Width,
		Height:         geo.Refined.Height,
		Angle:          geo.Refined.Angle,
		OriginalWidth:  geo.Rect.Width,
		OriginalHeight: geo.Rect.Height,
		Path:           destPath,
	}, nil
}
