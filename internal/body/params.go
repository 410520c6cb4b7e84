// Package body isolates the IC package body in a photograph: it produces a
// binary foreground mask, selects the body contour, and derives its oriented
// bounding rectangle.
package body

import "image"

// Params controls preprocessing and contour selection.
type Params struct {
	// Local contrast normalization (CLAHE) before thresholding
	ClipLimit float64     // Contrast clip limit
	TileGrid  image.Point // Equalization tile grid

	// Noise suppression before Otsu
	BlurKernel image.Point // Gaussian kernel size

	// Mask cleanup after thresholding
	MorphKernel     image.Point // Structuring element size
	CloseIterations int         // Fill markings/highlights inside the body
	OpenIterations  int         // Remove speckle outside the body

	// Contour area window as fractions of total image area. The lower bound
	// rejects noise specks, the upper bound rejects a mask that classified
	// the whole frame as foreground.
	MinAreaFrac float64
	MaxAreaFrac float64
}

// DefaultParams returns the tuned defaults for IC package photos.
func DefaultParams() Params {
	return Params{
		ClipLimit:       2.0,
		TileGrid:        image.Pt(8, 8),
		BlurKernel:      image.Pt(5, 5),
		MorphKernel:     image.Pt(5, 5),
		CloseIterations: 3,
		OpenIterations:  2,
		MinAreaFrac:     0.01,
		MaxAreaFrac:     0.90,
	}
}
