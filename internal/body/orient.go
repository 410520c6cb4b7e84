package body

import (
	"image"

	"ic-gauge/pkg/geometry"
)

// Orient computes the minimum-area enclosing rectangle of a contour and fixes
// the angle convention: width is always the long axis, and the angle is the
// rotation that makes that axis horizontal.
func Orient(contour []image.Point) geometry.OrientedRect {
	rect := geometry.MinAreaRect(geometry.FromImagePoints(contour))
	return rect.Normalized()
}
