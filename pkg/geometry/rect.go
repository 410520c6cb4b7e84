package geometry

import "math"

// OrientedRect represents a rotated rectangle. Angle is the direction of the
// Width axis in degrees, measured from the +x axis toward +y (y points down
// in image coordinates). Width >= Height is NOT guaranteed here; callers that
// need the long-axis convention must go through Normalized.
type OrientedRect struct {
	Center Point2D `json:"center"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Angle  float64 `json:"angle"` // degrees
}

// Normalized returns the rectangle with Width >= Height. When the axes are
// swapped the angle is advanced by 90 degrees, then wrapped to [-90, 90).
func (r OrientedRect) Normalized() OrientedRect {
	out := r
	if out.Width < out.Height {
		out.Width, out.Height = out.Height, out.Width
		out.Angle += 90
	}
	for out.Angle >= 90 {
		out.Angle -= 180
	}
	for out.Angle < -90 {
		out.Angle += 180
	}
	return out
}

// Corners returns the four corner points in order.
func (r OrientedRect) Corners() [4]Point2D {
	rad := r.Angle * math.Pi / 180
	u := Point2D{X: math.Cos(rad), Y: math.Sin(rad)}   // width axis
	v := Point2D{X: -math.Sin(rad), Y: math.Cos(rad)} // height axis
	hw, hh := r.Width/2, r.Height/2
	return [4]Point2D{
		r.Center.Add(u.Scale(-hw)).Add(v.Scale(-hh)),
		r.Center.Add(u.Scale(hw)).Add(v.Scale(-hh)),
		r.Center.Add(u.Scale(hw)).Add(v.Scale(hh)),
		r.Center.Add(u.Scale(-hw)).Add(v.Scale(hh)),
	}
}

// Area returns the rectangle area.
func (r OrientedRect) Area() float64 {
	return r.Width * r.Height
}

// MinAreaRect computes the minimum-area enclosing rectangle of a point set
// using rotating calipers over the convex hull. This is an exact computation:
// the optimal rectangle is flush with one hull edge. A pure Go implementation
// is used instead of the gocv binding, which truncates center and size to
// integers and has shifted its angle convention between OpenCV releases.
func MinAreaRect(points []Point2D) OrientedRect {
	hull := ConvexHull(points)

	switch len(hull) {
	case 0:
		return OrientedRect{}
	case 1:
		return OrientedRect{Center: hull[0]}
	case 2:
		mid := hull[0].Add(hull[1]).Scale(0.5)
		d := hull[1].Sub(hull[0])
		return OrientedRect{
			Center: mid,
			Width:  hull[0].Distance(hull[1]),
			Angle:  math.Atan2(d.Y, d.X) * 180 / math.Pi,
		}
	}

	best := OrientedRect{}
	bestArea := math.Inf(1)

	n := len(hull)
	for i := 0; i < n; i++ {
		edge := hull[(i+1)%n].Sub(hull[i])
		length := math.Hypot(edge.X, edge.Y)
		if length == 0 {
			continue
		}
		u := edge.Scale(1 / length)          // edge direction
		v := Point2D{X: -u.Y, Y: u.X}        // edge normal

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			pu := p.Dot(u)
			pv := p.Dot(v)
			minU = math.Min(minU, pu)
			maxU = math.Max(maxU, pu)
			minV = math.Min(minV, pv)
			maxV = math.Max(maxV, pv)
		}

		w := maxU - minU
		h := maxV - minV
		if w*h < bestArea {
			bestArea = w * h
			cu := (minU + maxU) / 2
			cv := (minV + maxV) / 2
			best = OrientedRect{
				Center: u.Scale(cu).Add(v.Scale(cv)),
				Width:  w,
				Height: h,
				Angle:  math.Atan2(u.Y, u.X) * 180 / math.Pi,
			}
		}
	}

	return best
}
