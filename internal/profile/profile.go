// Package profile implements 1-D projection profiles over binary masks.
// A profile is the count of foreground pixels along each row or column of a
// region, and is the primitive used to locate body edges robustly: a sharp
// drop marks the plastic edge, a gradual tail marks pin rows.
package profile

import (
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/floats"
)

// Profile is an ordered sequence of per-line foreground pixel counts.
type Profile []float64

// RowSums computes the vertical profile of an 8-bit mask: one foreground
// count per row.
func RowSums(mask gocv.Mat) Profile {
	rows, cols := mask.Rows(), mask.Cols()
	data := mask.ToBytes()
	p := make(Profile, rows)
	for y := 0; y < rows; y++ {
		sum := 0
		row := data[y*cols : (y+1)*cols]
		for _, v := range row {
			sum += int(v)
		}
		p[y] = float64(sum) / 255.0
	}
	return p
}

// ColSums computes the horizontal profile of an 8-bit mask: one foreground
// count per column.
func ColSums(mask gocv.Mat) Profile {
	rows, cols := mask.Rows(), mask.Cols()
	data := mask.ToBytes()
	p := make(Profile, cols)
	for x := 0; x < cols; x++ {
		sum := 0
		for y := 0; y < rows; y++ {
			sum += int(data[y*cols+x])
		}
		p[x] = float64(sum) / 255.0
	}
	return p
}

// Max returns the peak profile value, or 0 for an empty profile.
func (p Profile) Max() float64 {
	if len(p) == 0 {
		return 0
	}
	return floats.Max(p)
}

// Range returns the first and last index whose value exceeds ratio times the
// profile maximum. Returns (0, 0) when the profile is empty or flat zero.
func (p Profile) Range(ratio float64) (start, end int) {
	max := p.Max()
	if max == 0 {
		return 0, 0
	}
	cutoff := max * ratio
	start, end = -1, -1
	for i, v := range p {
		if v > cutoff {
			if start < 0 {
				start = i
			}
			end = i
		}
	}
	if start < 0 {
		return 0, 0
	}
	return start, end
}

// TailRatio measures how much of the profile is a gradual falloff rather than
// a sharp body edge: the number of entries strictly between 0.2 and 0.95 of
// the maximum, divided by denom (the body height estimate). DIP-style pin
// rows produce a long tail; bare package edges produce almost none.
func (p Profile) TailRatio(denom float64) float64 {
	max := p.Max()
	if max == 0 || denom <= 0 {
		return 0
	}
	count := 0
	for _, v := range p {
		norm := v / max
		if norm > 0.2 && norm < 0.95 {
			count++
		}
	}
	return float64(count) / denom
}
