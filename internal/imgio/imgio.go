// Package imgio provides image loading, saving, and gocv.Mat conversion.
package imgio

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"gocv.io/x/gocv"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ErrDecode indicates the supplied bytes could not be decoded as an image.
var ErrDecode = errors.New("failed to decode image")

// Decode converts encoded image bytes into a BGR Mat.
func Decode(data []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), ErrDecode
}

// Load reads an image file into a BGR Mat. Formats OpenCV cannot read
// directly (notably TIFF variants) fall back to the Go decoders.
func Load(path string) (gocv.Mat, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if !mat.Empty() {
		return mat, nil
	}
	mat.Close()

	file, err := os.Open(path)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to decode image: %w", err)
	}
	return ToMat(img)
}

// ToMat converts a Go image into an 8-bit BGR Mat.
func ToMat(srcImg image.Image) (gocv.Mat, error) {
	bounds := srcImg.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return gocv.NewMat(), fmt.Errorf("zero-sized image")
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := srcImg.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// Convert from 16-bit to 8-bit and BGR order for OpenCV
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}

	return mat, nil
}

// ToImage converts a Mat back into a Go image.
func ToImage(mat gocv.Mat) (image.Image, error) {
	return mat.ToImage()
}

// Save writes a Mat to disk; the format follows the file extension.
func Save(path string, mat gocv.Mat) error {
	if mat.Empty() {
		return fmt.Errorf("refusing to save empty image to %s", path)
	}
	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("failed to write image to %s", path)
	}
	return nil
}
