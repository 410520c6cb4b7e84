package body

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Preprocess converts a BGR image into a binary foreground mask of the same
// size. The package body is assumed darker than the background, so the mask
// uses inverted Otsu polarity: dark pixels become foreground. CLAHE flattens
// uneven illumination first — glare or shadow breaks that darkness assumption
// under a plain global threshold.
//
// On a fully uniform input the result is an all-background mask; contour
// selection reports that downstream.
func Preprocess(img gocv.Mat, params Params) (gocv.Mat, error) {
	if img.Empty() {
		return gocv.NewMat(), fmt.Errorf("empty input image")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	clahe := gocv.NewCLAHEWithParams(params.ClipLimit, params.TileGrid)
	defer clahe.Close()
	equalized := gocv.NewMat()
	defer equalized.Close()
	clahe.Apply(gray, &equalized)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(equalized, &blurred, params.BlurKernel, 0, 0, gocv.BorderDefault)

	mask := gocv.NewMat()
	gocv.Threshold(blurred, &mask, 0, 255, gocv.ThresholdBinaryInv|gocv.ThresholdOtsu)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, params.MorphKernel)
	defer kernel.Close()

	// Close fills printed markings and specular highlights inside the body,
	// then open removes thin speckle outside it.
	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyExWithParams(mask, &closed, gocv.MorphClose, kernel, params.CloseIterations, gocv.BorderConstant)
	gocv.MorphologyExWithParams(closed, &mask, gocv.MorphOpen, kernel, params.OpenIterations, gocv.BorderConstant)

	return mask, nil
}
