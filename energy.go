package carve

import (
	"image"
	"math"
)

// energyMap computes the per pixel importance of the image as the magnitude
// of the grayscale intensity gradient, sqrt(gx² + gy²).
//
// Interior pixels use the central difference over their two neighbors.
// Border pixels fall back to the one sided difference towards the single
// available neighbor, and a 1 pixel wide (or tall) image has no neighbor at
// all in that axis, so the gradient component is zero there. The border rule
// is load bearing: it decides which seam wins near the image edges.
func energyMap(img *image.NRGBA) []float64 {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	gray := rgbToGrayscale(img)
	energy := make([]float64, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gradX, gradY float64

			switch {
			case x > 0 && x < width-1:
				gradX = float64(gray[y*width+x+1]) - float64(gray[y*width+x-1])
			case x == 0 && width > 1:
				gradX = float64(gray[y*width+x+1]) - float64(gray[y*width+x])
			case x == width-1 && width > 1:
				gradX = float64(gray[y*width+x]) - float64(gray[y*width+x-1])
			}

			switch {
			case y > 0 && y < height-1:
				gradY = float64(gray[(y+1)*width+x]) - float64(gray[(y-1)*width+x])
			case y == 0 && height > 1:
				gradY = float64(gray[(y+1)*width+x]) - float64(gray[y*width+x])
			case y == height-1 && height > 1:
				gradY = float64(gray[y*width+x]) - float64(gray[(y-1)*width+x])
			}

			energy[y*width+x] = math.Sqrt(gradX*gradX + gradY*gradY)
		}
	}
	return energy
}

// rgbToGrayscale converts an image to grayscale mode and
// returns the pixel values as an one dimensional array.
func rgbToGrayscale(src *image.NRGBA) []uint8 {
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	gray := make([]uint8, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			gray[y*width+x] = uint8(
				(0.299*float64(r) +
					0.587*float64(g) +
					0.114*float64(b)) / 256,
			)
		}
	}

	return gray
}
