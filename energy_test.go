package carve

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnergy_UniformImageYieldsZeroGrid(t *testing.T) {
	img := uniformNRGBA(imgWidth, imgHeight, color.NRGBA{R: 0x7f, G: 0x33, B: 0xcc, A: 0xff})
	energy := energyMap(img)

	assert.Len(t, energy, imgWidth*imgHeight)
	for _, e := range energy {
		assert.Equal(t, 0.0, e)
	}
}

func TestEnergy_OneSidedBorderGradients(t *testing.T) {
	// A single row has no vertical neighbors, so the energy reduces to the
	// absolute horizontal gradient: one-sided on both borders, central
	// difference in between.
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	for x, v := range []uint8{10, 10, 100, 10} {
		img.SetNRGBA(x, 0, color.NRGBA{R: v, G: v, B: v, A: 0xff})
	}

	energy := energyMap(img)
	assert.Equal(t, []float64{0, 90, 0, 90}, energy)
}

func TestEnergy_VerticalEdge(t *testing.T) {
	// Black and white halves: the gradient peaks on the two columns
	// adjacent to the edge and vanishes in the flat regions.
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x, v := range []uint8{0, 0, 255, 255} {
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 0xff})
		}
	}

	energy := energyMap(img)
	want := []float64{0, 255, 255, 0}
	assert.Equal(t, want, energy[:4])
	assert.Equal(t, want, energy[4:])
}

func TestEnergy_SinglePixelImage(t *testing.T) {
	img := uniformNRGBA(1, 1, color.White)
	assert.Equal(t, []float64{0}, energyMap(img))
}

func TestEnergy_GrayscaleLumaWeights(t *testing.T) {
	testCases := []struct {
		name string
		col  color.NRGBA
		want uint8
	}{
		{name: "red", col: color.NRGBA{R: 0xff, A: 0xff}, want: 76},
		{name: "green", col: color.NRGBA{G: 0xff, A: 0xff}, want: 150},
		{name: "blue", col: color.NRGBA{B: 0xff, A: 0xff}, want: 29},
		{name: "white", col: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, want: 255},
		{name: "black", col: color.NRGBA{A: 0xff}, want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img := uniformNRGBA(2, 2, tc.col)
			gray := rgbToGrayscale(img)
			assert.Equal(t, tc.want, gray[0])
		})
	}
}
