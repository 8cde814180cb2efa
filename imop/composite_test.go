package imop

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fill(col color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

var (
	opaqueRed   = color.NRGBA{R: 0xff, A: 0xff}
	opaqueBlue  = color.NRGBA{B: 0xff, A: 0xff}
	transparent = color.NRGBA{}
)

func TestComposite_SrcOverOpaque(t *testing.T) {
	res := Composite(SrcOver, fill(opaqueRed), fill(opaqueBlue))
	assert.Equal(t, opaqueRed, res.NRGBAAt(0, 0))
}

func TestComposite_SrcOverTransparentSourceKeepsBackdrop(t *testing.T) {
	res := Composite(SrcOver, fill(transparent), fill(opaqueBlue))
	assert.Equal(t, opaqueBlue, res.NRGBAAt(0, 0))
}

func TestComposite_SrcOverTranslucent(t *testing.T) {
	translucentRed := color.NRGBA{R: 0xff, A: 0x80}
	res := Composite(SrcOver, fill(translucentRed), fill(opaqueBlue))

	px := res.NRGBAAt(1, 1)
	assert.InDelta(t, 0x80, int(px.R), 1)
	assert.InDelta(t, 0x7f, int(px.B), 1)
	assert.Equal(t, uint8(0xff), px.A)
}

func TestComposite_Copy(t *testing.T) {
	res := Composite(Copy, fill(opaqueRed), fill(opaqueBlue))
	assert.Equal(t, opaqueRed, res.NRGBAAt(2, 3))
}

func TestComposite_AlphaFractions(t *testing.T) {
	// With both layers fully opaque the operators reduce to simple
	// keep/discard decisions on the two colors.
	testCases := []struct {
		op   Op
		want color.NRGBA
	}{
		{op: SrcIn, want: opaqueRed},
		{op: DstIn, want: opaqueBlue},
		{op: SrcAtop, want: opaqueRed},
		{op: DstAtop, want: opaqueBlue},
		{op: SrcOut, want: transparent},
		{op: DstOut, want: transparent},
		{op: Xor, want: transparent},
	}

	for _, tc := range testCases {
		t.Run(string(tc.op), func(t *testing.T) {
			res := Composite(tc.op, fill(opaqueRed), fill(opaqueBlue))
			assert.Equal(t, tc.want, res.NRGBAAt(0, 0))
		})
	}
}
