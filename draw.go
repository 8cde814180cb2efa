package carve

import (
	"image"
	"image/color"

	"github.com/seamlab/carve/imop"
)

// drawSeams paints the seam pixels over the image in the provided color.
// The seam is rendered on a transparent overlay which is then composited
// source-over the image, so a translucent seam color shows the underlying
// pixels through.
func drawSeams(img *image.NRGBA, seams []Seam, col color.NRGBA) *image.NRGBA {
	overlay := image.NewNRGBA(img.Bounds())
	for _, seam := range seams {
		overlay.SetNRGBA(seam.X, seam.Y, col)
	}
	return imop.Composite(imop.SrcOver, overlay, img)
}
