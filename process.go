package carve

import (
	"errors"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/seamlab/carve/utils"
)

// SeamCarver is the interface the Processor implements to resize an image.
// It takes the source image as parameter and returns the resized image.
type SeamCarver interface {
	Resize(*image.NRGBA) (image.Image, error)
}

// Processor options. The methods never mutate the struct, so a single
// Processor is safe to share between concurrent Resize calls.
type Processor struct {
	SeamColor  string
	NewWidth   int
	NewHeight  int
	Percentage bool
	Scale      bool
	Debug      bool
}

var _ SeamCarver = (*Processor)(nil)

// Resize implements the Resize method of the SeamCarver interface.
func Resize(s SeamCarver, img *image.NRGBA) (image.Image, error) {
	return s.Resize(img)
}

// Resize is the main entry point of the carving operation. It shrinks the
// image to the requested width by repeatedly removing the lowest energy
// vertical seam, then transposes the image and repeats the same reduction
// for the height, transposing back at the end.
//
// The engine is shrink only: a target exceeding the source dimension or a
// non-positive target is rejected with an InvalidTargetError before any
// pixel work begins. A zero width or height option means the dimension is
// kept as is.
func (p *Processor) Resize(img *image.NRGBA) (image.Image, error) {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	newWidth, newHeight := p.NewWidth, p.NewHeight

	if p.Percentage {
		// The percentage options express how much to shrink each dimension by.
		pw := int(float64(dx) * float64(p.NewWidth) / 100)
		ph := int(float64(dy) * float64(p.NewHeight) / 100)
		if pw >= dx || ph >= dy {
			return nil, errors.New("cannot use the percentage flag for image enlargement")
		}
		newWidth, newHeight = dx-pw, dy-ph
	}
	if newWidth == 0 {
		newWidth = dx
	}
	if newHeight == 0 {
		newHeight = dy
	}

	if newWidth < 1 || newWidth > dx {
		return nil, &InvalidTargetError{Dim: "width", Value: newWidth, Max: dx}
	}
	if newHeight < 1 || newHeight > dy {
		return nil, &InvalidTargetError{Dim: "height", Value: newHeight, Max: dy}
	}

	// Rescale the image first by preserving the aspect ratio, so the seam
	// carving only has to absorb the remaining difference.
	if p.Scale && newWidth < dx && newHeight < dy {
		img = p.rescale(img, newWidth, newHeight)
	}

	var overlay *image.NRGBA
	img, ov := p.carve(img, newWidth, false)
	if ov != nil {
		overlay = ov
	}

	img = transposeImage(img)
	img, ov = p.carve(img, newHeight, true)
	if ov != nil {
		overlay = ov
	}
	img = transposeImage(img)

	if p.Debug && overlay != nil {
		return overlay, nil
	}
	return img, nil
}

// carve removes the lowest energy vertical seam until the image width
// reaches the target. Each iteration recomputes the energy map of the
// current image, so the removal order depends only on the pixels still left.
// In debug mode the seam visualization of the last iteration is returned
// alongside the carved image, already rotated back to the source
// orientation when the pass operates on the transposed buffer.
func (p *Processor) carve(img *image.NRGBA, targetWidth int, vertical bool) (*image.NRGBA, *image.NRGBA) {
	var overlay *image.NRGBA

	for img.Bounds().Dx() > targetWidth {
		width, height := img.Bounds().Dx(), img.Bounds().Dy()
		c := NewCarver(width, height)
		c.ComputeSeams(img)
		seams := c.FindLowestEnergySeams()

		if p.Debug {
			overlay = drawSeams(img, seams, utils.HexToRGBA(p.SeamColor))
			if vertical {
				overlay = transposeImage(overlay)
			}
		}
		img = c.RemoveSeam(img, seams)
	}
	return img, overlay
}

// rescale shrinks the image with a Lanczos filter down to the smallest size
// still covering both target dimensions. Falls back to the original image
// when rounding would undershoot a target.
func (p *Processor) rescale(img *image.NRGBA, newWidth, newHeight int) *image.NRGBA {
	var (
		w  = float64(img.Bounds().Dx())
		h  = float64(img.Bounds().Dy())
		nw = float64(newWidth)
		nh = float64(newHeight)
	)
	sf := math.Min(w/nw, h/nh)
	sw := int(math.Round(w / sf))

	scaled := imaging.Resize(img, sw, 0, imaging.Lanczos)
	if scaled.Bounds().Dx() < newWidth || scaled.Bounds().Dy() < newHeight {
		return img
	}
	return scaled
}

// Process decodes the source image from the reader and encodes the resized
// result into the writer. Any input and output type can be used as long as
// they implement the io.Reader and io.Writer interface.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	src, _, err := image.Decode(r)
	if err != nil {
		return err
	}
	img := imgToNRGBA(src)

	return encodeImg(p, w, img)
}
