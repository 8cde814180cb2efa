package carve

import (
	"image"
	"math"
)

// Seam is the (x,y) coordinate of a single pixel belonging to
// the lowest energy path traversing the image from top to bottom.
type Seam struct {
	X int
	Y int
}

// Carver holds the cumulative energy table of the image being carved.
// The table is stored as a flat slice indexed by x + y*width.
type Carver struct {
	Width  int
	Height int
	Points []float64
}

// NewCarver returns an initialized Carver.
func NewCarver(width, height int) *Carver {
	return &Carver{
		Width:  width,
		Height: height,
		Points: make([]float64, width*height),
	}
}

// get returns the cumulative energy value at the (x, y) coordinate.
func (c *Carver) get(x, y int) float64 {
	px := x + y*c.Width
	return c.Points[px]
}

// set updates the cumulative energy value at the (x, y) coordinate.
func (c *Carver) set(x, y int, px float64) {
	idx := x + y*c.Width
	c.Points[idx] = px
}

// ComputeSeams fills in the cumulative energy table:
//   - the first row is a direct copy of the energy map;
//   - every subsequent entry (x, y) sums the pixel energy with the minimum
//     cumulative value of the three connected neighbors from the row above.
//
// Neighbors falling outside the image are excluded from the minimum,
// they are not treated as infinity or zero.
func (c *Carver) ComputeSeams(img *image.NRGBA) []float64 {
	energy := energyMap(img)
	copy(c.Points, energy)

	for y := 1; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			min := c.get(x, y-1)
			if x > 0 && c.get(x-1, y-1) < min {
				min = c.get(x-1, y-1)
			}
			if x < c.Width-1 && c.get(x+1, y-1) < min {
				min = c.get(x+1, y-1)
			}
			c.set(x, y, energy[x+y*c.Width]+min)
		}
	}
	return c.Points
}

// FindLowestEnergySeams walks the cumulative energy table and returns the
// connected path of minimum total energy, one pixel per row, ordered from
// the bottom row up.
//
// The starting column is the leftmost minimum of the bottom row. During the
// backtracking the straight continuation is preferred on equal values, then
// the left neighbor, then the right one, so that flat regions always resolve
// to the same seam.
func (c *Carver) FindLowestEnergySeams() []Seam {
	var min float64 = math.MaxFloat64
	var px int
	seams := make([]Seam, 0, c.Height)

	// Locate the seam endpoint on the bottom row.
	for x := 0; x < c.Width; x++ {
		seam := c.get(x, c.Height-1)
		if seam < min {
			min = seam
			px = x
		}
	}
	seams = append(seams, Seam{X: px, Y: c.Height - 1})

	// Walk up the table row by row, following the smallest of the three
	// connected parents. The comparisons are strict: the running choice is
	// only overwritten by a strictly smaller cumulative value.
	for y := c.Height - 2; y >= 0; y-- {
		prev := px
		minE := c.get(prev, y)

		if prev > 0 && c.get(prev-1, y) < minE {
			px = prev - 1
			minE = c.get(prev-1, y)
		}
		if prev < c.Width-1 && c.get(prev+1, y) < minE {
			px = prev + 1
		}
		seams = append(seams, Seam{X: px, Y: y})
	}
	return seams
}

// RemoveSeam removes the seam pixels from the image and returns a new image
// one pixel narrower. The source image is left untouched.
func (c *Carver) RemoveSeam(img *image.NRGBA, seams []Seam) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, c.Width-1, c.Height))

	for _, seam := range seams {
		y := seam.Y
		for x := 0; x < seam.X; x++ {
			srcOff := y*img.Stride + x*4
			dstOff := y*dst.Stride + x*4
			copy(dst.Pix[dstOff:dstOff+4], img.Pix[srcOff:srcOff+4])
		}
		for x := seam.X + 1; x < c.Width; x++ {
			srcOff := y*img.Stride + x*4
			dstOff := y*dst.Stride + (x-1)*4
			copy(dst.Pix[dstOff:dstOff+4], img.Pix[srcOff:srcOff+4])
		}
	}
	return dst
}
