// Package imop implements the Porter-Duff composition operators over NRGBA
// images. The image/draw core package provides only the source and the
// source-over-destination operators; the full set lets the carver render
// seam overlays over, under or cut out of the carved image.
package imop

import "image"

// Op selects one of the supported Porter-Duff composition operators.
type Op string

const (
	Copy    Op = "copy"
	SrcOver Op = "src_over"
	DstOver Op = "dst_over"
	SrcIn   Op = "src_in"
	DstIn   Op = "dst_in"
	SrcOut  Op = "src_out"
	DstOut  Op = "dst_out"
	SrcAtop Op = "src_atop"
	DstAtop Op = "dst_atop"
	Xor     Op = "xor"
)

// Composite combines the source and destination image with the requested
// operator and returns the result as a new image sized to the destination
// bounds. Both images are expected to share the same dimensions.
//
// Every operator reduces to the general Porter-Duff form
//
//	co = αs·Fa·Cs + αb·Fb·Cb
//	αo = αs·Fa + αb·Fb
//
// with the per operator Fa and Fb fractions. The computation runs on
// normalized, alpha premultiplied components and un-premultiplies at the
// end, since NRGBA stores straight alpha.
func Composite(op Op, src, dst *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(dst.Bounds())

	for i := 0; i < len(out.Pix); i += 4 {
		rs, gs, bs, as := normalize(src.Pix[i : i+4 : i+4])
		rb, gb, bb, ab := normalize(dst.Pix[i : i+4 : i+4])

		var fa, fb float64
		switch op {
		case Copy:
			fa, fb = 1, 0
		case SrcOver:
			fa, fb = 1, 1-as
		case DstOver:
			fa, fb = 1-ab, 1
		case SrcIn:
			fa, fb = ab, 0
		case DstIn:
			fa, fb = 0, as
		case SrcOut:
			fa, fb = 1-ab, 0
		case DstOut:
			fa, fb = 0, 1-as
		case SrcAtop:
			fa, fb = ab, 1-as
		case DstAtop:
			fa, fb = 1-ab, as
		case Xor:
			fa, fb = 1-ab, 1-as
		default:
			fa, fb = 1, 1-as
		}

		outR := as*fa*rs + ab*fb*rb
		outG := as*fa*gs + ab*fb*gb
		outB := as*fa*bs + ab*fb*bb
		outA := as*fa + ab*fb
		if outA > 0 {
			outR, outG, outB = outR/outA, outG/outA, outB/outA
		}

		out.Pix[i+0] = uint8(outR*255 + 0.5)
		out.Pix[i+1] = uint8(outG*255 + 0.5)
		out.Pix[i+2] = uint8(outB*255 + 0.5)
		out.Pix[i+3] = uint8(outA*255 + 0.5)
	}
	return out
}

// normalize converts a straight alpha NRGBA quadruplet to [0, 1] floats.
func normalize(px []uint8) (r, g, b, a float64) {
	return float64(px[0]) / 255,
		float64(px[1]) / 255,
		float64(px[2]) / 255,
		float64(px[3]) / 255
}
