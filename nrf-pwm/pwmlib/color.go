package pwmlib

import "image/color"

// Brightness scales every channel of src by (level+1)/256 and stores the
// result in dst, which may alias src. Level 255 passes colors through
// unchanged, level 0 divides them by 256. Alpha is preserved.
func Brightness(dst, src []color.RGBA, level uint8) {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	scale := uint16(level) + 1
	for i := 0; i < n; i++ {
		c := src[i]
		dst[i] = color.RGBA{
			R: uint8(uint16(c.R) * scale >> 8),
			G: uint8(uint16(c.G) * scale >> 8),
			B: uint8(uint16(c.B) * scale >> 8),
			A: c.A,
		}
	}
}

// HSV converts a hue/saturation/value triple to RGB. The hue wraps the
// color circle in 256 steps, so 0 is red, 85 green and 170 blue.
func HSV(h, s, v uint8) color.RGBA {
	if s == 0 {
		return color.RGBA{R: v, G: v, B: v, A: 0xff}
	}
	region := h / 43
	remainder := uint16(h-region*43) * 6

	p := uint8(uint16(v) * (255 - uint16(s)) >> 8)
	q := uint8(uint16(v) * (255 - (uint16(s)*remainder)>>8) >> 8)
	t := uint8(uint16(v) * (255 - (uint16(s)*(255-remainder))>>8) >> 8)

	switch region {
	case 0:
		return color.RGBA{R: v, G: t, B: p, A: 0xff}
	case 1:
		return color.RGBA{R: q, G: v, B: p, A: 0xff}
	case 2:
		return color.RGBA{R: p, G: v, B: t, A: 0xff}
	case 3:
		return color.RGBA{R: p, G: q, B: v, A: 0xff}
	case 4:
		return color.RGBA{R: t, G: p, B: v, A: 0xff}
	default:
		return color.RGBA{R: v, G: p, B: q, A: 0xff}
	}
}
