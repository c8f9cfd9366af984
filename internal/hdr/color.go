package hdr

import "math"

// Color space plumbing for the pipeline. The luminance-isolated working
// space is full-range BT.601 YCbCr: equalization and exposure touch only
// the Y plane, leaving chrominance untouched to avoid color shifts.

// splitYCbCr converts a BGR frame into separate Y, Cb, Cr planes.
func splitYCbCr(f *Frame) (y, cb, cr []uint8) {
	n := f.pixelCount()
	y = make([]uint8, n)
	cb = make([]uint8, n)
	cr = make([]uint8, n)

	for i := 0; i < n; i++ {
		b := float64(f.Pix[i*channels])
		g := float64(f.Pix[i*channels+1])
		r := float64(f.Pix[i*channels+2])

		lum := 0.299*r + 0.587*g + 0.114*b
		y[i] = clampByte(math.Round(lum))
		cb[i] = clampByte(math.Round((b-lum)*0.564 + 128))
		cr[i] = clampByte(math.Round((r-lum)*0.713 + 128))
	}
	return y, cb, cr
}

// mergeYCbCr recomposes the planes back into the BGR frame in place.
func mergeYCbCr(f *Frame, y, cb, cr []uint8) {
	n := f.pixelCount()
	for i := 0; i < n; i++ {
		lum := float64(y[i])
		db := float64(cb[i]) - 128
		dr := float64(cr[i]) - 128

		r := lum + 1.403*dr
		g := lum - 0.344*db - 0.714*dr
		b := lum + 1.773*db

		f.Pix[i*channels] = clampByte(math.Round(b))
		f.Pix[i*channels+1] = clampByte(math.Round(g))
		f.Pix[i*channels+2] = clampByte(math.Round(r))
	}
}

// luminancePlane computes the grayscale plane of a BGR frame.
func luminancePlane(f *Frame) []uint8 {
	n := f.pixelCount()
	out := make([]uint8, n)
	for i := 0; i < n; i++ {
		b := float64(f.Pix[i*channels])
		g := float64(f.Pix[i*channels+1])
		r := float64(f.Pix[i*channels+2])
		out[i] = clampByte(math.Round(0.299*r + 0.587*g + 0.114*b))
	}
	return out
}

// scaleSaturation boosts HSV saturation by gain, converting each pixel
// through hue/saturation/value and back with clamping.
func scaleSaturation(f *Frame, gain float64) {
	n := f.pixelCount()
	for i := 0; i < n; i++ {
		b := float64(f.Pix[i*channels]) / 255.0
		g := float64(f.Pix[i*channels+1]) / 255.0
		r := float64(f.Pix[i*channels+2]) / 255.0

		h, s, v := rgbToHSV(r, g, b)
		s = clampFloat(s*gain, 0, 1)
		r, g, b = hsvToRGB(h, s, v)

		f.Pix[i*channels] = clampByte(math.Round(b * 255.0))
		f.Pix[i*channels+1] = clampByte(math.Round(g * 255.0))
		f.Pix[i*channels+2] = clampByte(math.Round(r * 255.0))
	}
}

// rgbToHSV converts normalized RGB to hue [0,360), saturation and value
// in [0,1].
func rgbToHSV(r, g, b float64) (h, s, v float64) {
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	delta := maxC - minC

	v = maxC
	if maxC > 0 {
		s = delta / maxC
	}
	if delta == 0 {
		return 0, s, v
	}

	switch maxC {
	case r:
		h = 60 * math.Mod((g-b)/delta, 6)
	case g:
		h = 60 * ((b-r)/delta + 2)
	default:
		h = 60 * ((r-g)/delta + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}

func hsvToRGB(h, s, v float64) (r, g, b float64) {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
