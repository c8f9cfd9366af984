package hdr

import "math"

// Spatial filters used by the detail-enhancement and denoise stages.

// sharpenSigma is the fixed Gaussian sigma for the unsharp mask.
const sharpenSigma = 2.0

// gaussianBlur returns a blurred copy of f using a separable kernel with
// edge clamping. Radius covers three standard deviations.
func gaussianBlur(f *Frame, sigma float64) *Frame {
	radius := int(math.Ceil(3 * sigma))
	if radius < 1 {
		radius = 1
	}

	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		w := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = w
		sum += w
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	w, h := f.Width, f.Height
	tmp := make([]float64, len(f.Pix))
	out := NewFrame(w, h)

	// Horizontal pass
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < channels; c++ {
				acc := 0.0
				for k := -radius; k <= radius; k++ {
					xx := clampInt(x+k, 0, w-1)
					acc += kernel[k+radius] * float64(f.Pix[(y*w+xx)*channels+c])
				}
				tmp[(y*w+x)*channels+c] = acc
			}
		}
	}

	// Vertical pass
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < channels; c++ {
				acc := 0.0
				for k := -radius; k <= radius; k++ {
					yy := clampInt(y+k, 0, h-1)
					acc += kernel[k+radius] * tmp[(yy*w+x)*channels+c]
				}
				out.Pix[(y*w+x)*channels+c] = clampByte(math.Round(acc))
			}
		}
	}
	return out
}

// unsharpMask sharpens f in place: f*(1+strength) - blurred*strength,
// clamped per channel.
func unsharpMask(f *Frame, strength float64) {
	blurred := gaussianBlur(f, sharpenSigma)
	for i := range f.Pix {
		v := float64(f.Pix[i])*(1+strength) - float64(blurred.Pix[i])*strength
		f.Pix[i] = clampByte(math.Round(v))
	}
}

// boxBlur3 returns a 3x3 box-filtered copy of f with edge clamping.
func boxBlur3(f *Frame) *Frame {
	w, h := f.Width, f.Height
	out := NewFrame(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < channels; c++ {
				sum := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						yy := clampInt(y+dy, 0, h-1)
						xx := clampInt(x+dx, 0, w-1)
						sum += int(f.Pix[(yy*w+xx)*channels+c])
					}
				}
				out.Pix[(y*w+x)*channels+c] = uint8((sum + 4) / 9)
			}
		}
	}
	return out
}

// denoise blends f toward a box-filtered copy of itself. The blend
// weight grows monotonically with strength, which is the only semantic
// the strength parameter guarantees.
func denoise(f *Frame, strength int) {
	if strength <= 0 {
		return
	}
	alpha := float64(strength) / (float64(strength) + 10.0)
	smoothed := boxBlur3(f)
	for i := range f.Pix {
		v := float64(f.Pix[i])*(1-alpha) + float64(smoothed.Pix[i])*alpha
		f.Pix[i] = clampByte(math.Round(v))
	}
}

// adjustHighlightsShadows applies complementary luminance-weighted gains
// in normalized float space: pixels brighter than mid-gray take the
// highlight shift, darker ones the shadow shift.
func adjustHighlightsShadows(f *Frame, highlight, shadow float64) {
	lum := luminancePlane(f)
	n := f.pixelCount()
	for i := 0; i < n; i++ {
		l := float64(lum[i]) / 255.0
		hMask := clampFloat((l-0.5)*2, 0, 1)
		sMask := clampFloat((0.5-l)*2, 0, 1)

		gain := 1.0
		if highlight != 0 {
			gain *= 1 + highlight*hMask
		}
		if shadow != 0 {
			gain *= 1 + shadow*sMask
		}
		if gain == 1.0 {
			continue
		}
		for c := 0; c < channels; c++ {
			idx := i*channels + c
			v := float64(f.Pix[idx]) / 255.0 * gain
			f.Pix[idx] = clampByte(math.Round(clampFloat(v, 0, 1) * 255.0))
		}
	}
}
