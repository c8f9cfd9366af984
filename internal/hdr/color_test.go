package hdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYCbCrGrayRoundTrip(t *testing.T) {
	frame := NewFrame(8, 8)
	for i := range frame.Pix {
		frame.Pix[i] = 128
	}

	y, cb, cr := splitYCbCr(frame)
	assert.Equal(t, uint8(128), y[0], "gray luminance is the gray level")
	assert.Equal(t, uint8(128), cb[0], "gray has neutral chroma")
	assert.Equal(t, uint8(128), cr[0])

	mergeYCbCr(frame, y, cb, cr)
	for _, v := range frame.Pix {
		assert.InDelta(t, 128, float64(v), 1.0)
	}
}

func TestYCbCrRoundTripTolerance(t *testing.T) {
	frame := NewFrame(16, 16)
	for i := range frame.Pix {
		frame.Pix[i] = uint8((i * 13) % 256)
	}
	original := frame.Clone()

	y, cb, cr := splitYCbCr(frame)
	mergeYCbCr(frame, y, cb, cr)

	for i := range frame.Pix {
		assert.InDelta(t, float64(original.Pix[i]), float64(frame.Pix[i]), 3.0,
			"BGR->YCbCr->BGR must round-trip within quantization error at %d", i)
	}
}

func TestHSVRoundTrip(t *testing.T) {
	cases := []struct{ r, g, b float64 }{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0.5, 0.5, 0.5},
		{0.9, 0.4, 0.1},
		{0.2, 0.7, 0.55},
	}

	for _, c := range cases {
		h, s, v := rgbToHSV(c.r, c.g, c.b)
		r, g, b := hsvToRGB(h, s, v)
		assert.InDelta(t, c.r, r, 1e-9)
		assert.InDelta(t, c.g, g, 1e-9)
		assert.InDelta(t, c.b, b, 1e-9)
	}
}

func TestScaleSaturationLeavesGrayUntouched(t *testing.T) {
	frame := NewFrame(4, 4)
	for i := range frame.Pix {
		frame.Pix[i] = 90
	}

	scaleSaturation(frame, 1.5)
	for _, v := range frame.Pix {
		assert.Equal(t, uint8(90), v, "gray has zero saturation, so boost is a no-op")
	}
}

func TestScaleSaturationBoosts(t *testing.T) {
	frame := NewFrame(1, 1)
	frame.Pix[0] = 100 // B
	frame.Pix[1] = 120 // G
	frame.Pix[2] = 200 // R

	scaleSaturation(frame, 1.5)

	// Value (max channel) is preserved; the spread from max widens.
	require.Equal(t, uint8(200), frame.Pix[2])
	assert.Less(t, frame.Pix[0], uint8(100))
	assert.Less(t, frame.Pix[1], uint8(120))
}

func TestWhiteBalanceScalesRedBlueOnly(t *testing.T) {
	frame := NewFrame(2, 1)
	for i := 0; i < 2; i++ {
		frame.Pix[i*3] = 100   // B
		frame.Pix[i*3+1] = 100 // G
		frame.Pix[i*3+2] = 100 // R
	}

	applyWhiteBalance(frame, WhiteBalance{Red: 1.2, Green: 1.0, Blue: 0.8})

	assert.Equal(t, uint8(80), frame.Pix[0])
	assert.Equal(t, uint8(100), frame.Pix[1], "green channel is untouched")
	assert.Equal(t, uint8(120), frame.Pix[2])
}

func TestWhiteBalanceClamps(t *testing.T) {
	frame := NewFrame(1, 1)
	frame.Pix[0] = 200
	frame.Pix[1] = 200
	frame.Pix[2] = 200

	applyWhiteBalance(frame, WhiteBalance{Red: 3.0, Green: 1.0, Blue: 3.0})

	assert.Equal(t, uint8(255), frame.Pix[0], "overflow must clamp, never wrap")
	assert.Equal(t, uint8(255), frame.Pix[2])
}
