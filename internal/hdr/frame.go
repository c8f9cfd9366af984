package hdr

import "github.com/ericosh007/generativeperception/internal/errors"

// channels per pixel: 8-bit BGR, no alpha.
const channels = 3

// Frame is an 8-bit 3-channel BGR image buffer, row-major.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewFrame allocates a zeroed frame of the given dimensions.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*channels),
	}
}

// Validate checks the buffer is structurally sound. A malformed frame is
// fatal to the call that received it; the pipeline never guesses.
func (f *Frame) Validate() error {
	errFactory := errors.New()

	if f == nil {
		return errFactory.WithMessage(ErrInvalidFrameFormat, "nil frame")
	}
	if f.Width <= 0 || f.Height <= 0 {
		return errFactory.WithData(ErrInvalidFrameFormat, struct {
			Width  int
			Height int
		}{f.Width, f.Height})
	}
	if len(f.Pix) != f.Width*f.Height*channels {
		return errFactory.WithData(ErrInvalidFrameFormat, struct {
			Expected int
			Actual   int
		}{f.Width * f.Height * channels, len(f.Pix)})
	}
	return nil
}

// Clone returns a deep copy sharing no pixel storage with f.
func (f *Frame) Clone() *Frame {
	out := &Frame{
		Width:  f.Width,
		Height: f.Height,
		Pix:    make([]uint8, len(f.Pix)),
	}
	copy(out.Pix, f.Pix)
	return out
}

// pixelCount returns the number of pixels in the frame.
func (f *Frame) pixelCount() int {
	return f.Width * f.Height
}

// applyLUT maps every channel of every pixel through the same table.
func applyLUT(f *Frame, lut *[lutSize]uint8) {
	for i, v := range f.Pix {
		f.Pix[i] = lut[v]
	}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
