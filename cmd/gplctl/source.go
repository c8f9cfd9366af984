package main

import (
	"bufio"
	"io"
	"math"
	"os"

	"github.com/ericosh007/generativeperception/internal/errors"
	"github.com/ericosh007/generativeperception/internal/hdr"
)

// frameSource yields frames until exhausted (nil frame, nil error).
type frameSource interface {
	Next() (*hdr.Frame, error)
	Close() error
}

// frameSink consumes processed frames.
type frameSink interface {
	Write(*hdr.Frame) error
	Close() error
}

// rawFileSource reads packed BGR24 frames of fixed dimensions from a
// file. This is deliberately not a container demuxer; pipe decoded
// frames in with e.g. ffmpeg -pix_fmt bgr24 -f rawvideo.
type rawFileSource struct {
	f      *os.File
	r      *bufio.Reader
	width  int
	height int
}

func newRawFileSource(path string, width, height int) (*rawFileSource, error) {
	errFactory := errors.New()

	f, err := os.Open(path)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrOpenSource, err)
	}
	return &rawFileSource{
		f:      f,
		r:      bufio.NewReaderSize(f, width*3*16),
		width:  width,
		height: height,
	}, nil
}

func (s *rawFileSource) Next() (*hdr.Frame, error) {
	frame := hdr.NewFrame(s.width, s.height)
	if _, err := io.ReadFull(s.r, frame.Pix); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, nil
		}
		return nil, errors.New().Wrap(errors.ErrOpenSource, err)
	}
	return frame, nil
}

func (s *rawFileSource) Close() error {
	return s.f.Close()
}

// syntheticSource generates a drifting gradient test pattern so the
// pipeline has content to chew on without any capture hardware.
type syntheticSource struct {
	width  int
	height int
	tick   int
}

func newSyntheticSource(width, height int) *syntheticSource {
	return &syntheticSource{width: width, height: height}
}

func (s *syntheticSource) Next() (*hdr.Frame, error) {
	frame := hdr.NewFrame(s.width, s.height)
	phase := float64(s.tick) * 0.05
	s.tick++

	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			fx := float64(x) / float64(s.width)
			fy := float64(y) / float64(s.height)

			b := 127.5 + 127.5*math.Sin(2*math.Pi*fx+phase)
			g := 127.5 + 127.5*math.Sin(2*math.Pi*fy+phase*0.7)
			r := 255 * fx * fy

			i := (y*s.width + x) * 3
			frame.Pix[i] = uint8(b)
			frame.Pix[i+1] = uint8(g)
			frame.Pix[i+2] = uint8(r)
		}
	}
	return frame, nil
}

func (*syntheticSource) Close() error { return nil }

// rawFileSink appends packed BGR24 frames to a file.
type rawFileSink struct {
	f *os.File
	w *bufio.Writer
}

func newRawFileSink(path string) (*rawFileSink, error) {
	errFactory := errors.New()

	f, err := os.Create(path)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrWriteSink, err)
	}
	return &rawFileSink{f: f, w: bufio.NewWriter(f)}, nil
}

func (s *rawFileSink) Write(frame *hdr.Frame) error {
	if _, err := s.w.Write(frame.Pix); err != nil {
		return errors.New().Wrap(errors.ErrWriteSink, err)
	}
	return nil
}

func (s *rawFileSink) Close() error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	return s.f.Close()
}
