package hdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampPlane(width, height int) []uint8 {
	plane := make([]uint8, width*height)
	for i := range plane {
		plane[i] = uint8(i % 256)
	}
	return plane
}

func TestEqualizePlaneDimensions(t *testing.T) {
	plane := rampPlane(64, 48)
	out := equalizePlane(plane, 64, 48, 3.0, GridSize{Width: 8, Height: 8})
	require.Len(t, out, len(plane))
}

func TestEqualizePlaneSingleTileMonotonic(t *testing.T) {
	// One tile and no clipping degrades to plain histogram equalization,
	// which must preserve pixel ordering.
	width, height := 16, 16
	plane := make([]uint8, width*height)
	for i := range plane {
		plane[i] = uint8(i) // 0..255 exactly once
	}

	out := equalizePlane(plane, width, height, 0, GridSize{Width: 1, Height: 1})
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i], out[i-1],
			"equalization must preserve ordering at %d", i)
	}
}

func TestEqualizePlaneClipLimitTamesFlatRegions(t *testing.T) {
	// A flat plane under unclipped equalization collapses to full white.
	// Clipping redistributes the histogram mass and keeps the output
	// near the input instead.
	width, height := 32, 32
	flat := make([]uint8, width*height)
	for i := range flat {
		flat[i] = 100
	}

	unclipped := equalizePlane(flat, width, height, 0, GridSize{Width: 1, Height: 1})
	assert.Equal(t, uint8(255), unclipped[0])

	clipped := equalizePlane(flat, width, height, 2.0, GridSize{Width: 1, Height: 1})
	assert.Less(t, clipped[0], uint8(130), "clip limit must prevent the flat-region blowout")
}

func TestEqualizePlaneOversizedGridClamps(t *testing.T) {
	// More tiles than pixels per axis must not panic or divide by zero.
	plane := rampPlane(4, 4)
	out := equalizePlane(plane, 4, 4, 3.0, GridSize{Width: 16, Height: 16})
	require.Len(t, out, 16)
}

func TestTileTransferFullRange(t *testing.T) {
	// The transfer map's last entry always reaches 255: the CDF is 1 there.
	plane := rampPlane(16, 16)
	transfer := tileTransfer(plane, 16, 0, 0, 16, 16, 0)
	assert.Equal(t, uint8(255), transfer[255])
}
