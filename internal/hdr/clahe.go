package hdr

import "math"

// Contrast-limited adaptive histogram equalization over a single plane.
// The plane is split into a tile grid; each tile gets a clipped,
// redistributed histogram whose CDF becomes the tile's transfer map.
// Per-pixel output bilinearly blends the four surrounding tile maps to
// avoid visible tile seams.

type claheTileMap struct {
	cols int
	rows int
	maps [][lutSize]uint8
}

// equalizePlane applies CLAHE to plane (width x height) and returns a
// new plane. clipLimit follows the usual convention: the per-bin cap is
// clipLimit times the uniform bin height for the tile.
func equalizePlane(plane []uint8, width, height int, clipLimit float64, grid GridSize) []uint8 {
	cols := grid.Width
	rows := grid.Height
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols > width {
		cols = width
	}
	if rows > height {
		rows = height
	}

	tiles := claheTileMap{
		cols: cols,
		rows: rows,
		maps: make([][lutSize]uint8, cols*rows),
	}

	tileW := (width + cols - 1) / cols
	tileH := (height + rows - 1) / rows

	for ty := 0; ty < rows; ty++ {
		for tx := 0; tx < cols; tx++ {
			x0 := tx * tileW
			y0 := ty * tileH
			x1 := minInt(x0+tileW, width)
			y1 := minInt(y0+tileH, height)
			tiles.maps[ty*cols+tx] = tileTransfer(plane, width, x0, y0, x1, y1, clipLimit)
		}
	}

	out := make([]uint8, len(plane))
	for y := 0; y < height; y++ {
		// Position relative to tile centers drives the blend weights.
		fy := (float64(y)+0.5)/float64(tileH) - 0.5
		ty0 := int(math.Floor(fy))
		wy := fy - float64(ty0)
		ty1 := clampInt(ty0+1, 0, rows-1)
		ty0 = clampInt(ty0, 0, rows-1)

		for x := 0; x < width; x++ {
			fx := (float64(x)+0.5)/float64(tileW) - 0.5
			tx0 := int(math.Floor(fx))
			wx := fx - float64(tx0)
			tx1 := clampInt(tx0+1, 0, cols-1)
			tx0c := clampInt(tx0, 0, cols-1)

			v := plane[y*width+x]
			m00 := float64(tiles.maps[ty0*cols+tx0c][v])
			m01 := float64(tiles.maps[ty0*cols+tx1][v])
			m10 := float64(tiles.maps[ty1*cols+tx0c][v])
			m11 := float64(tiles.maps[ty1*cols+tx1][v])

			top := m00*(1-wx) + m01*wx
			bottom := m10*(1-wx) + m11*wx
			out[y*width+x] = clampByte(math.Round(top*(1-wy) + bottom*wy))
		}
	}
	return out
}

// tileTransfer builds the clipped-equalization transfer map for one tile.
func tileTransfer(plane []uint8, stride, x0, y0, x1, y1 int, clipLimit float64) [lutSize]uint8 {
	var hist [lutSize]int
	area := (x1 - x0) * (y1 - y0)
	for y := y0; y < y1; y++ {
		row := y * stride
		for x := x0; x < x1; x++ {
			hist[plane[row+x]]++
		}
	}

	if clipLimit > 0 {
		limit := int(clipLimit * float64(area) / lutSize)
		if limit < 1 {
			limit = 1
		}
		excess := 0
		for i := range hist {
			if hist[i] > limit {
				excess += hist[i] - limit
				hist[i] = limit
			}
		}
		// Redistribute the clipped mass evenly; the remainder goes one
		// count at a time from bin zero.
		perBin := excess / lutSize
		leftover := excess % lutSize
		for i := range hist {
			hist[i] += perBin
			if i < leftover {
				hist[i]++
			}
		}
	}

	var transfer [lutSize]uint8
	cum := 0
	scale := 255.0 / float64(area)
	for i := range hist {
		cum += hist[i]
		transfer[i] = clampByte(math.Round(float64(cum) * scale))
	}
	return transfer
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
