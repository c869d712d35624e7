// Package aperture rasterizes two-dimensional aperture shapes onto a
// regular sampling grid, producing transmittance masks (0 = opaque,
// 1 = fully transmissive) suitable for Fourier-based diffraction
// calculations.
package aperture

import (
	"gonum.org/v1/gonum/floats"
)

// Grid describes the discrete sampling lattice over the aperture plane.
// Row/column indices map to physical coordinates via
// coord = (index - center) * PixelSize, with the center index at n/2.
type Grid struct {
	Rows, Cols int
	PixelSize  float64 // physical size of one sample (m)
}

// NewSquareGrid returns an n x n grid with the given pixel size.
func NewSquareGrid(n int, pixelSize float64) Grid {
	return Grid{Rows: n, Cols: n, PixelSize: pixelSize}
}

// Width returns the physical extent of the grid along x (m).
func (g Grid) Width() float64 { return float64(g.Cols) * g.PixelSize }

// Height returns the physical extent of the grid along y (m).
func (g Grid) Height() float64 { return float64(g.Rows) * g.PixelSize }

// XCoords returns the physical x coordinate of every column.
func (g Grid) XCoords() []float64 {
	return axisCoords(g.Cols, g.PixelSize)
}

// YCoords returns the physical y coordinate of every row.
func (g Grid) YCoords() []float64 {
	return axisCoords(g.Rows, g.PixelSize)
}

// axisCoords builds the coordinate axis (index - n/2) * d for n samples.
func axisCoords(n int, d float64) []float64 {
	coords := make([]float64, n)
	if n == 1 {
		coords[0] = 0
		return coords
	}
	start := -float64(n/2) * d
	end := float64(n-1-n/2) * d
	floats.Span(coords, start, end)
	return coords
}

// NewMask allocates a zeroed Rows x Cols transmittance mask.
func (g Grid) NewMask() [][]float64 {
	mask := make([][]float64, g.Rows)
	for i := range mask {
		mask[i] = make([]float64, g.Cols)
	}
	return mask
}

// Combine sums any number of masks element-wise and clips the result to
// [0, 1], so overlapping open regions stay fully transmissive instead of
// accumulating unphysical values.
func Combine(masks ...[][]float64) [][]float64 {
	if len(masks) == 0 {
		return nil
	}
	rows := len(masks[0])
	cols := 0
	if rows > 0 {
		cols = len(masks[0][0])
	}
	out := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]float64, cols)
		for c := 0; c < cols; c++ {
			sum := 0.0
			for _, m := range masks {
				sum += m[r][c]
			}
			if sum > 1 {
				sum = 1
			} else if sum < 0 {
				sum = 0
			}
			out[r][c] = sum
		}
	}
	return out
}

// MaskSum returns the total transmittance of a mask. Useful as a proxy
// for the open area of the aperture.
func MaskSum(mask [][]float64) float64 {
	total := 0.0
	for _, row := range mask {
		total += floats.Sum(row)
	}
	return total
}
