package aperture

import "math"

// rotateMask resamples a finished mask rotated by the given angle
// (degrees, counterclockwise) about the grid center. Each destination
// sample is bilinearly interpolated from the source mask; samples whose
// preimage falls outside the grid are opaque. The output therefore stays
// within [0, 1] whenever the input does.
func rotateMask(mask [][]float64, deg float64) [][]float64 {
	rows := len(mask)
	if rows == 0 {
		return mask
	}
	cols := len(mask[0])
	if cols == 0 {
		return mask
	}

	theta := deg * math.Pi / 180
	sin, cos := math.Sincos(theta)
	cr := float64(rows-1) / 2
	cc := float64(cols-1) / 2

	out := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]float64, cols)
		dy := float64(r) - cr
		for c := 0; c < cols; c++ {
			dx := float64(c) - cc

			// Inverse mapping: rotate the destination sample back into
			// the source frame, then interpolate.
			srcC := cc + cos*dx + sin*dy
			srcR := cr - sin*dx + cos*dy

			out[r][c] = bilinear(mask, srcR, srcC, rows, cols)
		}
	}
	return out
}

func bilinear(mask [][]float64, r, c float64, rows, cols int) float64 {
	r0 := math.Floor(r)
	c0 := math.Floor(c)
	fr := r - r0
	fc := c - c0

	v00 := sampleAt(mask, int(r0), int(c0), rows, cols)
	v01 := sampleAt(mask, int(r0), int(c0)+1, rows, cols)
	v10 := sampleAt(mask, int(r0)+1, int(c0), rows, cols)
	v11 := sampleAt(mask, int(r0)+1, int(c0)+1, rows, cols)

	top := v00 + fc*(v01-v00)
	bottom := v10 + fc*(v11-v10)
	return top + fr*(bottom-top)
}

// sampleAt reads a mask sample, treating anything off-grid as opaque.
func sampleAt(mask [][]float64, r, c, rows, cols int) float64 {
	if r < 0 || r >= rows || c < 0 || c >= cols {
		return 0
	}
	return mask[r][c]
}
