// Package diffraction computes far-field (Fraunhofer) diffraction
// intensity patterns, either numerically from a sampled aperture
// transmittance mask via a 2D discrete Fourier transform, or analytically
// from the closed-form rectangle+annulus two-aperture model.
package diffraction

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"go-diffraction/pkg/aperture"
)

// LogScale selects the optional dynamic-range compression applied to the
// intensity field, strictly for display purposes.
type LogScale int

const (
	// LogNone leaves the intensity untouched.
	LogNone LogScale = iota
	// Log1p applies log(1 + I) per sample.
	Log1p
	// Log10 applies log10(I + 1e-12) per sample; the epsilon keeps exact
	// zeros out of the singularity.
	Log10
)

const log10Epsilon = 1e-12

// Diffract computes the Fraunhofer diffraction intensity of a
// transmittance mask: 2D DFT, zero-frequency component shifted to the
// array center, squared magnitude. With normalize the field is scaled so
// its maximum is exactly 1; an all-zero mask short-circuits to an
// all-zero field instead of dividing by zero. The result is a pure
// function of the inputs.
func Diffract(mask [][]float64, normalize bool, scale LogScale) [][]float64 {
	rows := len(mask)
	if rows == 0 {
		return nil
	}
	cols := len(mask[0])

	field := make([][]complex128, rows)
	for r := 0; r < rows; r++ {
		field[r] = make([]complex128, cols)
		for c := 0; c < cols; c++ {
			field[r][c] = complex(mask[r][c], 0)
		}
	}

	spectrum := fftShift2(fft.FFT2(field))

	intensity := make([][]float64, rows)
	maxVal := 0.0
	for r := 0; r < rows; r++ {
		intensity[r] = make([]float64, cols)
		for c := 0; c < cols; c++ {
			mag := cmplx.Abs(spectrum[r][c])
			v := mag * mag
			intensity[r][c] = v
			if v > maxVal {
				maxVal = v
			}
		}
	}

	if normalize && maxVal > 0 {
		inv := 1 / maxVal
		for r := range intensity {
			floats.Scale(inv, intensity[r])
		}
	}

	switch scale {
	case Log1p:
		for r := range intensity {
			for c := range intensity[r] {
				intensity[r][c] = math.Log1p(intensity[r][c])
			}
		}
	case Log10:
		for r := range intensity {
			for c := range intensity[r] {
				intensity[r][c] = math.Log10(intensity[r][c] + log10Epsilon)
			}
		}
	}
	return intensity
}

// ObservationCoords returns the physical observation-plane axes for a
// diffraction pattern produced by Diffract: the centered DFT frequency
// bins of the grid scaled by wavelength*distance. Both depend on the
// wavelength and distance, so callers recompute them when either changes.
func ObservationCoords(g aperture.Grid, wavelength, distance float64) (xObs, yObs []float64) {
	scale := wavelength * distance
	xObs = shiftedFreqs(g.Cols, g.PixelSize)
	yObs = shiftedFreqs(g.Rows, g.PixelSize)
	floats.Scale(scale, xObs)
	floats.Scale(scale, yObs)
	return xObs, yObs
}

// shiftedFreqs builds the standard DFT sample frequencies for n samples
// at spacing d, reordered so frequency zero sits at index n/2:
// [-n/2, ..., -1, 0, 1, ..., n/2-1] / (n*d).
func shiftedFreqs(n int, d float64) []float64 {
	freqs := make([]float64, n)
	scale := 1 / (float64(n) * d)
	for i := 0; i < n; i++ {
		var bin float64
		if i < (n+1)/2 {
			bin = float64(i)
		} else {
			bin = float64(i - n)
		}
		freqs[i] = bin * scale
	}
	return rotateHalf(freqs)
}

// CenterRow returns the central row of a 2D intensity field, the usual
// 1D profile through the pattern peak.
func CenterRow(field [][]float64) []float64 {
	if len(field) == 0 {
		return nil
	}
	row := field[len(field)/2]
	out := make([]float64, len(row))
	copy(out, row)
	return out
}

// CenterColumn returns the central column of a 2D intensity field.
func CenterColumn(field [][]float64) []float64 {
	if len(field) == 0 {
		return nil
	}
	c := len(field[0]) / 2
	out := make([]float64, len(field))
	for r := range field {
		out[r] = field[r][c]
	}
	return out
}

// ProfileSpectrum computes the one-sided magnitude spectrum of a real 1D
// aperture profile sampled at spacing d. Returned frequencies are in
// cycles per unit length, from 0 to the Nyquist frequency.
func ProfileSpectrum(profile []float64, d float64) (freqs, mags []float64) {
	n := len(profile)
	if n == 0 {
		return nil, nil
	}
	transform := fourier.NewFFT(n)
	coeffs := transform.Coefficients(nil, profile)

	freqs = make([]float64, len(coeffs))
	mags = make([]float64, len(coeffs))
	for i, coeff := range coeffs {
		freqs[i] = transform.Freq(i) / d
		mags[i] = cmplx.Abs(coeff)
	}
	return freqs, mags
}

// fftShift2 shifts the zero-frequency component of a 2D spectrum to the
// array center by rotating both axes by half their length.
func fftShift2(spectrum [][]complex128) [][]complex128 {
	rows := len(spectrum)
	if rows == 0 {
		return spectrum
	}
	cols := len(spectrum[0])

	// Rolling forward by n/2 means reading from (i + ceil(n/2)) mod n,
	// which centers bin zero for both even and odd lengths.
	out := make([][]complex128, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]complex128, cols)
		srcR := (r + rows - rows/2) % rows
		for c := 0; c < cols; c++ {
			out[r][c] = spectrum[srcR][(c+cols-cols/2)%cols]
		}
	}
	return out
}

// rotateHalf applies the same centering rotation to a 1D axis.
func rotateHalf(v []float64) []float64 {
	n := len(v)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = v[(i+n-n/2)%n]
	}
	return out
}
