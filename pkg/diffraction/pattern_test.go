package diffraction

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-diffraction/pkg/aperture"
)

func TestDiffractZeroMask(t *testing.T) {
	g := aperture.NewSquareGrid(64, 1e-5)
	out := Diffract(g.NewMask(), true, LogNone)
	require.Len(t, out, 64)
	for r := range out {
		for c := range out[r] {
			assert.Equal(t, 0.0, out[r][c], "zero mask must stay zero at %d,%d", r, c)
		}
	}

	// Log10 of the empty field hits the epsilon floor instead of -Inf.
	logged := Diffract(g.NewMask(), true, Log10)
	assert.InDelta(t, -12, logged[32][32], 1e-12)
}

func TestDiffractNormalizedPeak(t *testing.T) {
	g := aperture.NewSquareGrid(256, 1e-5)
	mask := aperture.Rasterize(g, aperture.Circle{Radius: 20 * g.PixelSize})
	out := Diffract(mask, true, LogNone)

	// The zero-order peak of a centered aperture sits at the array center
	// after the shift, and normalization pins it at 1.
	assert.InDelta(t, 1.0, out[128][128], 1e-12)
	for r := range out {
		for c := range out[r] {
			v := out[r][c]
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
			assert.LessOrEqual(t, v, 1.0)
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}
}

func TestDiffractDCValue(t *testing.T) {
	g := aperture.NewSquareGrid(128, 1.0)
	mask := aperture.Rasterize(g, aperture.Square{Side: 20})
	sum := aperture.MaskSum(mask)
	out := Diffract(mask, false, LogNone)
	// Unnormalized zero-frequency intensity is the squared open area.
	assert.InEpsilon(t, sum*sum, out[64][64], 1e-10)
}

func TestDiffractSlitMatchesDirichletKernel(t *testing.T) {
	const n = 256
	g := aperture.NewSquareGrid(n, 1.0)
	// Nominal width 32 opens 33 columns because both bounds are inclusive.
	mask := aperture.Rasterize(g, aperture.Slit{Width: 32, Height: 32})
	out := Diffract(mask, true, LogNone)
	row := CenterRow(out)

	const w = 33.0
	for c := 0; c < n; c++ {
		k := float64(c - n/2)
		expected := 1.0
		if k != 0 {
			d := math.Sin(w*math.Pi*k/n) / (w * math.Sin(math.Pi*k/n))
			expected = d * d
		}
		assert.InDelta(t, expected, row[c], 1e-9, "column %d", c)
	}
}

func TestDiffractDoubleSlitFringes(t *testing.T) {
	const n = 256
	g := aperture.NewSquareGrid(n, 1.0)
	mask := aperture.Rasterize(g, aperture.DoubleSlit{
		Width: 8, Height: 80, Separation: 30,
	})
	out := Diffract(mask, true, LogNone)
	row := CenterRow(out)

	// cos²(π·sep·k/n) modulation: near-extinction around k = n/(2·sep)
	// and a bright interference order around k = 3n/(2·sep).
	assert.InDelta(t, 1.0, row[n/2], 1e-12)
	assert.Less(t, row[n/2+4], 0.02)
	assert.Greater(t, row[n/2+9], 10*row[n/2+4])
}

func TestObservationCoords(t *testing.T) {
	g := aperture.NewSquareGrid(256, 1e-5)
	wavelength := 633e-9
	distance := 1.0
	xObs, yObs := ObservationCoords(g, wavelength, distance)
	require.Len(t, xObs, 256)

	step := wavelength * distance / (256 * g.PixelSize)
	assert.Equal(t, 0.0, xObs[128], "zero frequency at index n/2")
	assert.InDelta(t, step, xObs[129]-xObs[128], 1e-18)
	assert.InDelta(t, -128*step, xObs[0], 1e-15)
	assert.Equal(t, xObs, yObs, "square grid has identical axes")
}

func TestShiftedFreqsOddLength(t *testing.T) {
	freqs := shiftedFreqs(5, 1.0)
	want := []float64{-0.4, -0.2, 0, 0.2, 0.4}
	for i := range want {
		assert.InDelta(t, want[i], freqs[i], 1e-15, "index %d", i)
	}
}

func TestFFTShiftRoundTripOdd(t *testing.T) {
	// On an odd length the shift is not an involution; the center bin
	// must still land at n/2.
	spectrum := [][]complex128{
		{0, 1, 2},
		{10, 11, 12},
		{20, 21, 22},
	}
	shifted := fftShift2(spectrum)
	assert.Equal(t, complex128(0), shifted[1][1])
}

func TestCenterProfiles(t *testing.T) {
	field := [][]float64{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	assert.Equal(t, []float64{9, 10, 11, 12}, CenterRow(field))
	assert.Equal(t, []float64{3, 7, 11, 15}, CenterColumn(field))

	// Mutating the returned slice must not touch the field.
	row := CenterRow(field)
	row[0] = -1
	assert.Equal(t, 9.0, field[2][0])

	assert.Nil(t, CenterRow(nil))
	assert.Nil(t, CenterColumn(nil))
}

func TestProfileSpectrum(t *testing.T) {
	profile := []float64{0, 0, 1, 1, 1, 1, 0, 0}
	d := 0.5
	freqs, mags := ProfileSpectrum(profile, d)
	require.Len(t, freqs, 5, "one-sided spectrum of 8 real samples")
	require.Len(t, mags, 5)

	assert.Equal(t, 0.0, freqs[0])
	assert.InDelta(t, 4.0, mags[0], 1e-12, "DC magnitude equals the profile sum")
	assert.InDelta(t, 1/(2*d), freqs[4], 1e-12, "last bin at Nyquist")

	gotNil, magsNil := ProfileSpectrum(nil, d)
	assert.Nil(t, gotNil)
	assert.Nil(t, magsNil)
}
