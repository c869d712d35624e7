package fresnel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/gonum/floats"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		n    float64
		want Regime
	}{
		{0.001, FarField},
		{0.0999, FarField},
		{0.1, Transition},
		{0.5, Transition},
		{0.9999, Transition},
		{1.0, NearField},
		{50, NearField},
	}
	for _, tt := range cases {
		assert.Equal(t, tt.want, Classify(tt.n), "N = %v", tt.n)
	}
}

func TestRegimeString(t *testing.T) {
	assert.Equal(t, "far field (Fraunhofer)", FarField.String())
	assert.Equal(t, "Fresnel-Fraunhofer transition", Transition.String())
	assert.Equal(t, "near field (Fresnel)", NearField.String())
	assert.Equal(t, "unknown", Regime(42).String())
}

func TestNumberSlitWidthRoundTrip(t *testing.T) {
	wavelength := 632.8e-9
	distance := 1.0
	for _, n := range []float64{0.01, 0.1, 1, 10, 100} {
		a := SlitWidth(n, wavelength, distance)
		assert.InEpsilon(t, n, Number(a, wavelength, distance), 1e-12, "N = %v", n)
	}
}

func TestIntensityCentralPeakIsOne(t *testing.T) {
	// At u = 0 the bracket is exactly the normalization bracket, so the
	// peak is 1 by construction, not just approximately.
	for _, n := range []float64{0.01, 0.1, 1, 10, 100} {
		assert.Equal(t, 1.0, IntensityAt(0, n), "N = %v", n)
	}
}

func TestIntensityDegenerateBranch(t *testing.T) {
	for _, u := range []float64{0, 0.25, 0.5, 1, 1.5, 2.5} {
		s := SincNorm(u)
		assert.Equal(t, s*s, IntensityAt(u, 1e-8), "u = %v", u)
	}
}

func TestIntensityApproachesFraunhofer(t *testing.T) {
	// Well into the far field the general branch reproduces the sinc²
	// envelope it hands over to below the degenerate threshold.
	for _, u := range []float64{0, 0.4, 0.8, 1.5, 2.2} {
		s := SincNorm(u)
		assert.InDelta(t, s*s, IntensityAt(u, 0.01), 0.01, "u = %v", u)
	}
}

func TestIntensitySymmetric(t *testing.T) {
	for _, n := range []float64{0.5, 2, 25} {
		for _, u := range []float64{0.3, 1.1, 4.7} {
			assert.Equal(t, IntensityAt(u, n), IntensityAt(-u, n),
				"N = %v, u = %v", n, u)
		}
	}
}

func TestIntensityVectorMatchesScalar(t *testing.T) {
	u := make([]float64, 101)
	floats.Span(u, -6, 6)
	for _, n := range []float64{1e-8, 0.3, 2.5, 40} {
		got := Intensity(u, n)
		require.Len(t, got, len(u))
		for i, v := range u {
			assert.Equal(t, IntensityAt(v, n), got[i], "N = %v, u = %v", n, v)
		}
	}
}

func TestIntensityNonnegativeFinite(t *testing.T) {
	u := make([]float64, 501)
	floats.Span(u, -6, 6)
	for _, n := range []float64{0.01, 1, 100} {
		for i, v := range Intensity(u, n) {
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "N = %v, u = %v", n, u[i])
			assert.GreaterOrEqual(t, v, 0.0, "N = %v, u = %v", n, u[i])
		}
	}
}

func TestIntensityNearFieldShadow(t *testing.T) {
	// For a large Fresnel number the pattern hugs the geometric shadow.
	// The shadow edges sit at u = ±N/2, so probe well inside and well
	// outside rather than at the edge itself.
	const n = 100
	inside := IntensityAt(2, n)
	outside := IntensityAt(n, n)
	assert.Greater(t, inside, 0.3)
	assert.Less(t, outside, 0.05)
}
