package fresnel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Reference values from Abramowitz & Stegun table 7.5 and mpmath.
func TestIntegralsReferenceValues(t *testing.T) {
	cases := []struct {
		x, s, c float64
	}{
		{0.5, 0.064732432860, 0.492344225871},
		{1.0, 0.438259147390, 0.779893400377},
		{2.0, 0.343415678364, 0.488253406075},
		{5.0, 0.499191381917, 0.563631188704},
		{10.0, 0.468169978585, 0.499898694206},
	}
	for _, tt := range cases {
		s, c := Integrals(tt.x)
		assert.InDelta(t, tt.s, s, 1e-8, "S(%v)", tt.x)
		assert.InDelta(t, tt.c, c, 1e-8, "C(%v)", tt.x)
	}
}

func TestIntegralsZero(t *testing.T) {
	s, c := Integrals(0)
	assert.Equal(t, 0.0, s)
	assert.Equal(t, 0.0, c)
}

func TestIntegralsOddSymmetry(t *testing.T) {
	for _, x := range []float64{0.3, 1.7, 3.5, 4.2, 25} {
		sp, cp := Integrals(x)
		sn, cn := Integrals(-x)
		assert.Equal(t, -sp, sn, "S odd at %v", x)
		assert.Equal(t, -cp, cn, "C odd at %v", x)
	}
}

// The two evaluation branches must agree where they meet.
func TestIntegralsBranchSeam(t *testing.T) {
	for _, x := range []float64{3.2, 3.5, 3.8} {
		ss, cs := integralsSeries(x)
		sa, ca := integralsAsymptotic(x)
		assert.InDelta(t, ss, sa, 1e-7, "S at %v", x)
		assert.InDelta(t, cs, ca, 1e-7, "C at %v", x)
	}
}

func TestIntegralsLargeArgumentLimit(t *testing.T) {
	s, c := Integrals(100)
	// Oscillation about 1/2 decays as 1/(πx).
	bound := 1 / (math.Pi * 100)
	assert.InDelta(t, 0.5, s, bound)
	assert.InDelta(t, 0.5, c, bound)
}
