// Package fresnel models near-field (Fresnel) diffraction of a single
// slit in one dimension. The pattern is parameterized entirely by the
// dimensionless Fresnel number N = a²/(λz) and the normalized screen
// coordinate u = a·y/(λz), and degenerates to the Fraunhofer sinc²
// pattern as N → 0.
package fresnel

import "math"

const (
	// fraunhoferLimit is the Fresnel number below which the general
	// branch breaks down numerically and the closed-form Fraunhofer
	// limit is returned instead. Well below any practically
	// distinguishable N.
	fraunhoferLimit = 1e-6

	// degenerateCenter guards the normalization: if the central-maximum
	// intensity is this small the unnormalized pattern is returned
	// rather than dividing by near-zero.
	degenerateCenter = 1e-12
)

// Regime classifies a Fresnel number for display labeling.
type Regime int

const (
	// FarField is the Fraunhofer-equivalent regime, N < 0.1.
	FarField Regime = iota
	// Transition covers 0.1 <= N < 1.0.
	Transition
	// NearField is the Fresnel-dominated regime, N >= 1.0.
	NearField
)

func (r Regime) String() string {
	switch r {
	case FarField:
		return "far field (Fraunhofer)"
	case Transition:
		return "Fresnel-Fraunhofer transition"
	case NearField:
		return "near field (Fresnel)"
	default:
		return "unknown"
	}
}

// Classify reports the diffraction regime for the Fresnel number n.
func Classify(n float64) Regime {
	switch {
	case n < 0.1:
		return FarField
	case n < 1.0:
		return Transition
	default:
		return NearField
	}
}

// Number computes the Fresnel number N = a²/(λz) for slit half-width a,
// wavelength λ and propagation distance z.
func Number(halfWidth, wavelength, distance float64) float64 {
	return halfWidth * halfWidth / (wavelength * distance)
}

// SlitWidth inverts the Fresnel number, returning the slit half-width
// a = sqrt(N·λ·z) that produces the given N at wavelength λ and
// distance z.
func SlitWidth(n, wavelength, distance float64) float64 {
	return math.Sqrt(n * wavelength * distance)
}

// IntensityAt evaluates the normalized diffraction intensity at a single
// normalized screen coordinate u for Fresnel number n.
//
// For n below the Fraunhofer limit the closed form sinc(u)² is returned
// directly. Otherwise the intensity is (C1−C2)² + (S1−S2)² with the
// Fresnel integrals evaluated at ±sqrt(n/2) − u·sqrt(2/n), normalized by
// the same expression at the central maximum so the peak equals 1.
func IntensityAt(u, n float64) float64 {
	if n < fraunhoferLimit {
		s := SincNorm(u)
		return s * s
	}

	sqrtN2 := math.Sqrt(n / 2)
	sqrt2N := math.Sqrt(2 / n)

	s1, c1 := Integrals(sqrtN2 - u*sqrt2N)
	s2, c2 := Integrals(-sqrtN2 - u*sqrt2N)
	intensity := (c1-c2)*(c1-c2) + (s1-s2)*(s1-s2)

	s0, c0 := Integrals(sqrtN2)
	central := (2*c0)*(2*c0) + (2*s0)*(2*s0)
	if central < degenerateCenter {
		return intensity
	}
	return intensity / central
}

// Intensity evaluates IntensityAt over a coordinate array, sharing the
// central-maximum normalization across all samples.
func Intensity(u []float64, n float64) []float64 {
	out := make([]float64, len(u))
	if n < fraunhoferLimit {
		for i, v := range u {
			s := SincNorm(v)
			out[i] = s * s
		}
		return out
	}

	sqrtN2 := math.Sqrt(n / 2)
	sqrt2N := math.Sqrt(2 / n)

	s0, c0 := Integrals(sqrtN2)
	// The bracket at u=0 straddles ±sqrt(N/2) symmetrically, so by odd
	// symmetry it is twice the value at +sqrt(N/2).
	central := (2*c0)*(2*c0) + (2*s0)*(2*s0)

	for i, v := range u {
		s1, c1 := Integrals(sqrtN2 - v*sqrt2N)
		s2, c2 := Integrals(-sqrtN2 - v*sqrt2N)
		intensity := (c1-c2)*(c1-c2) + (s1-s2)*(s1-s2)
		if central < degenerateCenter {
			out[i] = intensity
		} else {
			out[i] = intensity / central
		}
	}
	return out
}

// SincNorm is the normalized sinc function sin(πx)/(πx), with the exact
// limit 1 at x = 0. This is the convention of the Fraunhofer single-slit
// envelope in the normalized coordinate u.
func SincNorm(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
