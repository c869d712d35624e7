package diffraction

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// sincThreshold guards the sin(x)/x and J1(x)/x evaluations: below it the
// exact limiting values (1 and 0.5) are returned instead of dividing.
const sincThreshold = 1e-10

// FraunhoferParams describes the two-aperture system of the analytic
// model: a RectWidth x RectHeight rectangle and an annulus of radii
// InnerRadius..OuterRadius, their centers Separation apart along y,
// illuminated coherently and observed at Distance. All lengths in
// meters; callers ensure wavelength and distance are nonzero.
type FraunhoferParams struct {
	Wavelength      float64 // λ
	Separation      float64 // D, rectangle-to-annulus center distance
	RectWidth       float64 // a
	RectHeight      float64 // b
	InnerRadius     float64 // R1
	OuterRadius     float64 // R2
	Distance        float64 // z, aperture to observation plane
	RefractiveIndex float64 // n
	SourceIntensity float64 // I0
}

// Sinc is the numerically stabilized sin(x)/x, returning exactly 1 for
// arguments within the stabilization threshold of zero.
func Sinc(x float64) float64 {
	if math.Abs(x) < sincThreshold {
		return 1
	}
	return math.Sin(x) / x
}

// BesselJ1Norm is the stabilized J1(x)/x. Its limit at zero is 0.5,
// since J1(x) ≈ x/2 for small x.
func BesselJ1Norm(x float64) float64 {
	if math.Abs(x) < sincThreshold {
		return 0.5
	}
	return math.J1(x) / x
}

// Intensity evaluates the closed-form Fraunhofer intensity at the
// observation-plane point (x, y): the rectangle's separable sinc² field,
// the annulus's J1-based field, and their interference cross term, all
// under the I0·n²/(λ²z²) prefactor. Small negative values produced by
// the cross term are clamped to zero.
func (p FraunhoferParams) Intensity(x, y float64) float64 {
	k := 2 * math.Pi / p.Wavelength
	z := p.Distance

	// Rectangle field amplitude: a·b·sinc(k·a·x/2z)·sinc(k·b·y/2z).
	sincX := Sinc(k * p.RectWidth * x / z / 2)
	sincY := Sinc(k * p.RectHeight * y / z / 2)
	rectField := p.RectWidth * p.RectHeight * sincX * sincY

	// Annulus field amplitude, with the radial coordinate floored away
	// from zero before it is used inside the Bessel arguments.
	r := math.Sqrt(x*x + y*y)
	kr := k * r
	if r <= sincThreshold {
		kr = sincThreshold
	}
	var besselInner, besselOuter float64
	if p.InnerRadius > 0 {
		besselInner = p.InnerRadius * p.InnerRadius *
			BesselJ1Norm(kr*p.InnerRadius/z)
	}
	if p.OuterRadius > 0 {
		besselOuter = p.OuterRadius * p.OuterRadius *
			BesselJ1Norm(kr*p.OuterRadius/z)
	}
	ringField := 4 * math.Pi * (besselOuter - besselInner)

	// Coherent superposition: fields interfere, intensities do not.
	phase := k * p.Separation * y / z
	cross := 2 * rectField * ringField * math.Cos(phase)

	total := p.SourceIntensity *
		(p.RefractiveIndex * p.RefractiveIndex) /
		(p.Wavelength * p.Wavelength * z * z) *
		(rectField*rectField + ringField*ringField + cross)

	return math.Max(0, total)
}

// IntensityGrid evaluates Intensity over the cartesian product of the
// coordinate axes, returning a row-major [len(ys)][len(xs)] field.
func (p FraunhoferParams) IntensityGrid(xs, ys []float64) [][]float64 {
	field := make([][]float64, len(ys))
	for r, y := range ys {
		field[r] = make([]float64, len(xs))
		for c, x := range xs {
			field[r][c] = p.Intensity(x, y)
		}
	}
	return field
}

// ObservationAxis returns n evenly spaced observation coordinates
// spanning [-r, r], the window the analytic model is usually plotted on.
func ObservationAxis(r float64, n int) []float64 {
	axis := make([]float64, n)
	if n == 1 {
		return axis
	}
	floats.Span(axis, -r, r)
	return axis
}
