package main

import (
	"go-diffraction/pkg/aperture"
	"go-diffraction/pkg/diffraction"
)

// fftRequest is sent FROM the GUI goroutine TO the FFT worker goroutine.
// It carries everything needed to rasterize the selected aperture and
// compute its diffraction pattern, so the worker never touches widgets.
type fftRequest struct {
	// Monotonic sequence number. The GUI drops results whose sequence is
	// older than the most recent request, so stale frames from a slow
	// recompute never overwrite fresh ones.
	Seq uint64

	Shape      aperture.Shape
	GridSize   int
	PixelSize  float64 // aperture plane sample size (m)
	Wavelength float64 // m
	Distance   float64 // aperture to screen (m)
	Scale      diffraction.LogScale
}

// fftResult is sent FROM the FFT worker TO the GUI goroutine via the
// results channel. All slices are owned by the receiver once sent.
type fftResult struct {
	Seq uint64

	Mask      [][]float64
	Intensity [][]float64 // display-scaled diffraction field
	XObs      []float64   // observation plane axes (m)
	YObs      []float64

	// Central-row intensity profile and the magnitude spectrum of the
	// central aperture row.
	Profile       []float64
	SpectrumFreqs []float64
	SpectrumMags  []float64

	// If not nil the GUI shows the error instead of updating plots.
	Err error
}

// analyticRequest asks the analytic worker for a Fraunhofer field of the
// rectangle plus annulus system over a square observation window.
type analyticRequest struct {
	Seq uint64

	Params    diffraction.FraunhoferParams
	HalfRange float64 // observation window is [-HalfRange, HalfRange] (m)
	Samples   int
}

// analyticResult carries the evaluated intensity field, already passed
// through the display transform, plus an aperture-plane preview mask.
type analyticResult struct {
	Seq uint64

	Display [][]float64 // log1p(1000·I/Imax), peak-normalized
	Axis    []float64
	Preview [][]float64 // rasterized rect + annulus composite
	Profile []float64   // central vertical cut of Display

	Err error
}

// fresnelRequest asks the Fresnel worker for the single-slit pattern at
// one Fresnel number over a fixed normalized coordinate window.
type fresnelRequest struct {
	Seq uint64

	Number     float64
	Wavelength float64
	Distance   float64
}

// fresnelResult carries the pattern and its far-field reference curve.
type fresnelResult struct {
	Seq uint64

	U         []float64
	Intensity []float64
	Reference []float64 // Fraunhofer sinc² envelope on the same axis
	SlitWidth float64   // physical half-width reproducing Number (m)
	Regime    string
}
