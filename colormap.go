package main

import (
	"image"
	"image/color"
	"math"
)

// wavelengthRGB approximates the perceived color of monochromatic light
// of the given wavelength in nm, valid over 380-780 nm. Outside the
// visible band it returns grey so sliders past the edges stay sensible.
// The band edges are dimmed and a 0.8 gamma is applied.
func wavelengthRGB(nm float64) (r, g, b float64) {
	switch {
	case nm < 380 || nm > 780:
		return 0.5, 0.5, 0.5
	case nm < 440:
		r = -(nm - 440) / (440 - 380)
		b = 1
	case nm < 490:
		g = (nm - 440) / (490 - 440)
		b = 1
	case nm < 510:
		g = 1
		b = -(nm - 510) / (510 - 490)
	case nm < 580:
		r = (nm - 510) / (580 - 510)
		g = 1
	case nm < 645:
		r = 1
		g = -(nm - 645) / (645 - 580)
	default:
		r = 1
	}

	factor := 1.0
	switch {
	case nm < 420:
		factor = 0.3 + 0.7*(nm-380)/(420-380)
	case nm > 700:
		factor = 0.3 + 0.7*(780-nm)/(780-700)
	}

	const gamma = 0.8
	r = math.Pow(r*factor, gamma)
	g = math.Pow(g*factor, gamma)
	b = math.Pow(b*factor, gamma)
	return r, g, b
}

// tintRamp maps a normalized intensity in [0, 1] onto a black-to-tint
// ramp for the given wavelength, the display convention for diffraction
// heatmaps.
func tintRamp(val, wavelengthNM float64) color.Color {
	val = clamp01(val)
	r, g, b := wavelengthRGB(wavelengthNM)
	return color.NRGBA{
		R: uint8(255 * val * r),
		G: uint8(255 * val * g),
		B: uint8(255 * val * b),
		A: 255,
	}
}

// viridis is a piecewise linear approximation of the Viridis colormap,
// used for transmittance masks where intensity tinting has no meaning.
func viridis(val float64) color.Color {
	val = clamp01(val)
	var r, g, b uint8
	switch {
	case val < 0.25:
		f := val * 4
		r = uint8(68 + 1*f)
		g = uint8(1 + 55*f)
		b = uint8(84 + 51*f)
	case val < 0.5:
		f := (val - 0.25) * 4
		r = uint8(69 - 48*f)
		g = uint8(56 + 93*f)
		b = uint8(135 - 7*f)
	case val < 0.75:
		f := (val - 0.5) * 4
		r = uint8(21 + 108*f)
		g = uint8(149 + 51*f)
		b = uint8(128 - 93*f)
	default:
		f := (val - 0.75) * 4
		r = uint8(129 + 126*f)
		g = uint8(200 + 23*f)
		b = uint8(35 - 31*f)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// drawPlaceholder fills an image with a flat color, shown before the
// first result arrives.
func drawPlaceholder(img *image.RGBA, c color.Color) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}
