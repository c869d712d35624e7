package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-diffraction/pkg/aperture"
	"go-diffraction/pkg/diffraction"
)

func TestComputeFFT(t *testing.T) {
	res := computeFFT(fftRequest{
		Seq:        7,
		Shape:      aperture.Circle{Radius: 20 * fftPixelSize},
		GridSize:   64,
		PixelSize:  fftPixelSize,
		Wavelength: 550e-9,
		Distance:   1.0,
		Scale:      diffraction.LogNone,
	})
	require.NoError(t, res.Err)
	assert.Equal(t, uint64(7), res.Seq)
	require.Len(t, res.Mask, 64)
	require.Len(t, res.Intensity, 64)
	require.Len(t, res.XObs, 64)
	require.Len(t, res.Profile, 64)
	assert.NotEmpty(t, res.SpectrumFreqs)
	assert.Len(t, res.SpectrumMags, len(res.SpectrumFreqs))

	assert.InDelta(t, 1.0, res.Intensity[32][32], 1e-12, "normalized peak at center")
	assert.Equal(t, 0.0, res.XObs[32], "zero observation coordinate at center")
}

func TestComputeFFTRejectsBadInput(t *testing.T) {
	base := fftRequest{
		Shape:      aperture.Circle{Radius: 1e-4},
		GridSize:   64,
		PixelSize:  fftPixelSize,
		Wavelength: 550e-9,
		Distance:   1.0,
	}

	bad := base
	bad.GridSize = 0
	assert.Error(t, computeFFT(bad).Err)

	bad = base
	bad.Wavelength = 0
	assert.Error(t, computeFFT(bad).Err)

	bad = base
	bad.Distance = -1
	assert.Error(t, computeFFT(bad).Err)
}

func TestDisplayTransform(t *testing.T) {
	field := [][]float64{
		{0, 1, 4},
		{2, 8, 0.5},
	}
	out := displayTransform(field)
	require.Len(t, out, 2)

	// Peak maps to 1, zeros stay zero, order is preserved.
	assert.Equal(t, 1.0, out[1][1])
	assert.Equal(t, 0.0, out[0][0])
	assert.Greater(t, out[0][2], out[0][1])

	zero := displayTransform([][]float64{{0, 0}, {0, 0}})
	assert.Equal(t, [][]float64{{0, 0}, {0, 0}}, zero)
}

func TestAnalyticPreview(t *testing.T) {
	p := diffraction.FraunhoferParams{
		Wavelength:  550e-9,
		Separation:  2e-3,
		RectWidth:   0.5e-3,
		RectHeight:  0.8e-3,
		InnerRadius: 0.3e-3,
		OuterRadius: 0.6e-3,
		Distance:    1,
	}
	mask := analyticPreview(p)
	require.Len(t, mask, analyticPreviewSize)
	require.Len(t, mask[0], analyticPreviewSize)

	sum := 0.0
	for _, row := range mask {
		for _, v := range row {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
			sum += v
		}
	}
	assert.Greater(t, sum, 0.0, "both apertures must land on the preview grid")
}

func TestComputeAnalytic(t *testing.T) {
	res := computeAnalytic(analyticRequest{
		Seq: 3,
		Params: diffraction.FraunhoferParams{
			Wavelength:      550e-9,
			Separation:      2e-3,
			RectWidth:       0.5e-3,
			RectHeight:      0.8e-3,
			InnerRadius:     0.3e-3,
			OuterRadius:     0.6e-3,
			Distance:        1,
			RefractiveIndex: 1,
			SourceIntensity: 1,
		},
		HalfRange: 4e-3,
		Samples:   101,
	})
	require.NoError(t, res.Err)
	require.Len(t, res.Display, 101)
	require.Len(t, res.Axis, 101)
	require.Len(t, res.Profile, 101)

	maxV := 0.0
	for _, row := range res.Display {
		for _, v := range row {
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 1.0)
			if v > maxV {
				maxV = v
			}
		}
	}
	assert.InDelta(t, 1.0, maxV, 1e-12, "display transform is peak normalized")
}

func TestComputeAnalyticRejectsBadInput(t *testing.T) {
	req := analyticRequest{
		Params:    diffraction.FraunhoferParams{Wavelength: 550e-9, Distance: 1},
		HalfRange: 0,
		Samples:   101,
	}
	assert.Error(t, computeAnalytic(req).Err)

	req.HalfRange = 1e-3
	req.Params.Wavelength = 0
	assert.Error(t, computeAnalytic(req).Err)
}

func TestComputeFresnel(t *testing.T) {
	res := computeFresnel(fresnelRequest{
		Seq:        1,
		Number:     1.0,
		Wavelength: 632.8e-9,
		Distance:   1.0,
	})
	require.Len(t, res.U, fresnelSamples)
	require.Len(t, res.Intensity, fresnelSamples)
	require.Len(t, res.Reference, fresnelSamples)

	assert.Equal(t, -6.0, res.U[0])
	assert.InDelta(t, 6.0, res.U[fresnelSamples-1], 1e-12)
	assert.Greater(t, res.SlitWidth, 0.0)
	assert.Equal(t, "near field (Fresnel)", res.Regime)

	for i, v := range res.Reference {
		assert.GreaterOrEqual(t, v, 0.0, "reference at %d", i)
		assert.LessOrEqual(t, v, 1.0, "reference at %d", i)
	}
}

func TestReplaceKeepsLatest(t *testing.T) {
	ch := make(chan int, 1)
	replace(ch, 1)
	replace(ch, 2)
	replace(ch, 3)
	assert.Equal(t, 3, <-ch)
	select {
	case v := <-ch:
		t.Fatalf("channel should be empty, got %d", v)
	default:
	}
}
