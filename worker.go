package main

import (
	"context"
	"errors"
	"log"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"go-diffraction/pkg/aperture"
	"go-diffraction/pkg/diffraction"
	"go-diffraction/pkg/fresnel"
)

// workers owns the three compute goroutines, one per simulator tab. Each
// loop receives requests on its own channel, coalesces bursts down to the
// newest request and sends one result back. The GUI side never blocks:
// request sends overwrite the single-slot channel and result sends are
// dropped when the GUI is behind.
type workers struct {
	fftReq      chan fftRequest
	fftRes      chan fftResult
	analyticReq chan analyticRequest
	analyticRes chan analyticResult
	fresnelReq  chan fresnelRequest
	fresnelRes  chan fresnelResult

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newWorkers() *workers {
	ctx, cancel := context.WithCancel(context.Background())
	w := &workers{
		fftReq:      make(chan fftRequest, 1),
		fftRes:      make(chan fftResult, 4),
		analyticReq: make(chan analyticRequest, 1),
		analyticRes: make(chan analyticResult, 4),
		fresnelReq:  make(chan fresnelRequest, 1),
		fresnelRes:  make(chan fresnelResult, 4),
		ctx:         ctx,
		cancel:      cancel,
	}
	w.wg.Add(3)
	go w.runFFT()
	go w.runAnalytic()
	go w.runFresnel()
	return w
}

// stop cancels all worker loops, waits for them to exit and closes the
// result channels so the GUI update loops drain and return.
func (w *workers) stop() {
	w.cancel()
	w.wg.Wait()
	close(w.fftRes)
	close(w.analyticRes)
	close(w.fresnelRes)
	log.Println("Compute workers stopped.")
}

// submitFFT queues a request, replacing any not-yet-started one.
func (w *workers) submitFFT(req fftRequest) { replace(w.fftReq, req) }

func (w *workers) submitAnalytic(req analyticRequest) { replace(w.analyticReq, req) }

func (w *workers) submitFresnel(req fresnelRequest) { replace(w.fresnelReq, req) }

// replace performs a latest-wins send on a single-slot channel.
func replace[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

func (w *workers) runFFT() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case req := <-w.fftReq:
			res := computeFFT(req)
			select {
			case w.fftRes <- res:
			default:
				log.Println("FFT result channel full, dropping frame.")
			}
		}
	}
}

func (w *workers) runAnalytic() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case req := <-w.analyticReq:
			res := computeAnalytic(req)
			select {
			case w.analyticRes <- res:
			default:
				log.Println("Analytic result channel full, dropping frame.")
			}
		}
	}
}

func (w *workers) runFresnel() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case req := <-w.fresnelReq:
			res := computeFresnel(req)
			select {
			case w.fresnelRes <- res:
			default:
				log.Println("Fresnel result channel full, dropping frame.")
			}
		}
	}
}

func computeFFT(req fftRequest) fftResult {
	res := fftResult{Seq: req.Seq}
	if req.GridSize <= 0 || req.PixelSize <= 0 {
		res.Err = errors.New("grid size and pixel size must be positive")
		return res
	}
	if req.Wavelength <= 0 || req.Distance <= 0 {
		res.Err = errors.New("wavelength and distance must be positive")
		return res
	}

	g := aperture.NewSquareGrid(req.GridSize, req.PixelSize)
	res.Mask = aperture.Rasterize(g, req.Shape)
	res.Intensity = diffraction.Diffract(res.Mask, true, req.Scale)
	res.XObs, res.YObs = diffraction.ObservationCoords(g, req.Wavelength, req.Distance)
	res.Profile = diffraction.CenterRow(res.Intensity)

	maskRow := diffraction.CenterRow(res.Mask)
	res.SpectrumFreqs, res.SpectrumMags = diffraction.ProfileSpectrum(maskRow, req.PixelSize)
	return res
}

// analyticPreviewSize is the aperture-plane preview resolution.
const analyticPreviewSize = 200

func computeAnalytic(req analyticRequest) analyticResult {
	res := analyticResult{Seq: req.Seq}
	p := req.Params
	if p.Wavelength <= 0 || p.Distance <= 0 {
		res.Err = errors.New("wavelength and distance must be positive")
		return res
	}
	if req.HalfRange <= 0 || req.Samples < 2 {
		res.Err = errors.New("observation range must be positive")
		return res
	}

	res.Axis = diffraction.ObservationAxis(req.HalfRange, req.Samples)
	field := p.IntensityGrid(res.Axis, res.Axis)
	res.Display = displayTransform(field)
	res.Profile = diffraction.CenterColumn(res.Display)
	res.Preview = analyticPreview(p)
	return res
}

// displayTransform compresses the raw analytic intensity for on-screen
// rendering: log1p(1000·I/Imax), rescaled so the brightest sample is 1.
// An all-dark field passes through untouched.
func displayTransform(field [][]float64) [][]float64 {
	maxI := 0.0
	for _, row := range field {
		if m := floats.Max(row); m > maxI {
			maxI = m
		}
	}
	out := make([][]float64, len(field))
	if maxI <= 0 {
		for r, row := range field {
			out[r] = make([]float64, len(row))
		}
		return out
	}

	maxDisplay := 0.0
	for r, row := range field {
		out[r] = make([]float64, len(row))
		for c, v := range row {
			d := math.Log1p(1000 * v / maxI)
			out[r][c] = d
			if d > maxDisplay {
				maxDisplay = d
			}
		}
	}
	if maxDisplay > 0 {
		inv := 1 / maxDisplay
		for r := range out {
			floats.Scale(inv, out[r])
		}
	}
	return out
}

// analyticPreview rasterizes the rectangle and annulus of the two-slit
// system onto a small grid, rectangle above, annulus below, their
// centers Separation apart.
func analyticPreview(p diffraction.FraunhoferParams) [][]float64 {
	span := p.Separation + 2*(p.RectHeight+p.OuterRadius)
	if span <= 0 {
		span = 1e-3
	}
	g := aperture.NewSquareGrid(analyticPreviewSize, span/analyticPreviewSize)
	rect := aperture.Rasterize(g, aperture.Rectangle{
		Placement: aperture.Placement{CenterY: p.Separation / 2},
		Width:     p.RectWidth,
		Height:    p.RectHeight,
	})
	ring := aperture.Rasterize(g, aperture.Annulus{
		Placement:   aperture.Placement{CenterY: -p.Separation / 2},
		InnerRadius: p.InnerRadius,
		OuterRadius: p.OuterRadius,
	})
	return aperture.Combine(rect, ring)
}

// fresnelSamples is the resolution of the 1D pattern.
const fresnelSamples = 2000

func computeFresnel(req fresnelRequest) fresnelResult {
	res := fresnelResult{Seq: req.Seq}

	res.U = make([]float64, fresnelSamples)
	floats.Span(res.U, -6, 6)
	res.Intensity = fresnel.Intensity(res.U, req.Number)

	res.Reference = make([]float64, fresnelSamples)
	for i, u := range res.U {
		s := fresnel.SincNorm(u)
		res.Reference[i] = s * s
	}

	res.SlitWidth = fresnel.SlitWidth(req.Number, req.Wavelength, req.Distance)
	res.Regime = fresnel.Classify(req.Number).String()
	return res
}
