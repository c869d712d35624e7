package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"go-diffraction/pkg/aperture"
	"go-diffraction/pkg/diffraction"
)

// fftPixelSize is the aperture plane sampling interval. 10 µm samples
// put a 256-point grid at a 2.56 mm window, a sensible bench scale.
const fftPixelSize = 1e-5

// shapeParam describes a single tunable dimension of a shape: the
// slider caption, its bounds and default in display units, and the
// factor converting the display unit to meters (1 for dimensionless
// parameters such as eccentricity or jitter).
type shapeParam struct {
	label          string
	min, max, step float64
	def            float64
	toSI           float64
}

func umParam(label string, min, max, def float64) shapeParam {
	return shapeParam{label: label, min: min, max: max, step: 5, def: def, toSI: 1e-6}
}

// shapeSpec binds a selector entry to its parameter set and a builder
// producing the aperture shape from the resolved SI values.
type shapeSpec struct {
	name   string
	params []shapeParam
	build  func(v []float64, pl aperture.Placement) aperture.Shape
}

// shapeCatalog lists every supported aperture in selector order.
// Parameter values arrive in the builder already converted to meters.
var shapeCatalog = []shapeSpec{
	{
		name:   "Circle",
		params: []shapeParam{umParam("Radius (µm)", 20, 600, 200)},
		build: func(v []float64, pl aperture.Placement) aperture.Shape {
			return aperture.Circle{Placement: pl, Radius: v[0]}
		},
	},
	{
		name:   "Square",
		params: []shapeParam{umParam("Side (µm)", 20, 1000, 400)},
		build: func(v []float64, pl aperture.Placement) aperture.Shape {
			return aperture.Square{Placement: pl, Side: v[0]}
		},
	},
	{
		name: "Slit",
		params: []shapeParam{
			umParam("Width (µm)", 10, 400, 60),
			umParam("Height (µm)", 50, 2000, 1200),
		},
		build: func(v []float64, pl aperture.Placement) aperture.Shape {
			return aperture.Slit{Placement: pl, Width: v[0], Height: v[1]}
		},
	},
	{
		name: "Double slit",
		params: []shapeParam{
			umParam("Width (µm)", 10, 400, 60),
			umParam("Height (µm)", 50, 2000, 1200),
			umParam("Separation (µm)", 20, 1000, 300),
		},
		build: func(v []float64, pl aperture.Placement) aperture.Shape {
			return aperture.DoubleSlit{Placement: pl, Width: v[0], Height: v[1], Separation: v[2]}
		},
	},
	{
		name: "Rectangle",
		params: []shapeParam{
			umParam("Width (µm)", 20, 1000, 500),
			umParam("Height (µm)", 20, 1000, 250),
		},
		build: func(v []float64, pl aperture.Placement) aperture.Shape {
			return aperture.Rectangle{Placement: pl, Width: v[0], Height: v[1]}
		},
	},
	{
		name: "Ellipse",
		params: []shapeParam{
			umParam("Diameter (µm)", 40, 1000, 500),
			{label: "Eccentricity", min: 0, max: 0.95, step: 0.05, def: 0.6, toSI: 1},
		},
		build: func(v []float64, pl aperture.Placement) aperture.Shape {
			return aperture.Ellipse{Placement: pl, Diameter: v[0], Eccentricity: v[1]}
		},
	},
	{
		name: "Annulus",
		params: []shapeParam{
			umParam("Inner radius (µm)", 0, 500, 120),
			umParam("Outer radius (µm)", 20, 600, 250),
		},
		build: func(v []float64, pl aperture.Placement) aperture.Shape {
			return aperture.Annulus{Placement: pl, InnerRadius: v[0], OuterRadius: v[1]}
		},
	},
	{
		name: "Cross",
		params: []shapeParam{
			umParam("Width (µm)", 50, 1500, 800),
			umParam("Height (µm)", 50, 1500, 800),
		},
		build: func(v []float64, pl aperture.Placement) aperture.Shape {
			return aperture.Cross{Placement: pl, Width: v[0], Height: v[1]}
		},
	},
	{
		name: "Triangle",
		params: []shapeParam{
			umParam("Base (µm)", 40, 1200, 600),
			umParam("Height (µm)", 40, 1200, 600),
		},
		build: func(v []float64, pl aperture.Placement) aperture.Shape {
			return aperture.Triangle{Placement: pl, Base: v[0], Height: v[1]}
		},
	},
	{
		name: "Scatter",
		params: []shapeParam{
			umParam("Cell radius (µm)", 10, 200, 60),
			umParam("Cell spacing (µm)", 100, 800, 350),
			{label: "Disorder", min: 0, max: 4, step: 0.25, def: 0, toSI: 1},
		},
		build: func(v []float64, pl aperture.Placement) aperture.Shape {
			return aperture.Scatter{Placement: pl, CellRadius: v[0], CellSpacing: v[1], Jitter: v[2]}
		},
	},
	{
		name: "L-shape",
		params: []shapeParam{
			umParam("Width (µm)", 50, 1500, 700),
			umParam("Height (µm)", 50, 1500, 700),
		},
		build: func(v []float64, pl aperture.Placement) aperture.Shape {
			return aperture.LShape{Placement: pl, Width: v[0], Height: v[1]}
		},
	},
}

// maxShapeParams is the widest parameter set in the catalog; the tab
// allocates that many slider rows and hides the unused ones.
const maxShapeParams = 3

// fftTab is the numeric FFT simulator: pick a shape, watch its mask,
// far-field pattern, central profile and aperture spectrum update live.
type fftTab struct {
	ui      *AppUI
	content fyne.CanvasObject

	shapeSelect  *widget.Select
	paramSliders [maxShapeParams]*labeledSlider
	rotation     *labeledSlider
	wavelength   *labeledSlider
	resolution   *widget.Select
	scaleSelect  *widget.Select

	maskPlot    *canvas.Raster
	patternPlot *canvas.Raster
	profileImg  *canvas.Image
	spectrumImg *canvas.Image

	mu         sync.Mutex
	last       fftResult
	lastNM     float64 // wavelength the stored result was computed at
	shape      shapeSpec
	seq        atomic.Uint64
	suppressed bool // guards slider updates during shape switching
}

func newFFTTab(ui *AppUI) *fftTab {
	t := &fftTab{ui: ui, shape: shapeCatalog[0]}
	// Widget construction fires change callbacks; hold recomputes until
	// every control exists.
	t.suppressed = true

	names := make([]string, len(shapeCatalog))
	for i, s := range shapeCatalog {
		names[i] = s.name
	}
	t.shapeSelect = widget.NewSelect(names, t.onShapeSelected)

	for i := range t.paramSliders {
		t.paramSliders[i] = newLabeledSlider("", "%.2f", 0, 1, 0.01, 0, func(float64) {
			t.recompute()
		})
	}

	t.rotation = newLabeledSlider("Rotation (°)", "%.0f", 0, 360, 5, 0, func(float64) {
		t.recompute()
	})
	t.wavelength = newLabeledSlider("Wavelength (nm)", "%.0f", 400, 700, 5, 550, func(float64) {
		t.recompute()
	})

	t.resolution = widget.NewSelect([]string{"128", "256", "512"}, func(string) {
		t.recompute()
	})
	t.resolution.SetSelected("256")

	t.scaleSelect = widget.NewSelect([]string{"Linear", "Log(1+I)", "Log10"}, func(string) {
		t.recompute()
	})
	t.scaleSelect.SetSelected("Log(1+I)")

	t.maskPlot = canvas.NewRaster(t.drawMask)
	t.maskPlot.SetMinSize(fyne.NewSize(300, 300))
	t.patternPlot = canvas.NewRaster(t.drawPattern)
	t.patternPlot.SetMinSize(fyne.NewSize(300, 300))

	t.profileImg = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	t.profileImg.FillMode = canvas.ImageFillContain
	t.profileImg.SetMinSize(fyne.NewSize(300, 170))
	t.spectrumImg = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	t.spectrumImg.FillMode = canvas.ImageFillContain
	t.spectrumImg.SetMinSize(fyne.NewSize(300, 170))

	exportPattern := ui.savePNGButton("Export pattern PNG", func(out fyne.URIWriteCloser) error {
		t.mu.Lock()
		field := t.last.Intensity
		nm := t.lastNM
		t.mu.Unlock()
		return writeHeatmapPNG(field, 512, func(v float64) color.Color {
			return tintRamp(v, nm)
		}, out)
	})
	exportProfile := ui.savePNGButton("Export profile PNG", func(out fyne.URIWriteCloser) error {
		p, err := t.profilePlot()
		if err != nil {
			return err
		}
		return writeProfilePNG(p, 6*vg.Inch, 4*vg.Inch, out)
	})

	controls := container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Aperture:"), nil, t.shapeSelect),
		t.paramSliders[0].row,
		t.paramSliders[1].row,
		t.paramSliders[2].row,
		t.rotation.row,
		t.wavelength.row,
		container.NewGridWithColumns(2,
			container.NewBorder(nil, nil, widget.NewLabel("Resolution:"), nil, t.resolution),
			container.NewBorder(nil, nil, widget.NewLabel("Scale:"), nil, t.scaleSelect),
		),
		container.NewHBox(exportPattern, exportProfile),
	)

	plots := container.NewGridWithColumns(2,
		container.NewVBox(
			widget.NewLabelWithStyle("Aperture mask", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
			t.maskPlot,
			widget.NewLabelWithStyle("Central row intensity", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
			t.profileImg,
		),
		container.NewVBox(
			widget.NewLabelWithStyle("Diffraction pattern", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
			t.patternPlot,
			widget.NewLabelWithStyle("Aperture profile spectrum", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
			t.spectrumImg,
		),
	)

	t.content = container.NewBorder(nil, controls, nil, nil, plots)
	t.mu.Lock()
	t.suppressed = false
	t.mu.Unlock()
	t.shapeSelect.SetSelected(shapeCatalog[0].name)
	return t
}

// onShapeSelected retargets the parameter sliders for the chosen shape.
func (t *fftTab) onShapeSelected(name string) {
	for _, spec := range shapeCatalog {
		if spec.name != name {
			continue
		}
		t.mu.Lock()
		t.shape = spec
		t.suppressed = true
		t.mu.Unlock()

		for i, ls := range t.paramSliders {
			if i < len(spec.params) {
				p := spec.params[i]
				ls.setRange(p.min, p.max, p.step, p.def)
				ls.setName(p.label)
				ls.show()
			} else {
				ls.hide()
			}
		}

		t.mu.Lock()
		t.suppressed = false
		t.mu.Unlock()
		t.recompute()
		return
	}
}

// recompute snapshots the controls and hands the work to the FFT worker.
func (t *fftTab) recompute() {
	t.mu.Lock()
	if t.suppressed {
		t.mu.Unlock()
		return
	}
	spec := t.shape
	t.mu.Unlock()

	values := make([]float64, len(spec.params))
	for i, p := range spec.params {
		values[i] = t.paramSliders[i].value() * p.toSI
	}
	pl := aperture.Placement{RotationDeg: t.rotation.value()}
	shape := spec.build(values, pl)

	size, err := strconv.Atoi(t.resolution.Selected)
	if err != nil {
		size = 256
	}

	var scale diffraction.LogScale
	switch t.scaleSelect.Selected {
	case "Linear":
		scale = diffraction.LogNone
	case "Log10":
		scale = diffraction.Log10
	default:
		scale = diffraction.Log1p
	}

	t.ui.workers.submitFFT(fftRequest{
		Seq:        t.seq.Add(1),
		Shape:      shape,
		GridSize:   size,
		PixelSize:  fftPixelSize,
		Wavelength: t.wavelength.value() * 1e-9,
		Distance:   1.0,
		Scale:      scale,
	})
}

// updateLoop consumes FFT worker results, dropping stale frames.
func (t *fftTab) updateLoop() {
	for res := range t.ui.workers.fftRes {
		if res.Err != nil {
			t.ui.showError(res.Err)
			continue
		}
		if res.Seq != t.seq.Load() {
			continue // superseded while computing
		}

		t.mu.Lock()
		t.last = res
		t.lastNM = t.wavelength.value()
		t.mu.Unlock()

		t.maskPlot.Refresh()
		t.patternPlot.Refresh()
		t.refreshProfiles()
	}
}

func (t *fftTab) drawMask(w, h int) image.Image {
	t.mu.Lock()
	field := t.last.Mask
	t.mu.Unlock()
	return heatmapImage(field, w, h, viridis)
}

func (t *fftTab) drawPattern(w, h int) image.Image {
	t.mu.Lock()
	field := t.last.Intensity
	nm := t.lastNM
	t.mu.Unlock()
	return heatmapImage(field, w, h, func(v float64) color.Color {
		return tintRamp(v, nm)
	})
}

// refreshProfiles rebuilds the two line plots below the heatmaps.
func (t *fftTab) refreshProfiles() {
	if p, err := t.profilePlot(); err == nil {
		t.profileImg.Image = renderProfileImage(p, 4.5*vg.Inch, 2.5*vg.Inch)
		t.profileImg.Refresh()
	}
	if p, err := t.spectrumPlot(); err == nil {
		t.spectrumImg.Image = renderProfileImage(p, 4.5*vg.Inch, 2.5*vg.Inch)
		t.spectrumImg.Refresh()
	}
}

// profilePlot builds the central-row intensity plot in observation
// plane coordinates.
func (t *fftTab) profilePlot() (*plot.Plot, error) {
	t.mu.Lock()
	xs := t.last.XObs
	profile := t.last.Profile
	nm := t.lastNM
	t.mu.Unlock()
	if len(xs) == 0 || len(profile) == 0 {
		return nil, errors.New("no diffraction result yet")
	}

	r, g, b := wavelengthRGB(nm)
	return newProfilePlot("Central row", "x (m)", "intensity", []profileSeries{{
		Name:  fmt.Sprintf("λ = %.0f nm", nm),
		X:     xs,
		Y:     profile,
		Color: color.NRGBA{R: uint8(255 * r), G: uint8(255 * g), B: uint8(255 * b), A: 255},
	}})
}

// spectrumPlot builds the magnitude spectrum of the central aperture
// row, frequencies in cycles per meter.
func (t *fftTab) spectrumPlot() (*plot.Plot, error) {
	t.mu.Lock()
	freqs := t.last.SpectrumFreqs
	mags := t.last.SpectrumMags
	t.mu.Unlock()
	if len(freqs) == 0 {
		return nil, errors.New("no spectrum result yet")
	}

	return newProfilePlot("Aperture profile spectrum", "spatial frequency (1/m)", "|F|",
		[]profileSeries{{
			X:     freqs,
			Y:     mags,
			Color: color.NRGBA{R: 0x2b, G: 0x8c, B: 0xbe, A: 255},
		}})
}
