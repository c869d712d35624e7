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

	"go-diffraction/pkg/diffraction"
)

// analyticSamples is the observation grid resolution of the analytic
// field. 201 keeps a sample exactly on each axis.
const analyticSamples = 201

// analyticTab evaluates the closed-form rectangle plus annulus
// Fraunhofer model and shows the aperture layout next to the pattern.
type analyticTab struct {
	ui      *AppUI
	content fyne.CanvasObject

	wavelength *labeledSlider
	separation *labeledSlider
	rectWidth  *labeledSlider
	rectHeight *labeledSlider
	innerR     *labeledSlider
	outerR     *labeledSlider
	halfRange  *labeledSlider
	distEntry  *widget.Entry

	previewPlot *canvas.Raster
	patternPlot *canvas.Raster
	profileImg  *canvas.Image

	mu         sync.Mutex
	last       analyticResult
	lastNM     float64
	seq        atomic.Uint64
	suppressed bool
}

func newAnalyticTab(ui *AppUI) *analyticTab {
	t := &analyticTab{ui: ui}
	t.suppressed = true

	onChange := func(float64) { t.recompute() }
	t.wavelength = newLabeledSlider("Wavelength (nm)", "%.0f", 400, 700, 5, 550, onChange)
	t.separation = newLabeledSlider("Separation D (mm)", "%.2f", 0, 5, 0.1, 2, onChange)
	t.rectWidth = newLabeledSlider("Rect width a (µm)", "%.0f", 50, 2000, 10, 500, onChange)
	t.rectHeight = newLabeledSlider("Rect height b (µm)", "%.0f", 50, 2000, 10, 800, onChange)
	t.innerR = newLabeledSlider("Annulus R1 (µm)", "%.0f", 0, 1000, 10, 300, onChange)
	t.outerR = newLabeledSlider("Annulus R2 (µm)", "%.0f", 50, 1200, 10, 600, onChange)
	t.halfRange = newLabeledSlider("Screen half-range (mm)", "%.1f", 0.5, 20, 0.5, 4, onChange)

	t.distEntry = widget.NewEntry()
	t.distEntry.SetText("1.0")
	t.distEntry.Validator = func(s string) error {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f <= 0 {
			return errors.New("distance must be a positive number")
		}
		return nil
	}
	t.distEntry.OnSubmitted = func(string) { t.recompute() }

	t.previewPlot = canvas.NewRaster(t.drawPreview)
	t.previewPlot.SetMinSize(fyne.NewSize(280, 280))
	t.patternPlot = canvas.NewRaster(t.drawPattern)
	t.patternPlot.SetMinSize(fyne.NewSize(280, 280))

	t.profileImg = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	t.profileImg.FillMode = canvas.ImageFillContain
	t.profileImg.SetMinSize(fyne.NewSize(280, 170))

	exportPattern := ui.savePNGButton("Export pattern PNG", func(out fyne.URIWriteCloser) error {
		t.mu.Lock()
		field := t.last.Display
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
		t.wavelength.row,
		t.separation.row,
		container.NewGridWithColumns(2, t.rectWidth.row, t.rectHeight.row),
		container.NewGridWithColumns(2, t.innerR.row, t.outerR.row),
		t.halfRange.row,
		container.NewBorder(nil, nil, widget.NewLabel("Distance z (m):"), nil, t.distEntry),
		container.NewHBox(exportPattern, exportProfile),
	)

	plots := container.NewGridWithColumns(2,
		container.NewVBox(
			widget.NewLabelWithStyle("Aperture layout", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
			t.previewPlot,
			widget.NewLabelWithStyle("Central column intensity", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
			t.profileImg,
		),
		container.NewVBox(
			widget.NewLabelWithStyle("Fraunhofer pattern", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
			t.patternPlot,
		),
	)

	t.content = container.NewBorder(nil, controls, nil, nil, plots)
	t.suppressed = false
	return t
}

// distance parses the validated distance entry, falling back to 1 m.
func (t *analyticTab) distance() (float64, error) {
	f, err := strconv.ParseFloat(t.distEntry.Text, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid propagation distance %q", t.distEntry.Text)
	}
	return f, nil
}

func (t *analyticTab) recompute() {
	if t.suppressed {
		return
	}
	z, err := t.distance()
	if err != nil {
		t.ui.showError(err)
		return
	}

	params := diffraction.FraunhoferParams{
		Wavelength:      t.wavelength.value() * 1e-9,
		Separation:      t.separation.value() * 1e-3,
		RectWidth:       t.rectWidth.value() * 1e-6,
		RectHeight:      t.rectHeight.value() * 1e-6,
		InnerRadius:     t.innerR.value() * 1e-6,
		OuterRadius:     t.outerR.value() * 1e-6,
		Distance:        z,
		RefractiveIndex: 1,
		SourceIntensity: 1,
	}
	t.ui.workers.submitAnalytic(analyticRequest{
		Seq:       t.seq.Add(1),
		Params:    params,
		HalfRange: t.halfRange.value() * 1e-3,
		Samples:   analyticSamples,
	})
}

func (t *analyticTab) updateLoop() {
	for res := range t.ui.workers.analyticRes {
		if res.Err != nil {
			t.ui.showError(res.Err)
			continue
		}
		if res.Seq != t.seq.Load() {
			continue
		}

		t.mu.Lock()
		t.last = res
		t.lastNM = t.wavelength.value()
		t.mu.Unlock()

		t.previewPlot.Refresh()
		t.patternPlot.Refresh()
		if p, err := t.profilePlot(); err == nil {
			t.profileImg.Image = renderProfileImage(p, 4.5*vg.Inch, 2.5*vg.Inch)
			t.profileImg.Refresh()
		}
	}
}

func (t *analyticTab) drawPreview(w, h int) image.Image {
	t.mu.Lock()
	field := t.last.Preview
	t.mu.Unlock()
	return heatmapImage(field, w, h, viridis)
}

func (t *analyticTab) drawPattern(w, h int) image.Image {
	t.mu.Lock()
	field := t.last.Display
	nm := t.lastNM
	t.mu.Unlock()
	return heatmapImage(field, w, h, func(v float64) color.Color {
		return tintRamp(v, nm)
	})
}

// profilePlot renders the vertical cut through the pattern center, the
// axis that carries the interference fringes.
func (t *analyticTab) profilePlot() (*plot.Plot, error) {
	t.mu.Lock()
	axis := t.last.Axis
	profile := t.last.Profile
	nm := t.lastNM
	t.mu.Unlock()
	if len(axis) == 0 || len(profile) == 0 {
		return nil, errors.New("no analytic result yet")
	}

	r, g, b := wavelengthRGB(nm)
	return newProfilePlot("Central column", "y (m)", "display intensity", []profileSeries{{
		Name:  fmt.Sprintf("λ = %.0f nm", nm),
		X:     axis,
		Y:     profile,
		Color: color.NRGBA{R: uint8(255 * r), G: uint8(255 * g), B: uint8(255 * b), A: 255},
	}})
}
