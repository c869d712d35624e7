package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// fresnelTab plots the single-slit near-field pattern against its
// far-field envelope while the Fresnel number sweeps four decades.
type fresnelTab struct {
	ui      *AppUI
	content fyne.CanvasObject

	logN        *labeledSlider
	lambdaEntry *widget.Entry
	distEntry   *widget.Entry

	numberLabel *widget.Label
	regimeLabel *widget.Label
	widthLabel  *widget.Label
	plotImg     *canvas.Image

	mu         sync.Mutex
	last       fresnelResult
	lastNM     float64
	seq        atomic.Uint64
	suppressed bool
}

func newFresnelTab(ui *AppUI) *fresnelTab {
	t := &fresnelTab{ui: ui}
	t.suppressed = true

	t.logN = newLabeledSlider("log₁₀ N", "%.2f", -2, 2, 0.05, 0, func(float64) {
		t.recompute()
	})

	t.lambdaEntry = widget.NewEntry()
	t.lambdaEntry.SetText("632.8")
	t.lambdaEntry.Validator = func(s string) error {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f <= 0 {
			return errors.New("wavelength must be a positive number (nm)")
		}
		return nil
	}
	t.lambdaEntry.OnSubmitted = func(string) { t.recompute() }

	t.distEntry = widget.NewEntry()
	t.distEntry.SetText("1.0")
	t.distEntry.Validator = func(s string) error {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f <= 0 {
			return errors.New("distance must be a positive number (m)")
		}
		return nil
	}
	t.distEntry.OnSubmitted = func(string) { t.recompute() }

	t.numberLabel = widget.NewLabel("N = 1.00")
	t.regimeLabel = widget.NewLabel("")
	t.widthLabel = widget.NewLabel("")

	t.plotImg = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	t.plotImg.FillMode = canvas.ImageFillContain
	t.plotImg.SetMinSize(fyne.NewSize(640, 420))

	exportProfile := ui.savePNGButton("Export plot PNG", func(out fyne.URIWriteCloser) error {
		p, err := t.intensityPlot()
		if err != nil {
			return err
		}
		return writeProfilePNG(p, 8*vg.Inch, 5*vg.Inch, out)
	})

	controls := container.NewVBox(
		t.logN.row,
		container.NewGridWithColumns(2,
			container.NewBorder(nil, nil, widget.NewLabel("Wavelength (nm):"), nil, t.lambdaEntry),
			container.NewBorder(nil, nil, widget.NewLabel("Distance z (m):"), nil, t.distEntry),
		),
		container.NewHBox(t.numberLabel, t.regimeLabel, t.widthLabel),
		exportProfile,
	)

	t.content = container.NewBorder(nil, controls, nil, nil, t.plotImg)
	t.suppressed = false
	return t
}

// parameters parses the two entries, nm converted to meters.
func (t *fresnelTab) parameters() (wavelength, distance float64, err error) {
	nm, err := strconv.ParseFloat(t.lambdaEntry.Text, 64)
	if err != nil || nm <= 0 {
		return 0, 0, fmt.Errorf("invalid wavelength %q", t.lambdaEntry.Text)
	}
	z, err := strconv.ParseFloat(t.distEntry.Text, 64)
	if err != nil || z <= 0 {
		return 0, 0, fmt.Errorf("invalid propagation distance %q", t.distEntry.Text)
	}
	return nm * 1e-9, z, nil
}

func (t *fresnelTab) recompute() {
	if t.suppressed {
		return
	}
	wavelength, z, err := t.parameters()
	if err != nil {
		t.ui.showError(err)
		return
	}

	t.ui.workers.submitFresnel(fresnelRequest{
		Seq:        t.seq.Add(1),
		Number:     math.Pow(10, t.logN.value()),
		Wavelength: wavelength,
		Distance:   z,
	})
}

func (t *fresnelTab) updateLoop() {
	for res := range t.ui.workers.fresnelRes {
		if res.Seq != t.seq.Load() {
			continue
		}

		nm := 632.8
		if v, err := strconv.ParseFloat(t.lambdaEntry.Text, 64); err == nil {
			nm = v
		}
		t.mu.Lock()
		t.last = res
		t.lastNM = nm
		t.mu.Unlock()

		n := math.Pow(10, t.logN.value())
		t.numberLabel.SetText(fmt.Sprintf("N = %.3g", n))
		t.regimeLabel.SetText("· " + res.Regime)
		t.widthLabel.SetText(fmt.Sprintf("· slit half-width %.1f µm", res.SlitWidth*1e6))

		if p, err := t.intensityPlot(); err == nil {
			t.plotImg.Image = renderProfileImage(p, 8*vg.Inch, 5*vg.Inch)
			t.plotImg.Refresh()
		}
	}
}

// intensityPlot overlays the Fresnel pattern on the dashed Fraunhofer
// envelope it converges to.
func (t *fresnelTab) intensityPlot() (*plot.Plot, error) {
	t.mu.Lock()
	res := t.last
	nm := t.lastNM
	t.mu.Unlock()
	if len(res.U) == 0 {
		return nil, errors.New("no Fresnel result yet")
	}

	r, g, b := wavelengthRGB(nm)
	return newProfilePlot("Single slit intensity", "u (normalized)", "I / I(0)",
		[]profileSeries{
			{
				Name:  "Fresnel",
				X:     res.U,
				Y:     res.Intensity,
				Color: color.NRGBA{R: uint8(255 * r), G: uint8(255 * g), B: uint8(255 * b), A: 255},
			},
			{
				Name:  "Fraunhofer sinc²",
				X:     res.U,
				Y:     res.Reference,
				Color: color.NRGBA{R: 130, G: 130, B: 130, A: 255},
				Dash:  []vg.Length{vg.Points(4), vg.Points(3)},
			},
		})
}
