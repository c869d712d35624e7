package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// AppUI ties the three simulator tabs to the compute workers. Widgets
// are owned by the GUI goroutine; workers communicate through the
// request/result channels only.
type AppUI struct {
	App     fyne.App
	Window  fyne.Window
	workers *workers

	fft      *fftTab
	analytic *analyticTab
	fresnel  *fresnelTab

	// The main container holding the final UI content.
	Container fyne.CanvasObject
}

// setupMainUI builds the tabbed simulator layout and starts the GUI
// update loops that consume worker results.
func setupMainUI(a fyne.App, mainWindow fyne.Window, w *workers) *AppUI {
	log.Println("Setting up main UI content...")

	ui := &AppUI{
		App:     a,
		Window:  mainWindow,
		workers: w,
	}

	ui.fft = newFFTTab(ui)
	ui.analytic = newAnalyticTab(ui)
	ui.fresnel = newFresnelTab(ui)

	tabs := container.NewAppTabs(
		container.NewTabItem("FFT Simulator", ui.fft.content),
		container.NewTabItem("Analytic Fraunhofer", ui.analytic.content),
		container.NewTabItem("Fresnel Single Slit", ui.fresnel.content),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	ui.Container = tabs

	go ui.fft.updateLoop()
	go ui.analytic.updateLoop()
	go ui.fresnel.updateLoop()
	log.Println("GUI update loops started.")

	// Seed every tab with its defaults so something is on screen
	// before the first interaction.
	ui.fft.recompute()
	ui.analytic.recompute()
	ui.fresnel.recompute()

	log.Println("Main UI content setup finished.")
	return ui
}

// showError surfaces a compute or validation error without tearing the
// window down.
func (ui *AppUI) showError(err error) {
	log.Printf("Error: %v", err)
	if ui.Window != nil {
		dialog.ShowError(err, ui.Window)
	}
}

// labeledSlider couples a slider with a caption and a live value label,
// the control idiom used on every tab.
type labeledSlider struct {
	slider *widget.Slider
	name   *widget.Label
	label  *widget.Label
	row    fyne.CanvasObject
	format string
}

// newLabeledSlider builds a slider row "name [====] value". onChanged
// fires after the label refresh.
func newLabeledSlider(name, format string, min, max, step, value float64, onChanged func(float64)) *labeledSlider {
	ls := &labeledSlider{
		slider: widget.NewSlider(min, max),
		name:   widget.NewLabel(name),
		label:  widget.NewLabel(fmt.Sprintf(format, value)),
		format: format,
	}
	ls.slider.Step = step
	ls.slider.Value = value
	ls.slider.OnChanged = func(v float64) {
		ls.label.SetText(fmt.Sprintf(ls.format, v))
		if onChanged != nil {
			onChanged(v)
		}
	}
	ls.row = container.NewBorder(nil, nil, ls.name, ls.label, ls.slider)
	return ls
}

// value returns the current slider position.
func (ls *labeledSlider) value() float64 { return ls.slider.Value }

// setRange retargets the slider bounds and value without firing
// OnChanged storms: the label is refreshed directly.
func (ls *labeledSlider) setRange(min, max, step, value float64) {
	ls.slider.Min = min
	ls.slider.Max = max
	ls.slider.Step = step
	ls.slider.Value = value
	ls.slider.Refresh()
	ls.label.SetText(fmt.Sprintf(ls.format, value))
}

// setName swaps the caption in front of the slider.
func (ls *labeledSlider) setName(name string) {
	ls.name.SetText(name)
}

func (ls *labeledSlider) show() { ls.row.Show() }
func (ls *labeledSlider) hide() { ls.row.Hide() }

// savePNGButton returns an export button that opens a save dialog and
// hands the chosen writer to write.
func (ui *AppUI) savePNGButton(caption string, write func(fyne.URIWriteCloser) error) *widget.Button {
	return widget.NewButton(caption, func() {
		dialog.ShowFileSave(func(out fyne.URIWriteCloser, err error) {
			if err != nil {
				ui.showError(err)
				return
			}
			if out == nil {
				return // cancelled
			}
			defer out.Close()
			if err := write(out); err != nil {
				ui.showError(err)
				return
			}
			log.Printf("Saved %s to %s", caption, out.URI())
		}, ui.Window)
	})
}
