package main

import (
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

func main() {
	log.Println("Starting diffraction explorer...")

	myApp := app.New()
	window := myApp.NewWindow("Diffraction Explorer")

	w := newWorkers()
	log.Println("Compute workers started.")

	ui := setupMainUI(myApp, window, w)

	window.SetContent(ui.Container)
	window.Resize(fyne.NewSize(1000, 760))
	window.CenterOnScreen()

	window.SetOnClosed(func() {
		log.Println("Main window closed by user.")
		done := make(chan struct{})
		go func() {
			w.stop()
			close(done)
		}()
		select {
		case <-done:
			log.Println("Workers finished cleanly.")
		case <-time.After(2 * time.Second):
			log.Println("Warning: timeout waiting for workers.")
		}
		log.Println("Exiting application.")
	})

	window.Show()
	log.Println("Starting main event loop...")
	myApp.Run()
	log.Println("Application finished.")
}
