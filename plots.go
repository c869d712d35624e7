package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// profileSeries is one curve on a line plot.
type profileSeries struct {
	Name  string
	X, Y  []float64
	Color color.Color
	Dash  []vg.Length // nil for a solid line
}

// newProfilePlot builds a styled line plot from the given series.
func newProfilePlot(title, xLabel, yLabel string, series []profileSeries) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	for _, s := range series {
		if len(s.X) != len(s.Y) {
			return nil, fmt.Errorf("series %q: %d x values vs %d y values",
				s.Name, len(s.X), len(s.Y))
		}
		pts := make(plotter.XYs, len(s.X))
		for i := range s.X {
			pts[i].X = s.X[i]
			pts[i].Y = s.Y[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
		line.Color = s.Color
		line.Dashes = s.Dash
		p.Add(line)
		if s.Name != "" {
			p.Legend.Add(s.Name, line)
		}
	}
	p.Legend.Top = true
	return p, nil
}

// renderProfileImage draws the plot into an in-memory image for display
// inside a canvas widget.
func renderProfileImage(p *plot.Plot, w, h vg.Length) image.Image {
	c := vgimg.New(w, h)
	p.Draw(draw.New(c))
	return c.Image()
}

// writeProfilePNG encodes the plot as PNG onto the writer.
func writeProfilePNG(p *plot.Plot, w, h vg.Length, out io.Writer) error {
	writer, err := p.WriterTo(w, h, "png")
	if err != nil {
		return fmt.Errorf("render profile: %w", err)
	}
	if _, err := writer.WriteTo(out); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// heatmapImage renders a 2D field to an image, sampling nearest-neighbor
// and coloring each sample with the supplied colormap over the field's
// own [min(0,·), max] range.
func heatmapImage(field [][]float64, w, h int, cmap func(float64) color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rows := len(field)
	if rows == 0 || len(field[0]) == 0 {
		drawPlaceholder(img, color.NRGBA{R: 20, G: 20, B: 40, A: 255})
		return img
	}
	cols := len(field[0])

	lo, hi := fieldRange(field)
	span := hi - lo
	if span <= 0 {
		span = 1
	}

	for y := 0; y < h; y++ {
		// Row 0 of the field is the smallest y coordinate; images grow
		// downward, so flip vertically.
		r := (h - 1 - y) * rows / h
		for x := 0; x < w; x++ {
			c := x * cols / w
			v := field[r][c]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				img.Set(x, y, color.NRGBA{R: 255, G: 0, B: 255, A: 255})
				continue
			}
			img.Set(x, y, cmap((v-lo)/span))
		}
	}
	return img
}

// fieldRange returns the finite minimum and maximum of a field.
func fieldRange(field [][]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range field {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if lo > hi {
		return 0, 1
	}
	return lo, hi
}

// writeHeatmapPNG encodes a field as a PNG heatmap onto the writer.
func writeHeatmapPNG(field [][]float64, size int, cmap func(float64) color.Color, out io.Writer) error {
	img := heatmapImage(field, size, size, cmap)
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encode heatmap: %w", err)
	}
	return nil
}
