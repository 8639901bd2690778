package main

import (
	"image"
	"time"

	"github.com/thelolagemann/dmgcore/pkg/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// plotFrameTimes draws the time taken by each frame in milliseconds
// and saves it to filename.
func plotFrameTimes(filename, title string, times []time.Duration) error {
	frameTimePlot := plot.New()
	frameTimePlot.Title.Text = "Frame Time | " + title
	frameTimePlot.X.Label.Text = "frame"
	frameTimePlot.Y.Label.Text = "ms"

	points := make(plotter.XYs, len(times))
	for i, t := range times {
		points[i].X = float64(i)
		points[i].Y = float64(t) / float64(time.Millisecond)
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return err
	}
	frameTimePlot.Add(line, plotter.NewGrid())

	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	c := vgimg.NewWith(vgimg.UseImage(img))
	frameTimePlot.Draw(draw.New(c))

	return utils.SaveImage(filename, c.Image())
}
