// Package export renders stored runs into shareable artifacts: plot
// figures via gonum/plot and lightweight SVG path drawings.
package export

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/unitrack/internal/rover"
)

// PathPlot renders the reference path and the driven path on one x/y
// figure. The output format follows the file extension (.png, .svg, .pdf).
func PathPlot(path string, ref, driven []rover.Pose) error {
	p := plot.New()
	p.Title.Text = "Tracked path"
	p.X.Label.Text = "x [m]"
	p.Y.Label.Text = "y [m]"
	p.Add(plotter.NewGrid())

	refLine, err := plotter.NewLine(posesXY(ref))
	if err != nil {
		return err
	}
	refLine.Color = plotutil.Color(0)
	refLine.Dashes = plotutil.Dashes(1)

	drivenLine, err := plotter.NewLine(posesXY(driven))
	if err != nil {
		return err
	}
	drivenLine.Color = plotutil.Color(1)

	p.Add(refLine, drivenLine)
	p.Legend.Add("reference", refLine)
	p.Legend.Add("driven", drivenLine)
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}

// ErrorPlot renders the tracking error components against time.
func ErrorPlot(path string, times []float64, errs []rover.TrackingError) error {
	if len(times) != len(errs) {
		return fmt.Errorf("times and errors differ in length: %d vs %d", len(times), len(errs))
	}

	p := plot.New()
	p.Title.Text = "Tracking error"
	p.X.Label.Text = "t [s]"
	p.Y.Label.Text = "error [m, rad]"
	p.Add(plotter.NewGrid())

	series := []struct {
		name string
		val  func(rover.TrackingError) float64
	}{
		{"e_x", func(e rover.TrackingError) float64 { return e.X }},
		{"e_y", func(e rover.TrackingError) float64 { return e.Y }},
		{"e_theta", func(e rover.TrackingError) float64 { return e.Heading }},
	}

	for i, s := range series {
		xys := make(plotter.XYs, len(errs))
		for j, e := range errs {
			xys[j].X = times[j]
			xys[j].Y = s.val(e)
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}

	p.Legend.Top = true
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

func posesXY(poses []rover.Pose) plotter.XYs {
	xys := make(plotter.XYs, len(poses))
	for i, p := range poses {
		xys[i].X = p.X
		xys[i].Y = p.Y
	}
	return xys
}
