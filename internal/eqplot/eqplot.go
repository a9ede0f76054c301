package eqplot

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"gotost/domain/tost"
	"gotost/internal/errors"
)

// Save renders the standard equivalence picture for a TOST result: the
// point estimate with its (1 - 2*alpha) interval drawn against the shaded
// equivalence region. The output format follows the file extension
// (.svg, .png, .pdf).
func Save(res *tost.TOSTResult, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "difference"
	p.Y.Min, p.Y.Max = -1, 1
	p.Y.Tick.Marker = plot.ConstantTicks(nil)

	region, err := plotter.NewPolygon(plotter.XYs{
		{X: res.Bounds.Lower, Y: -1},
		{X: res.Bounds.Upper, Y: -1},
		{X: res.Bounds.Upper, Y: 1},
		{X: res.Bounds.Lower, Y: 1},
	})
	if err != nil {
		return errors.Wrap(err, "building equivalence region")
	}
	region.Color = color.RGBA{R: 120, G: 180, B: 120, A: 60}
	region.LineStyle.Color = color.RGBA{R: 80, G: 140, B: 80, A: 255}
	p.Add(region)

	ci, err := plotter.NewLine(plotter.XYs{
		{X: res.CI.Lower, Y: 0},
		{X: res.CI.Upper, Y: 0},
	})
	if err != nil {
		return errors.Wrap(err, "building interval line")
	}
	ci.LineStyle.Width = vg.Points(2)
	p.Add(ci)

	pt, err := plotter.NewScatter(plotter.XYs{{X: res.Diff, Y: 0}})
	if err != nil {
		return errors.Wrap(err, "building point estimate")
	}
	pt.GlyphStyle.Radius = vg.Points(4)
	p.Add(pt)

	// Keep the full picture in frame even when the interval escapes the region
	xMin := math.Min(res.Bounds.Lower, res.CI.Lower)
	xMax := math.Max(res.Bounds.Upper, res.CI.Upper)
	pad := 0.1 * (xMax - xMin)
	p.X.Min, p.X.Max = xMin-pad, xMax+pad

	if err := p.Save(6*vg.Inch, 2.5*vg.Inch, path); err != nil {
		return errors.Wrap(err, "saving equivalence plot")
	}
	return nil
}
