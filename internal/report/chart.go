package report

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/njchilds90/airy"
)

var errFewPoints = errors.New("chart needs at least two samples")

func series(pts []airy.StressPoint) (rr, tt []float64) {
	rr = make([]float64, len(pts))
	tt = make([]float64, len(pts))
	for i, p := range pts {
		rr[i] = p.RR
		tt[i] = p.TT
	}
	return rr, tt
}

// ASCIIChart plots σrr and σθθ across the wall.
func ASCIIChart(pts []airy.StressPoint) (string, error) {
	if len(pts) < 2 {
		return "", errFewPoints
	}
	rr, tt := series(pts)
	caption := fmt.Sprintf("σrr (red) and σθθ (blue), r from %.3g to %.3g", pts[0].R, pts[len(pts)-1].R)
	return asciigraph.PlotMany([][]float64{rr, tt},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption(caption),
	), nil
}

// SavePNG writes a line chart of σrr, σθθ and von Mises against r.
func SavePNG(path string, pts []airy.StressPoint) error {
	if len(pts) < 2 {
		return errFewPoints
	}
	p := plot.New()
	p.Title.Text = "Thick-walled cylinder stresses"
	p.X.Label.Text = "r"
	p.Y.Label.Text = "stress"
	p.Add(plotter.NewGrid())

	curves := []struct {
		name  string
		pick  func(airy.StressPoint) float64
		color color.RGBA
	}{
		{"σrr", func(s airy.StressPoint) float64 { return s.RR }, color.RGBA{R: 200, A: 255}},
		{"σθθ", func(s airy.StressPoint) float64 { return s.TT }, color.RGBA{B: 200, A: 255}},
		{"von Mises", func(s airy.StressPoint) float64 { return s.VonMises }, color.RGBA{G: 140, A: 255}},
	}
	for _, c := range curves {
		xys := make(plotter.XYs, len(pts))
		for i, s := range pts {
			xys[i].X = s.R
			xys[i].Y = c.pick(s)
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = c.color
		p.Add(line)
		p.Legend.Add(c.name, line)
	}
	p.Legend.Top = true
	return savePlotPNG(p, 6, 4, path)
}

func savePlotPNG(p *plot.Plot, widthIn, heightIn float64, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(150),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return bw.Flush()
}
