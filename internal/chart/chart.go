package chart

import (
	"bytes"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Render рисует график функции по сэмплам (xs, ys) и вертикальные маркеры
// границ найденного интервала, возвращает PNG.
func Render(title string, xs, ys, marks []float64) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "f(x)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, 0, len(xs))
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for i := range xs {
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
		ymin = math.Min(ymin, ys[i])
		ymax = math.Max(ymax, ys[i])
	}
	if len(pts) == 0 {
		ymin, ymax = 0, 1
	}

	if err := plotutil.AddLines(p, "f(x)", pts); err != nil {
		return nil, err
	}

	for i, m := range marks {
		v := plotter.XYs{{X: m, Y: ymin}, {X: m, Y: ymax}}
		l, err := plotter.NewLine(v)
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = plotutil.Color(i + 1)
		l.LineStyle.Dashes = plotutil.Dashes(1)
		p.Add(l)
	}

	w, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
