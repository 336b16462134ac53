// Package chart renders aggregated gas-exchange summaries as a
// scatter-line-errorbar chart with gonum/plot. The metric and error-bar
// dispatch is a lookup table (spec.go); every combination shares one
// rendering path.
package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"licorplot/pkg/domain"
)

// Config carries everything the renderer needs besides the data.
type Config struct {
	Metric       domain.Metric
	ErrorBars    domain.ErrorKind
	Groups       []string  // legend and color order
	LegendTitle  string
	LegendLabels []string  // defaults to Groups when empty
	Timestamps   []float64 // vertical dotted reference lines
	YLimits      *domain.YLimits
	Palette      string
}

// xLabel is shared by all metric families; the x axis is always the
// observation index.
const xLabel = "Observation"

// seriesData is one group's points plus symmetric error magnitudes, in
// the shape the plotter error-bar type wants.
type seriesData struct {
	plotter.XYs
	errs []float64
}

func (d seriesData) YError(i int) (float64, float64) { return d.errs[i], d.errs[i] }

// Render produces the chart for one metric/error-kind combination.
// Unknown metric, error kind, or palette names fail with an error rather
// than silently rendering nothing. Groups that contributed no rows are
// skipped, so an empty summary set still yields a (blank) plot.
func Render(sums []domain.Summary, cfg Config) (*plot.Plot, error) {
	spec, err := specFor(cfg.Metric, cfg.ErrorBars)
	if err != nil {
		return nil, err
	}
	colors, err := Palette(cfg.Palette)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.X.Label.Text = xLabel
	p.Y.Label.Text = spec.label
	p.Add(plotter.NewGrid())

	labels := cfg.LegendLabels
	if len(labels) == 0 {
		labels = cfg.Groups
	}
	if cfg.LegendTitle != "" {
		p.Legend.Add(cfg.LegendTitle, legendHeader{})
	}
	p.Legend.Top = true

	for i, group := range cfg.Groups {
		data := groupSeries(sums, group, spec, cfg.ErrorBars)
		if data.Len() == 0 {
			continue
		}
		c := colors[i%len(colors)]

		line, err := plotter.NewLine(data.XYs)
		if err != nil {
			return nil, err
		}
		line.Color = c
		line.Width = vg.Points(1.5)

		scatter, err := plotter.NewScatter(data.XYs)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Color = c
		scatter.GlyphStyle.Radius = vg.Points(3)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}

		bars, err := plotter.NewYErrorBars(data)
		if err != nil {
			return nil, err
		}
		bars.LineStyle.Color = c
		bars.CapWidth = vg.Points(4)

		p.Add(line, scatter, bars)
		p.Legend.Add(labels[i], scatter)
	}

	yMin, yMax := yExtent(sums, cfg, spec)
	switch {
	case spec.percent:
		// Fixed 0-100% scale; caller limits do not apply here.
		p.Y.Min, p.Y.Max = 0, 1.05
		p.Y.Tick.Marker = percentTicks{}
	case cfg.YLimits != nil:
		p.Y.Min, p.Y.Max = cfg.YLimits.Min, cfg.YLimits.Max
	}

	for _, t := range cfg.Timestamps {
		vline, err := plotter.NewLine(plotter.XYs{{X: t, Y: yMin}, {X: t, Y: yMax}})
		if err != nil {
			return nil, err
		}
		vline.Color = color.RGBA{R: 100, G: 100, B: 100, A: 255}
		vline.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(vline)
	}

	return p, nil
}

// groupSeries collects one group's cells in their aggregated (ascending
// observation) order. NaN spread from single-replicate cells becomes a
// zero-length bar so axis autoscaling stays finite.
func groupSeries(sums []domain.Summary, group string, spec axisSpec, kind domain.ErrorKind) seriesData {
	var data seriesData
	for _, s := range sums {
		if s.Group != group {
			continue
		}
		st := spec.stat(s)
		e := kind.Pick(st)
		if math.IsNaN(e) || math.IsInf(e, 0) {
			e = 0
		}
		data.XYs = append(data.XYs, plotter.XY{X: s.Obs, Y: st.Mean})
		data.errs = append(data.errs, e)
	}
	return data
}

// yExtent is the vertical span the reference lines are drawn over.
func yExtent(sums []domain.Summary, cfg Config, spec axisSpec) (float64, float64) {
	if spec.percent {
		return 0, 1.05
	}
	if cfg.YLimits != nil {
		return cfg.YLimits.Min, cfg.YLimits.Max
	}
	min, max := math.Inf(1), math.Inf(-1)
	for _, group := range cfg.Groups {
		data := groupSeries(sums, group, spec, cfg.ErrorBars)
		for i, xy := range data.XYs {
			if lo := xy.Y - data.errs[i]; lo < min {
				min = lo
			}
			if hi := xy.Y + data.errs[i]; hi > max {
				max = hi
			}
		}
	}
	if min > max { // no data at all
		return 0, 1
	}
	return min, max
}

// legendHeader renders a legend entry with no thumbnail, used for the
// legend title line.
type legendHeader struct{}

func (legendHeader) Thumbnail(*draw.Canvas) {}

// percentTicks labels the fixed relative-conductance scale in quarters
// from 0% to 100%.
type percentTicks struct{}

func (percentTicks) Ticks(min, max float64) []plot.Tick {
	ticks := []plot.Tick{
		{Value: 0, Label: "0%"},
		{Value: 0.25, Label: "25%"},
		{Value: 0.5, Label: "50%"},
		{Value: 0.75, Label: "75%"},
		{Value: 1, Label: "100%"},
	}
	var in []plot.Tick
	for _, t := range ticks {
		if t.Value >= min && t.Value <= max {
			in = append(in, t)
		}
	}
	return in
}
