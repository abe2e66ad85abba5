// Package charts draws dashboard chart specs as PNG images.
package charts

import (
	"errors"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/chrissnell/bikedash/internal/dashboard"
)

// Default image size
const (
	DefaultWidth  = 1024
	DefaultHeight = 512
)

var seriesColors = []drawing.Color{
	drawing.ColorFromHex("87CEEB"), // casual, and single-series charts
	drawing.ColorFromHex("008080"), // registered
	drawing.ColorFromHex("F59E0B"),
	drawing.ColorFromHex("EF4444"),
}

// Options controls the rendered image
type Options struct {
	Width  int
	Height int
}

// RenderPNG draws spec as a bar chart and writes the PNG to w.
// A chart with more than one series is drawn with each category's bars side by side.
func RenderPNG(w io.Writer, spec *dashboard.ChartSpec, opts Options) error {
	if spec == nil || len(spec.Series) == 0 {
		return errors.New("chart has no series")
	}
	if len(spec.Series[0].Bars) == 0 {
		return errors.New("chart has no bars")
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	if err := renderBars(w, spec, opts); err != nil {
		return fmt.Errorf("error rendering chart %s: %w", spec.Name, err)
	}
	return nil
}

func renderBars(w io.Writer, spec *dashboard.ChartSpec, opts Options) error {
	values := barValues(spec)

	maxValue := 0.0
	for _, v := range values {
		if v.Value > maxValue {
			maxValue = v.Value
		}
	}
	// An all-zero chart (empty filter) still needs a non-empty axis range
	if maxValue <= 0 {
		maxValue = 1
	}

	barWidth, barSpacing := barGeometry(opts.Width, len(values))

	graph := chart.BarChart{
		Title:      spec.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      chart.Style{FontSize: 9},
		YAxis: chart.YAxis{
			Name:           spec.YLabel,
			Range:          &chart.ContinuousRange{Min: 0, Max: maxValue * 1.1},
			ValueFormatter: formatCount,
		},
		Bars: values,
	}
	return graph.Render(chart.PNG, w)
}

// barGeometry splits the plot width into one slot per bar, two thirds bar and one third gap
func barGeometry(width, n int) (barWidth, barSpacing int) {
	if n < 1 {
		n = 1
	}
	slot := (width - 120) / n
	barWidth = slot * 2 / 3
	if barWidth < 4 {
		barWidth = 4
	}
	barSpacing = slot - barWidth
	if barSpacing < 2 {
		barSpacing = 2
	}
	return barWidth, barSpacing
}

func formatCount(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}

// barValues flattens the series of a spec into chart values, interleaving series per category
func barValues(spec *dashboard.ChartSpec) []chart.Value {
	if len(spec.Series) == 1 {
		values := make([]chart.Value, 0, len(spec.Series[0].Bars))
		for _, b := range spec.Series[0].Bars {
			values = append(values, chart.Value{
				Label: b.Label,
				Value: b.Value,
				Style: barStyle(0),
			})
		}
		return values
	}

	var values []chart.Value
	for i := range spec.Series[0].Bars {
		for s, series := range spec.Series {
			if i >= len(series.Bars) {
				continue
			}
			b := series.Bars[i]
			values = append(values, chart.Value{
				Label: fmt.Sprintf("%s (%s)", b.Label, series.Name),
				Value: b.Value,
				Style: barStyle(s),
			})
		}
	}
	return values
}

func barStyle(series int) chart.Style {
	c := seriesColors[series%len(seriesColors)]
	return chart.Style{
		FillColor:   c,
		StrokeColor: drawing.ColorBlack,
		StrokeWidth: 0.5,
	}
}
