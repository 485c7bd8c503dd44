// Package chart adapts go-chart to the dashboard: callers describe data,
// series colors and formatter callbacks, and get back inline SVG plus the
// legend and tooltip text that accompany it.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"sync"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	ErrNoData         = errors.New("chart: no data")
	ErrSeriesMismatch = errors.New("chart: group values do not match series")
)

// go-chart caches its default font in an unguarded package variable and
// rendering is not safe for concurrent use, so renders are serialized.
var (
	renderMu    sync.Mutex
	defaultFont = sync.OnceValues(gochart.GetDefaultFont)
)

// Formatter turns a plotted value into display text.
type Formatter func(float64) string

// LabelFormatter turns a labelled value into display text.
type LabelFormatter func(label string, value float64) string

// Series is one colored data series of a bar chart, keyed by name.
type Series struct {
	Key   string
	Color string
}

// BarGroup holds one category and its value for each series, in series order.
type BarGroup struct {
	Label  string
	Values []float64
}

type BarSpec struct {
	Width  int
	Height int
	Series []Series
	Groups []BarGroup

	AxisFormatter Formatter
	Tooltip       Formatter
}

// Slice is one wedge of a pie chart.
type Slice struct {
	Label string
	Value float64
	Color string
}

type PieSpec struct {
	Width  int
	Height int
	Slices []Slice

	SliceLabel LabelFormatter
	Tooltip    LabelFormatter
}

// LegendItem is a swatch shown next to a chart.
type LegendItem struct {
	Label   string
	Color   string
	Tooltip string
}

// Datum carries the tooltip text for one plotted value.
type Datum struct {
	Group   string
	Series  string
	Color   string
	Tooltip string
}

// Figure is a rendered chart.
type Figure struct {
	SVG    template.HTML
	Legend []LegendItem
	Data   []Datum
}

const (
	defaultBarWidth   = 64
	defaultBarSpacing = 28
)

// Bars renders a grouped bar chart. Each group becomes adjacent bars, one
// per series, filled with the series color.
func Bars(spec BarSpec) (Figure, error) {
	if len(spec.Groups) == 0 || len(spec.Series) == 0 {
		return Figure{}, ErrNoData
	}
	if spec.Width == 0 {
		spec.Width = 640
	}
	if spec.Height == 0 {
		spec.Height = 300
	}
	tooltip := spec.Tooltip
	if tooltip == nil {
		tooltip = func(v float64) string { return fmt.Sprintf("%g", v) }
	}

	var (
		bars []gochart.Value
		data []Datum
		peak float64
	)
	for _, g := range spec.Groups {
		if len(g.Values) != len(spec.Series) {
			return Figure{}, fmt.Errorf("%w: %q has %d values for %d series", ErrSeriesMismatch, g.Label, len(g.Values), len(spec.Series))
		}
		for i, s := range spec.Series {
			v := g.Values[i]
			if v > peak {
				peak = v
			}
			color := hexColor(s.Color)
			bars = append(bars, gochart.Value{
				Label: g.Label + " " + s.Key,
				Value: v,
				Style: gochart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
			})
			data = append(data, Datum{
				Group:   g.Label,
				Series:  s.Key,
				Color:   s.Color,
				Tooltip: g.Label + " " + s.Key + ": " + tooltip(v),
			})
		}
	}
	if peak <= 0 {
		peak = 1
	}

	bc := gochart.BarChart{
		Width:      spec.Width,
		Height:     spec.Height,
		BarWidth:   defaultBarWidth,
		BarSpacing: defaultBarSpacing,
		Background: gochart.Style{Padding: gochart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: peak * 1.1},
		},
		Bars: bars,
	}
	if spec.AxisFormatter != nil {
		format := spec.AxisFormatter
		bc.YAxis.ValueFormatter = func(v interface{}) string {
			if f, ok := v.(float64); ok {
				return format(f)
			}
			return fmt.Sprintf("%v", v)
		}
	}

	font, err := defaultFont()
	if err != nil {
		return Figure{}, fmt.Errorf("load font: %w", err)
	}
	bc.Font = font

	var buf bytes.Buffer
	renderMu.Lock()
	err = bc.Render(gochart.SVG, &buf)
	renderMu.Unlock()
	if err != nil {
		return Figure{}, fmt.Errorf("render bar chart: %w", err)
	}

	legend := make([]LegendItem, 0, len(spec.Series))
	for _, s := range spec.Series {
		legend = append(legend, LegendItem{Label: s.Key, Color: s.Color})
	}
	return Figure{SVG: template.HTML(buf.String()), Legend: legend, Data: data}, nil
}

// Pie renders a pie chart with one fixed color per slice. Tooltip text is
// produced by spec.Tooltip and attached to the legend.
func Pie(spec PieSpec) (Figure, error) {
	var total float64
	for _, s := range spec.Slices {
		total += s.Value
	}
	if len(spec.Slices) == 0 || total <= 0 {
		return Figure{}, ErrNoData
	}
	if spec.Width == 0 {
		spec.Width = 420
	}
	if spec.Height == 0 {
		spec.Height = 420
	}
	label := spec.SliceLabel
	if label == nil {
		label = func(l string, _ float64) string { return l }
	}
	tooltip := spec.Tooltip
	if tooltip == nil {
		tooltip = label
	}

	values := make([]gochart.Value, 0, len(spec.Slices))
	legend := make([]LegendItem, 0, len(spec.Slices))
	for _, s := range spec.Slices {
		color := hexColor(s.Color)
		values = append(values, gochart.Value{
			Label: label(s.Label, s.Value),
			Value: s.Value,
			Style: gochart.Style{FillColor: color, StrokeColor: drawing.ColorWhite, StrokeWidth: 2, FontColor: drawing.ColorWhite},
		})
		legend = append(legend, LegendItem{
			Label:   s.Label,
			Color:   s.Color,
			Tooltip: tooltip(s.Label, s.Value),
		})
	}

	pc := gochart.PieChart{
		Width:  spec.Width,
		Height: spec.Height,
		Values: values,
	}
	font, err := defaultFont()
	if err != nil {
		return Figure{}, fmt.Errorf("load font: %w", err)
	}
	pc.Font = font

	var buf bytes.Buffer
	renderMu.Lock()
	err = pc.Render(gochart.SVG, &buf)
	renderMu.Unlock()
	if err != nil {
		return Figure{}, fmt.Errorf("render pie chart: %w", err)
	}
	return Figure{SVG: template.HTML(buf.String()), Legend: legend}, nil
}

// hexColor parses "#rrggbb" (or "rrggbb") into a drawing color.
func hexColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 && len(hex) != 3 {
		return drawing.ColorBlack
	}
	return drawing.ColorFromHex(hex)
}
