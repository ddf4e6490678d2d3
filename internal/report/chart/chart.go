// Package chart renders the report's raster charts as PNG bytes.
//
// Rendering is deterministic for identical series: no randomness and no
// wall-clock dependent layout. Styling targets print: high-contrast
// palette and legends that embed the numeric values, so the charts stay
// readable on monochrome court filings.
package chart

import (
	"errors"
	"fmt"

	"github.com/go-analyze/charts"
)

// Kind identifies one of the four chart slots in the report.
type Kind string

const (
	KindPie   Kind = "pie"
	KindLine  Kind = "line"
	KindBar   Kind = "bar"
	KindTrend Kind = "trend"
)

// Print resolution for embedded raster charts.
const (
	chartWidth  = 1200
	chartHeight = 780
)

// Aspect is the height/width ratio of every rendered chart. Layout
// code placing the PNGs derives box heights from it so the placed
// ratio always matches the rendered one.
func Aspect() float64 {
	return float64(chartHeight) / float64(chartWidth)
}

var ErrEmptySeries = errors.New("no data points to chart")

// Slice is one pie slice. Legend carries the category name with its
// formatted amount and percentage embedded.
type Slice struct {
	Value  float64
	Legend string
}

// Pie renders one slice per category.
func Pie(title string, slices []Slice) ([]byte, error) {
	if len(slices) == 0 {
		return nil, ErrEmptySeries
	}

	values := make([]float64, len(slices))
	legends := make([]string, len(slices))

	for i, s := range slices {
		values[i] = s.Value
		legends[i] = s.Legend
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.LegendLabelsOptionFunc(legends),
		charts.DimensionsOptionFunc(chartWidth, chartHeight),
		charts.ThemeOptionFunc(charts.GetTheme(charts.ThemeLight)),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering pie chart: %w", err)
	}

	return p.Bytes()
}

// CumulativeLine renders the running total ordered by expense date,
// with the x axis labeled by month.
func CumulativeLine(title string, labels []string, values []float64) ([]byte, error) {
	if len(values) == 0 {
		return nil, ErrEmptySeries
	}

	p, err := charts.LineRender(
		[][]float64{values},
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc([]string{"Total acumulado (R$)"}),
		charts.DimensionsOptionFunc(chartWidth, chartHeight),
		charts.ThemeOptionFunc(charts.GetTheme(charts.ThemeLight)),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering cumulative line chart: %w", err)
	}

	return p.Bytes()
}

// MonthlyBar renders one bar per calendar month, chronological order.
func MonthlyBar(title string, labels []string, values []float64) ([]byte, error) {
	if len(values) == 0 {
		return nil, ErrEmptySeries
	}

	p, err := charts.BarRender(
		[][]float64{values},
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc([]string{"Total mensal (R$)"}),
		charts.DimensionsOptionFunc(chartWidth, chartHeight),
		charts.ThemeOptionFunc(charts.GetTheme(charts.ThemeLight)),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering monthly bar chart: %w", err)
	}

	return p.Bytes()
}

// Trend overlays the raw monthly totals with their trailing 3-point
// moving average.
func Trend(title string, labels []string, raw, average []float64) ([]byte, error) {
	if len(raw) == 0 {
		return nil, ErrEmptySeries
	}

	if len(raw) != len(average) {
		return nil, fmt.Errorf("series length mismatch: %d raw vs %d average", len(raw), len(average))
	}

	p, err := charts.LineRender(
		[][]float64{raw, average},
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc([]string{"Total mensal (R$)", "Média móvel (3 meses)"}),
		charts.DimensionsOptionFunc(chartWidth, chartHeight),
		charts.ThemeOptionFunc(charts.GetTheme(charts.ThemeLight)),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering trend chart: %w", err)
	}

	return p.Bytes()
}
