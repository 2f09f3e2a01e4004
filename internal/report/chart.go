package report

import (
	"errors"  // Sentinel errors
	"io"      // Output
	"strconv" // Bar labels

	"github.com/wcharczuk/go-chart/v2" // Chart rendering
)

// ErrNoData is returned when there is nothing to draw or print
var ErrNoData = errors.New("no data to render")

// Chart canvas size in pixels
const (
	chartHeight   = 400
	minChartWidth = 640
	perBarWidth   = 110
)

// RenderMetricChart writes a PNG bar chart of points, one bar per year
func RenderMetricChart(w io.Writer, m Metric, points []Point) error {
	if len(points) == 0 {
		return ErrNoData
	}
	bars := make([]chart.Value, len(points))
	lo, hi := 0.0, 0.0
	for i, p := range points {
		bars[i] = chart.Value{Label: strconv.Itoa(p.Year), Value: p.Value}
		lo = min(lo, p.Value)
		hi = max(hi, p.Value)
	}
	if hi == lo {
		hi = lo + 1 // go-chart needs a non-empty range
	}
	width := max(minChartWidth, perBarWidth*len(points))
	graph := chart.BarChart{
		Title:      m.Label + " (" + m.Unit + ")",
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      width,
		Height:     chartHeight,
		BarWidth:   60,
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: lo, Max: hi * 1.1}},
		Bars:       bars,
	}
	return graph.Render(chart.PNG, w)
}
