// Package charts renders the category report as an image.
package charts

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"expensetracker/internal/core"
)

// ErrNoData is returned when the report has no lines to draw.
var ErrNoData = errors.New("no data available")

const (
	defaultWidth  = 800
	defaultHeight = 480
	maxBarWidth   = 60
)

var palette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorOrange,
	chart.ColorCyan,
	chart.ColorYellow,
	chart.ColorLightGray,
}

// RenderCategoryBars draws one bar per report line, in report order, and
// returns the PNG bytes.
func RenderCategoryBars(report core.Report, width, height int, symbol string) ([]byte, error) {
	if report.Empty() {
		return nil, ErrNoData
	}
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	bars := make([]chart.Value, 0, len(report.Lines))
	peak := 0.0
	for i, line := range report.Lines {
		v := line.Subtotal.Float()
		if v > peak {
			peak = v
		}
		color := palette[i%len(palette)]
		bars = append(bars, chart.Value{
			Label: line.Category,
			Value: v,
			Style: chart.Style{
				StrokeColor: color,
				FillColor:   color,
			},
		})
	}
	if peak == 0 {
		peak = 1
	}

	barWidth := width / (len(bars) * 2)
	if barWidth > maxBarWidth {
		barWidth = maxBarWidth
	}

	graph := chart.BarChart{
		Title: fmt.Sprintf("Expenses by category (total %s)", report.Total.Format(symbol)),
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		Width:    width,
		Height:   height,
		BarWidth: barWidth,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: peak * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
			Style: chart.Style{
				FontSize:  10,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category chart: %w", err)
	}
	return buffer.Bytes(), nil
}
