package render

import (
	"bytes"
	"context"
	"fmt"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/wealthpulse/wealthpulse/internal/domain"
)

// Renderer draws the unified series as a PNG line chart.
// It implements domain.ChartRenderer.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer creates a new chart renderer with default dimensions
func NewRenderer() *Renderer {
	return &Renderer{Width: 1024, Height: 512}
}

// RenderSeries renders one line per present side of the unified series:
// crypto total, finance total, and the combined total where both exist.
func (r *Renderer) RenderSeries(ctx context.Context, points []domain.UnifiedPoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("cannot render an empty series")
	}

	var cryptoXs, financeXs, combinedXs []time.Time
	var cryptoYs, financeYs, combinedYs []float64

	for _, p := range points {
		if p.Crypto != nil {
			cryptoXs = append(cryptoXs, p.Timestamp)
			cryptoYs = append(cryptoYs, p.Crypto.TotalValueUSD.InexactFloat64())
		}
		if p.Finance != nil {
			financeXs = append(financeXs, p.Timestamp)
			financeYs = append(financeYs, p.Finance.TotalBalance.InexactFloat64())
		}
		if p.Crypto != nil && p.Finance != nil {
			combinedXs = append(combinedXs, p.Timestamp)
			combinedYs = append(combinedYs, p.Crypto.TotalValueUSD.Add(p.Finance.TotalBalance).InexactFloat64())
		}
	}

	var series []chart.Series
	if s, ok := timeSeries("Crypto", cryptoXs, cryptoYs); ok {
		series = append(series, s)
	}
	if s, ok := timeSeries("Finance", financeXs, financeYs); ok {
		series = append(series, s)
	}
	if s, ok := timeSeries("Total", combinedXs, combinedYs); ok {
		series = append(series, s)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("cannot render a series with no values")
	}

	graph := chart.Chart{
		Width:  r.Width,
		Height: r.Height,
		XAxis:  chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf.Bytes(), nil
}

// timeSeries builds a plottable series. go-chart needs at least two values
// per series, so a single point is doubled into a flat segment.
func timeSeries(name string, xs []time.Time, ys []float64) (chart.TimeSeries, bool) {
	if len(xs) == 0 {
		return chart.TimeSeries{}, false
	}
	if len(xs) == 1 {
		xs = append(xs, xs[0].Add(time.Hour))
		ys = append(ys, ys[0])
	}
	return chart.TimeSeries{Name: name, XValues: xs, YValues: ys}, true
}
