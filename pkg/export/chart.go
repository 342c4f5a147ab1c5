package export

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"creator_forecast/pkg/models"
)

const (
	chartWidth  = 1024
	chartHeight = 420

	// The runway chart covers the first two years, where the valley of death
	// sits in every realistic parameterization.
	runwayChartMonths = 24
)

// WriteCharts renders both charts into a single PNG file: the 24-month cash
// runway line (with break-even threshold and valley-of-death marker) stacked
// above the annual ad-vs-subscription revenue mix bars.
func WriteCharts(path string, cashSeries []models.MonthlyCashRecord, income []models.IncomeStatementYear) error {
	runwayPNG, err := renderCashRunway(cashSeries)
	if err != nil {
		return fmt.Errorf("failed to render cash runway chart: %w", err)
	}
	mixPNG, err := renderRevenueMix(income)
	if err != nil {
		return fmt.Errorf("failed to render revenue mix chart: %w", err)
	}

	combined, err := stackImages(runwayPNG, mixPNG)
	if err != nil {
		return fmt.Errorf("failed to compose chart image: %w", err)
	}
	if err := os.WriteFile(path, combined, 0o644); err != nil {
		return fmt.Errorf("failed to write chart %s: %w", path, err)
	}
	return nil
}

func renderCashRunway(cashSeries []models.MonthlyCashRecord) ([]byte, error) {
	if len(cashSeries) == 0 {
		return nil, fmt.Errorf("cash series is empty")
	}
	window := cashSeries
	if len(window) > runwayChartMonths {
		window = window[:runwayChartMonths]
	}

	xs := make([]float64, len(window))
	ys := make([]float64, len(window))
	zeros := make([]float64, len(window))
	minIdx := 0
	for i, rec := range window {
		xs[i] = float64(rec.Month)
		ys[i] = rec.ClosingBalance
		if rec.ClosingBalance < window[minIdx].ClosingBalance {
			minIdx = i
		}
	}

	graph := chart.Chart{
		Title:  "Cash Runway - First 24 Months",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "Month"},
		YAxis:  chart.YAxis{Name: "Closing Balance"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Closing Balance",
				XValues: xs,
				YValues: ys,
			},
			chart.ContinuousSeries{
				Name:    "Break-even",
				XValues: xs,
				YValues: zeros,
				Style: chart.Style{
					StrokeColor:     drawing.ColorRed,
					StrokeDashArray: []float64{5.0, 5.0},
				},
			},
			chart.AnnotationSeries{
				Annotations: []chart.Value2{
					{
						XValue: xs[minIdx],
						YValue: ys[minIdx],
						Label:  fmt.Sprintf("Valley of death: month %d (%.0f)", window[minIdx].Month, ys[minIdx]),
					},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderRevenueMix(income []models.IncomeStatementYear) ([]byte, error) {
	if len(income) == 0 {
		return nil, fmt.Errorf("income statement is empty")
	}

	bars := make([]chart.StackedBar, 0, len(income))
	for _, is := range income {
		var values []chart.Value
		if is.AdRevenue > 0 {
			values = append(values, chart.Value{Value: is.AdRevenue, Label: "Ad"})
		}
		if is.SubRevenue > 0 {
			values = append(values, chart.Value{Value: is.SubRevenue, Label: "Subs"})
		}
		if len(values) == 0 {
			values = append(values, chart.Value{Value: 1e-9, Label: "None"})
		}
		bars = append(bars, chart.StackedBar{
			Name:   fmt.Sprintf("Year %d", is.Year),
			Values: values,
		})
	}

	graph := chart.StackedBarChart{
		Title:      "Revenue Mix: Ad vs Subscription",
		Width:      chartWidth,
		Height:     chartHeight,
		BarSpacing: 60,
		XAxis:      chart.Style{},
		YAxis:      chart.Style{},
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// stackImages decodes the two PNGs and stacks them vertically into one image.
func stackImages(top, bottom []byte) ([]byte, error) {
	topImg, err := png.Decode(bytes.NewReader(top))
	if err != nil {
		return nil, err
	}
	bottomImg, err := png.Decode(bytes.NewReader(bottom))
	if err != nil {
		return nil, err
	}

	tb := topImg.Bounds()
	bb := bottomImg.Bounds()
	width := tb.Dx()
	if bb.Dx() > width {
		width = bb.Dx()
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, tb.Dy()+bb.Dy()))
	draw.Draw(canvas, image.Rect(0, 0, tb.Dx(), tb.Dy()), topImg, tb.Min, draw.Src)
	draw.Draw(canvas, image.Rect(0, tb.Dy(), bb.Dx(), tb.Dy()+bb.Dy()), bottomImg, bb.Min, draw.Src)

	var out bytes.Buffer
	if err := png.Encode(&out, canvas); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
