package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/piwi3910/LoadDeck/internal/model"
)

// ChartOptions tunes the client area chart.
type ChartOptions struct {
	Theme string
	Width string
}

// DefaultChartOptions matches the application config defaults.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{Theme: "white", Width: "900px"}
}

// Chart writes an HTML page with a bar chart of placed floor area per client.
func Chart(r model.PlanResult, o ChartOptions, w io.Writer) error {
	byClient := r.ByClient()
	if len(byClient) == 0 {
		return fmt.Errorf("no placed items to chart")
	}

	colors := ClientColors(r)
	clients := make([]string, 0, len(byClient))
	data := make([]opts.BarData, 0, len(byClient))
	for _, ca := range byClient {
		clients = append(clients, ca.Client)
		data = append(data, opts.BarData{
			Name:      ca.Client,
			Value:     model.RoundTo(ca.Area, 2),
			ItemStyle: &opts.ItemStyle{Color: colors[ca.Client].Hex()},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Floor area per client",
			Theme:     o.Theme,
			Width:     o.Width,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Floor area per client",
			Subtitle: fmt.Sprintf("%s, %.2f loading meters, %.1f%% of floor", r.Trailer.Name, r.LoadingMeters(), r.Efficiency()),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "m²"}),
	)
	bar.SetXAxis(clients).AddSeries("Area", data)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
