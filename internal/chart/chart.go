// Package chart renders the weekly commit table as a stacked bar chart.
package chart

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/bhimrazy/ghweekly/internal/domain"
)

// Render writes a stacked weekly bar chart as a self-contained HTML page.
// One bar per week, one stacked segment per repository, with per-segment
// count labels.
func Render(w io.Writer, t *domain.Table, username string) error {
	title := fmt.Sprintf("Weekly GitHub Contributions by Repo (%s)", username)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1200px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Start of the week (Monday)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Commits"}),
	)

	labels := make([]string, len(t.Weeks))
	for i, week := range t.Weeks {
		labels[i] = week.Format("2006-01-02")
	}
	bar.SetXAxis(labels)

	for col, name := range t.Columns {
		counts := t.Column(col)
		series := make([]opts.BarData, len(counts))
		for i, c := range counts {
			series[i] = opts.BarData{Value: c}
		}
		bar.AddSeries(name, series)
	}
	bar.SetSeriesOptions(
		charts.WithBarChartOpts(opts.BarChart{Stack: "weekly"}),
		charts.WithLabelOpts(opts.Label{Show: true, Position: "inside"}),
	)

	return bar.Render(w)
}

// RenderFile renders the chart into a file at path.
func RenderFile(path string, t *domain.Table, username string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Render(f, t, username)
}
