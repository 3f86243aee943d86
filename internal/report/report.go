// Package report renders the weekly commit table for terminal output.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/bhimrazy/ghweekly/internal/domain"
)

// WriteTable prints the table: one row per week start (Monday), one
// column per repository, plus a per-week total.
func WriteTable(w io.Writer, t *domain.Table) error {
	table := tablewriter.NewWriter(w)

	headers := make([]string, 0, len(t.Columns)+2)
	headers = append(headers, "Week")
	headers = append(headers, t.Columns...)
	headers = append(headers, "Total")
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for row := range t.Weeks {
		line := make([]string, 0, len(headers))
		line = append(line, t.Weeks[row].Format("2006-01-02"))
		for col := range t.Columns {
			line = append(line, strconv.Itoa(t.Count(row, col)))
		}
		line = append(line, strconv.Itoa(t.RowTotal(row)))
		data = append(data, line)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// WriteSummary prints per-repository totals with mean and peak weekly
// counts across the grid.
func WriteSummary(w io.Writer, t *domain.Table) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Repo", "Commits", "Mean/Week", "Max/Week"})

	var data [][]string
	for col, name := range t.Columns {
		counts := t.Column(col)
		values := make(stats.Float64Data, len(counts))
		total := 0
		for i, c := range counts {
			values[i] = float64(c)
			total += c
		}
		mean, err := stats.Mean(values)
		if err != nil {
			mean = 0
		}
		peak, err := stats.Max(values)
		if err != nil {
			peak = 0
		}
		data = append(data, []string{
			name,
			strconv.Itoa(total),
			fmt.Sprintf("%.1f", mean),
			strconv.Itoa(int(peak)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
