package domain

import "time"

// Table is the aggregation result: one row per week-start in the grid,
// one column per requested repository (short names, input order).
// Its shape is fully determined by the window and repo list before any
// network call; fetch failures only affect cell values, never the shape.
type Table struct {
	Weeks   []time.Time
	Columns []string

	// cells is column-major: one inner slice per repository column.
	cells [][]int
}

// NewTable builds a zero-filled table for the window's weekly grid and
// the given repositories.
func NewTable(window Window, repos []Repo) *Table {
	weeks := window.WeekGrid()
	columns := make([]string, len(repos))
	cells := make([][]int, len(repos))
	for i, repo := range repos {
		columns[i] = repo.ShortName()
		cells[i] = make([]int, len(weeks))
	}
	return &Table{Weeks: weeks, Columns: columns, cells: cells}
}

// WeekIndex returns the grid row for the week containing t, or -1 when t
// falls outside the grid.
func (t *Table) WeekIndex(ts time.Time) int {
	if len(t.Weeks) == 0 {
		return -1
	}
	week := WeekStart(ts)
	idx := int(week.Sub(t.Weeks[0]) / (7 * 24 * time.Hour))
	if idx < 0 || idx >= len(t.Weeks) {
		return -1
	}
	return idx
}

// ColumnIndex returns the first column carrying name, or -1.
// Duplicate short names share the first column's slot, so a later
// repository's data overwrites the earlier one.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// SetColumn replaces the counts of one column. The counts slice must
// match the grid length.
func (t *Table) SetColumn(col int, counts []int) {
	copy(t.cells[col], counts)
}

// Count returns the cell value for one (week row, repo column) pair.
func (t *Table) Count(row, col int) int {
	return t.cells[col][row]
}

// Column returns a copy of one column's counts.
func (t *Table) Column(col int) []int {
	out := make([]int, len(t.cells[col]))
	copy(out, t.cells[col])
	return out
}

// RowTotal sums one week's counts across all repositories.
func (t *Table) RowTotal(row int) int {
	total := 0
	for col := range t.cells {
		total += t.cells[col][row]
	}
	return total
}
