// Package table provides the column-oriented in-memory table that raw survey
// exports are parsed into before splitting.
package table

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Table is an ordered set of named string columns. Cells keep their raw text;
// numeric access coerces per cell with NaN for anything unparsable, so a dirty
// export never fails mid-load.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]string
}

// New creates an empty table with the given column names. Column names are
// stored lowercased and trimmed; duplicate names keep the first position.
func New(cols []string) *Table {
	t := &Table{index: make(map[string]int, len(cols))}
	for _, c := range cols {
		name := strings.ToLower(strings.TrimSpace(c))
		if _, exists := t.index[name]; exists {
			continue
		}
		t.index[name] = len(t.cols)
		t.cols = append(t.cols, name)
	}
	return t
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// AppendRow adds one row. Short rows are padded with empty cells; long rows
// are truncated to the column count.
func (t *Table) AppendRow(cells []string) {
	row := make([]string, len(t.cols))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	t.rows = append(t.rows, row)
}

// Cell returns the trimmed text of one cell, or the empty string when the
// column does not exist.
func (t *Table) Cell(row int, col string) string {
	i, ok := t.index[strings.ToLower(strings.TrimSpace(col))]
	if !ok {
		return ""
	}
	return strings.TrimSpace(t.rows[row][i])
}

// SetCell overwrites one cell. Unknown columns are ignored.
func (t *Table) SetCell(row int, col, value string) {
	i, ok := t.index[strings.ToLower(strings.TrimSpace(col))]
	if !ok {
		return
	}
	t.rows[row][i] = value
}

// Float returns the numeric value of one cell. Empty cells and cells that do
// not parse as a number become NaN, never an error.
func (t *Table) Float(row int, col string) float64 {
	return ParseFloat(t.Cell(row, col))
}

// SortByFloat stably sorts rows ascending by the numeric value of a column.
// Rows whose cell is missing sort after all numeric rows, preserving their
// relative order. Sorting by an absent column is a no-op.
func (t *Table) SortByFloat(col string) {
	if !t.HasColumn(col) {
		return
	}
	sort.SliceStable(t.rows, func(a, b int) bool {
		va := t.Float(a, col)
		vb := t.Float(b, col)
		switch {
		case math.IsNaN(va):
			return false
		case math.IsNaN(vb):
			return true
		default:
			return va < vb
		}
	})
}

// RenameColumn changes a column's name in place. Renaming an absent column or
// onto an existing name is a no-op.
func (t *Table) RenameColumn(from, to string) {
	fromKey := strings.ToLower(strings.TrimSpace(from))
	toKey := strings.ToLower(strings.TrimSpace(to))
	i, ok := t.index[fromKey]
	if !ok {
		return
	}
	if _, taken := t.index[toKey]; taken {
		return
	}
	delete(t.index, fromKey)
	t.index[toKey] = i
	t.cols[i] = toKey
}

// ParseFloat coerces raw cell text to float64, returning NaN for empty or
// unparsable input. Decimal commas from European exports are accepted.
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return v
	}
	// Retry with a decimal comma, but only when there is exactly one and no
	// decimal point, so thousand separators are not misread.
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		v, err = strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err == nil {
			return v
		}
	}
	return math.NaN()
}
