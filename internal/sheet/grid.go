// Package sheet provides an in-memory grid abstraction over tabular source
// data. The conversion engine consumes sheets exclusively through this
// package, so it does not care whether a grid came from a spreadsheet
// export, a CSV upload, or a hand-built test fixture.
package sheet

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the underlying representation of a cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
	KindBool
	KindTime
	KindError
)

// Cell is a single grid cell. The zero value is an empty cell.
type Cell struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
	Time time.Time
}

// String returns a string cell.
func String(s string) Cell { return Cell{Kind: KindString, Str: s} }

// Number returns a numeric cell.
func Number(f float64) Cell { return Cell{Kind: KindNumber, Num: f} }

// Boolean returns a boolean cell.
func Boolean(b bool) Cell { return Cell{Kind: KindBool, Bool: b} }

// Timestamp returns a date/time cell (a date-formatted numeric in
// spreadsheet terms).
func Timestamp(t time.Time) Cell { return Cell{Kind: KindTime, Time: t} }

// Value renders the cell as a trimmed string.
//
// Numeric cells render as integers when the value has no fractional part
// and in plain decimal form otherwise; scientific notation is never used.
// Boolean cells render as "true"/"false". Date cells render via a fixed
// date-to-string conversion. Error cells and anything unrecognized render
// as the empty string. Value never fails.
func (c Cell) Value() string {
	switch c.Kind {
	case KindString:
		return cleanString(c.Str)
	case KindNumber:
		if math.IsNaN(c.Num) || math.IsInf(c.Num, 0) {
			return ""
		}
		// 'f' formatting never produces an exponent; -1 precision keeps
		// integral values free of a trailing ".0".
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case KindBool:
		if c.Bool {
			return "true"
		}
		return "false"
	case KindTime:
		if c.Time.IsZero() {
			return ""
		}
		if h, m, s := c.Time.Clock(); h == 0 && m == 0 && s == 0 {
			return c.Time.Format("2006-01-02")
		}
		return c.Time.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// cleanString trims whitespace and strips common spreadsheet-export
// artifacts: the Excel formula-literal wrapper (="value") and stray
// surrounding quotes.
func cleanString(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}

// Grid is a rectangular-ish sheet of cells addressed by 0-based row and
// column. Rows may have differing widths; reads outside the populated
// area yield empty cells.
type Grid struct {
	name string
	rows [][]Cell
}

// NewGrid returns an empty grid with the given sheet name.
func NewGrid(name string) *Grid {
	return &Grid{name: name}
}

// Name returns the sheet name.
func (g *Grid) Name() string { return g.name }

// AppendRow adds one row of cells to the bottom of the grid.
func (g *Grid) AppendRow(cells ...Cell) {
	g.rows = append(g.rows, cells)
}

// LastRow returns the highest populated row index, or -1 for an empty grid.
func (g *Grid) LastRow() int { return len(g.rows) - 1 }

// LastCol returns the highest populated column index across all rows, or
// -1 for an empty grid.
func (g *Grid) LastCol() int {
	max := -1
	for _, row := range g.rows {
		if len(row)-1 > max {
			max = len(row) - 1
		}
	}
	return max
}

// Cell returns the cell at (row, col), or an empty cell when out of range.
func (g *Grid) Cell(row, col int) Cell {
	if row < 0 || row >= len(g.rows) {
		return Cell{}
	}
	r := g.rows[row]
	if col < 0 || col >= len(r) {
		return Cell{}
	}
	return r[col]
}

// Value returns the rendered string value at (row, col). Out-of-range
// reads yield the empty string.
func (g *Grid) Value(row, col int) string {
	return g.Cell(row, col).Value()
}

// Workbook is a named collection of grids.
type Workbook struct {
	order  []string
	sheets map[string]*Grid
}

// NewWorkbook returns an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{sheets: make(map[string]*Grid)}
}

// Add registers a grid under its sheet name, replacing any previous grid
// with the same name.
func (w *Workbook) Add(g *Grid) {
	if _, exists := w.sheets[g.Name()]; !exists {
		w.order = append(w.order, g.Name())
	}
	w.sheets[g.Name()] = g
}

// Sheet returns the grid with the given name, or nil when the workbook
// has no such sheet. A nil grid is the "missing sheet" signal downstream.
func (w *Workbook) Sheet(name string) *Grid {
	return w.sheets[name]
}

// SheetNames returns the sheet names in insertion order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.order))
	copy(names, w.order)
	return names
}
