// Package tabular holds the in-memory table model shared by every
// stage between extraction and the csv outputs. cells are a tagged
// union so "no value" survives cleaning without being confused with
// an empty string or a zero.
package tabular

import (
	"fmt"
	"strconv"

	"tp4-dataops/lib/textutil"
)

type CellKind int

const (
	CellMissing CellKind = iota
	CellText
	CellNumber
)

type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

func NumberCell(n float64) Cell {
	return Cell{Kind: CellNumber, Number: n}
}

func MissingCell() Cell {
	return Cell{Kind: CellMissing}
}

// trims the raw string and classifies blank cells as missing. no
// numeric typing happens here, that is a per-column decision.
func CellFromString(s string) Cell {
	s = textutil.CollapseWhitespace(s)
	if s == "" {
		return MissingCell()
	}
	return TextCell(s)
}

func (c Cell) IsMissing() bool {
	return c.Kind == CellMissing
}

// canonical csv rendering. numbers use the shortest representation
// that round-trips so identical inputs always serialize to identical
// bytes.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellText:
		return c.Text
	default:
		return ""
	}
}

type Table struct {
	Columns []string
	Rows    [][]Cell
}

// builds a table out of a raw string grid. ragged rows are padded to
// the widest row, columns get placeholder names until a header row is
// promoted.
func FromGrid(grid [][]string) Table {
	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}

	columns := make([]string, width)
	for i := range columns {
		columns[i] = fmt.Sprintf("col_%d", i+1)
	}

	rows := make([][]Cell, 0, len(grid))
	for _, raw := range grid {
		row := make([]Cell, width)
		for i := range row {
			if i < len(raw) {
				row[i] = CellFromString(raw[i])
			} else {
				row[i] = MissingCell()
			}
		}
		rows = append(rows, row)
	}

	return Table{Columns: columns, Rows: rows}
}

// builds a table from separately scraped headers and body rows.
// blank header names fall back to their placeholder.
func FromParts(headers []string, body [][]string) Table {
	t := FromGrid(body)
	for i := range t.Columns {
		if i >= len(headers) {
			break
		}
		name := textutil.NormalizeHeader(headers[i])
		if name != "" {
			t.Columns[i] = name
		}
	}
	return t
}

func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// appends a column holding the same value on every row, used for the
// source_url / scraped_at provenance columns.
func (t Table) WithColumn(name string, value Cell) Table {
	out := Table{
		Columns: append(append([]string{}, t.Columns...), name),
		Rows:    make([][]Cell, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append(append([]Cell{}, row...), value)
	}
	return out
}

// projects the table onto the named columns in the given order,
// silently skipping names that don't exist.
func (t Table) SelectColumns(names []string) Table {
	var indexes []int
	var columns []string
	for _, name := range names {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			continue
		}
		indexes = append(indexes, idx)
		columns = append(columns, name)
	}

	rows := make([][]Cell, len(t.Rows))
	for i, row := range t.Rows {
		projected := make([]Cell, len(indexes))
		for j, idx := range indexes {
			projected[j] = row[idx]
		}
		rows[i] = projected
	}
	return Table{Columns: columns, Rows: rows}
}
