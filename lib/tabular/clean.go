package tabular

import (
	"fmt"
	"strconv"

	"tp4-dataops/lib/textutil"
)

// drops rows where every cell is missing.
func (t Table) DropEmptyRows() Table {
	rows := make([][]Cell, 0, len(t.Rows))
	for _, row := range t.Rows {
		empty := true
		for _, c := range row {
			if !c.IsMissing() {
				empty = false
				break
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return Table{Columns: t.Columns, Rows: rows}
}

// promotes the first row to column names when it actually looks like
// a header: at least two filled cells, fewer than half of them
// carrying digits, and at least one data row left underneath.
// names are normalized, blanks keep their placeholder.
func (t Table) PromoteHeader() Table {
	if len(t.Rows) < 2 {
		return t
	}

	first := t.Rows[0]
	filled, digity := 0, 0
	for _, c := range first {
		if c.IsMissing() {
			continue
		}
		filled++
		if textutil.ContainsDigit(c.String()) {
			digity++
		}
	}
	if filled < 2 || float64(digity)/float64(filled) >= 0.5 {
		return t
	}

	columns := make([]string, len(t.Columns))
	for i, c := range first {
		name := textutil.NormalizeHeader(c.String())
		if name == "" {
			name = fmt.Sprintf("col_%d", i+1)
		}
		columns[i] = name
	}
	return Table{Columns: columns, Rows: t.Rows[1:]}
}

// scanned documents repeat the header block on every page. a row is
// treated as such a repeat when at least max(2, width/2) of its
// filled cells normalize to their own column's name.
func (t Table) DropRepeatedHeaderRows() Table {
	need := len(t.Columns) / 2
	if need < 2 {
		need = 2
	}

	rows := make([][]Cell, 0, len(t.Rows))
	for _, row := range t.Rows {
		matches := 0
		for i, c := range row {
			if c.IsMissing() || i >= len(t.Columns) {
				continue
			}
			if textutil.NormalizeHeader(c.String()) == t.Columns[i] {
				matches++
			}
		}
		if matches < need {
			rows = append(rows, row)
		}
	}
	return Table{Columns: t.Columns, Rows: rows}
}

func parseNumber(c Cell) (float64, bool) {
	if c.Kind != CellText {
		return 0, false
	}
	n, err := strconv.ParseFloat(textutil.NormalizeNumber(c.Text), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func coerceColumn(rows [][]Cell, idx int) {
	for _, row := range rows {
		if row[idx].Kind != CellText {
			continue
		}
		n, ok := parseNumber(row[idx])
		if ok {
			row[idx] = NumberCell(n)
		} else {
			row[idx] = MissingCell()
		}
	}
}

// retypes every column whose filled cells are at least `threshold`
// numeric-looking. a threshold of 1 gives all-or-nothing semantics.
// cells that still fail to parse afterwards become missing.
func (t Table) CoerceNumeric(threshold float64) Table {
	out := t.copyRows()
	for idx := range out.Columns {
		filled, numeric := 0, 0
		for _, row := range out.Rows {
			c := row[idx]
			if c.IsMissing() {
				continue
			}
			filled++
			if c.Kind == CellNumber || textutil.IsNumeric(c.String()) {
				numeric++
			}
		}
		if filled == 0 || float64(numeric)/float64(filled) < threshold {
			continue
		}
		coerceColumn(out.Rows, idx)
	}
	return out
}

// retypes the named columns unconditionally, missing out anything
// that cannot parse.
func (t Table) CoerceColumns(names ...string) Table {
	out := t.copyRows()
	for _, name := range names {
		idx := out.ColumnIndex(name)
		if idx < 0 {
			continue
		}
		coerceColumn(out.Rows, idx)
	}
	return out
}

func (t Table) copyRows() Table {
	rows := make([][]Cell, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = append([]Cell{}, row...)
	}
	return Table{Columns: append([]string{}, t.Columns...), Rows: rows}
}
