package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"tp4-dataops/lib/textutil"
)

// serializes the table with a header row. rendering goes through
// Cell.String, so writing the same table twice produces identical
// bytes.
func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	err := cw.Write(t.Columns)
	if err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i := range record {
			if i < len(row) {
				record[i] = row[i].String()
			} else {
				record[i] = ""
			}
		}
		err = cw.Write(record)
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func (t Table) WriteCSVFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = t.WriteCSV(f)
	closeErr := f.Close()
	if err != nil {
		return err
	}
	return closeErr
}

// reads a csv produced by WriteCSV back into a table. blank cells
// come back missing and numeric-looking cells come back typed, which
// is what the kpi profiles care about.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, err
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("csv has no header row")
	}

	t := Table{Columns: records[0]}
	for _, record := range records[1:] {
		row := make([]Cell, len(t.Columns))
		for i := range row {
			if i >= len(record) || record[i] == "" {
				row[i] = MissingCell()
				continue
			}
			n, ok := asNumber(record[i])
			if ok {
				row[i] = NumberCell(n)
			} else {
				row[i] = TextCell(record[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func asNumber(s string) (float64, bool) {
	if !textutil.IsNumeric(s) {
		return 0, false
	}
	return parseNumber(TextCell(s))
}

func ReadCSVFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()
	return ReadCSV(f)
}
