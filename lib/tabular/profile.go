package tabular

// per-column stats feeding the kpi report. Min/Max are nil unless the
// column holds at least one number.
type ColumnProfile struct {
	Column    string   `json:"column"`
	Rows      int      `json:"rows"`
	Missing   int      `json:"missing"`
	NullRatio float64  `json:"null_ratio"`
	Numeric   int      `json:"numeric"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
}

func profileColumn(t Table, idx int) ColumnProfile {
	p := ColumnProfile{
		Column: t.Columns[idx],
		Rows:   len(t.Rows),
	}

	for _, row := range t.Rows {
		c := row[idx]
		if c.IsMissing() {
			p.Missing++
			continue
		}
		if c.Kind != CellNumber {
			continue
		}
		p.Numeric++
		n := c.Number
		if p.Min == nil || n < *p.Min {
			v := n
			p.Min = &v
		}
		if p.Max == nil || n > *p.Max {
			v := n
			p.Max = &v
		}
	}

	if p.Rows > 0 {
		p.NullRatio = float64(p.Missing) / float64(p.Rows)
	}
	return p
}

func (t Table) Profile() []ColumnProfile {
	profiles := make([]ColumnProfile, len(t.Columns))
	for i := range t.Columns {
		profiles[i] = profileColumn(t, i)
	}
	return profiles
}

// total count of missing cells across the table.
func (t Table) MissingValues() int {
	total := 0
	for _, row := range t.Rows {
		for _, c := range row {
			if c.IsMissing() {
				total++
			}
		}
	}
	return total
}
