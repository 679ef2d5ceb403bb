package pdftext

import (
	"sort"
	"strings"
)

// a word or cell fragment with its position on the page. X/Y is the
// start of the baseline in pdf points, origin at the bottom left.
type Run struct {
	Page     int
	X, Y, W  float64
	FontSize float64
	Text     string
}

func (r Run) width() float64 {
	if r.W > 0 {
		return r.W
	}
	// metrics for the builtin fonts aren't always available, guess
	// half an em per glyph
	size := r.FontSize
	if size <= 0 {
		size = 12
	}
	return float64(len(r.Text)) * size * 0.5
}

func (r Run) center() float64 {
	return r.X + r.width()/2
}

type row struct {
	y    float64
	runs []Run
}

// groups runs into visual rows: sorted top to bottom, runs sharing a
// baseline within the tolerance end up in the same row, ordered left
// to right.
func clusterRows(runs []Run, yTol float64) []row {
	sorted := append([]Run{}, runs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows []row
	for _, r := range sorted {
		if len(rows) > 0 && rows[len(rows)-1].y-r.Y <= yTol {
			last := &rows[len(rows)-1]
			last.runs = append(last.runs, r)
			continue
		}
		rows = append(rows, row{y: r.Y, runs: []Run{r}})
	}

	for i := range rows {
		sort.SliceStable(rows[i].runs, func(a, b int) bool {
			return rows[i].runs[a].X < rows[i].runs[b].X
		})
	}
	return rows
}

// splits a page's rows into contiguous blocks wherever the vertical
// gap between neighbours jumps well past the median line spacing.
// each block is one table candidate.
func splitBlocks(rows []row) [][]row {
	if len(rows) == 0 {
		return nil
	}

	gaps := make([]float64, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		gaps = append(gaps, rows[i-1].y-rows[i].y)
	}
	median := medianOf(gaps)

	var blocks [][]row
	current := []row{rows[0]}
	for i := 1; i < len(rows); i++ {
		gap := rows[i-1].y - rows[i].y
		if median > 0 && gap > median*3 {
			blocks = append(blocks, current)
			current = nil
		}
		current = append(current, rows[i])
	}
	blocks = append(blocks, current)
	return blocks
}

func medianOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]float64{}, vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

type span struct {
	lo, hi float64
}

// derives the column layout of a block from its most common row
// shape. spanning captions would otherwise bridge neighbouring
// columns, so rows with fewer runs than the modal count don't vote.
func columnSpans(block []row) []span {
	counts := map[int]int{}
	for _, r := range block {
		counts[len(r.runs)]++
	}
	modal, best := 0, 0
	for n, c := range counts {
		if c > best || (c == best && n > modal) {
			modal, best = n, c
		}
	}

	var spans []span
	for _, r := range block {
		if len(r.runs) != modal {
			continue
		}
		for _, run := range r.runs {
			spans = append(spans, span{lo: run.X, hi: run.X + run.width()})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].lo < spans[j].lo })

	var merged []span
	for _, s := range spans {
		if len(merged) > 0 && s.lo <= merged[len(merged)-1].hi+1 {
			last := &merged[len(merged)-1]
			if s.hi > last.hi {
				last.hi = s.hi
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

func nearestColumn(spans []span, center float64) int {
	bestIdx := 0
	bestDist := -1.0
	for i, s := range spans {
		if center >= s.lo && center <= s.hi {
			return i
		}
		dist := center - s.hi
		if center < s.lo {
			dist = s.lo - center
		}
		if bestDist < 0 || dist < bestDist {
			bestIdx, bestDist = i, dist
		}
	}
	return bestIdx
}

// flattens one block into a string grid using the detected column
// layout. several runs landing in the same cell are joined in
// reading order.
func blockToGrid(block []row) [][]string {
	spans := columnSpans(block)
	if len(spans) == 0 {
		return nil
	}

	grid := make([][]string, len(block))
	for i, r := range block {
		cells := make([]string, len(spans))
		for _, run := range r.runs {
			col := nearestColumn(spans, run.center())
			if cells[col] == "" {
				cells[col] = run.Text
			} else {
				cells[col] += " " + run.Text
			}
		}
		grid[i] = cells
	}
	return grid
}

// turns one page's runs into table candidate grids, top to bottom.
func GridsFromRuns(runs []Run) [][][]string {
	if len(runs) == 0 {
		return nil
	}

	yTol := medianFontSize(runs) * 0.4
	if yTol <= 0 {
		yTol = 3
	}

	var grids [][][]string
	for _, block := range splitBlocks(clusterRows(runs, yTol)) {
		grid := blockToGrid(block)
		if len(grid) > 0 {
			grids = append(grids, grid)
		}
	}
	return grids
}

func medianFontSize(runs []Run) float64 {
	sizes := make([]float64, 0, len(runs))
	for _, r := range runs {
		if r.FontSize > 0 {
			sizes = append(sizes, r.FontSize)
		}
	}
	return medianOf(sizes)
}

// debug rendering of a grid, tab separated.
func GridString(grid [][]string) string {
	var out strings.Builder
	for _, row := range grid {
		out.WriteString(strings.Join(row, "\t"))
		out.WriteString("\n")
	}
	return out.String()
}
