// Package pdftext recovers tabular data from pdfs that were published
// without any structure: it reads positioned text fragments and
// clusters them back into rows and columns, the way the usual
// document tools do for "stream" layouts.
package pdftext

import (
	"fmt"
	"sort"

	"github.com/ledongthuc/pdf"
)

func ReadRuns(path string, pages PageSet) ([]Run, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var runs []Run
	for n := 1; n <= reader.NumPage(); n++ {
		if !pages.Contains(n) {
			continue
		}
		pageRuns, err := readPage(reader, n)
		if err != nil {
			return nil, err
		}
		runs = append(runs, pageRuns...)
	}

	if len(runs) == 0 {
		return nil, fmt.Errorf("no text content on selected pages")
	}
	return runs, nil
}

// the underlying parser panics on malformed objects and content
// streams, turn those into errors
func readPage(reader *pdf.Reader, n int) (runs []Run, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf page %d: %v", n, r)
		}
	}()

	page := reader.Page(n)
	if page.V.IsNull() {
		return nil, nil
	}
	return mergeRuns(n, page.Content().Text), nil
}

// glues the parser's per-glyph fragments back into words and cell
// texts: neighbours on the same baseline whose horizontal gap is
// smaller than roughly a space belong together.
func mergeRuns(pageNum int, texts []pdf.Text) []Run {
	sorted := append([]pdf.Text{}, texts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var runs []Run
	current := -1
	var currentEnd float64

	for _, t := range sorted {
		if t.S == "" {
			continue
		}

		joinGap := t.FontSize * 0.5
		if joinGap <= 0 {
			joinGap = 6
		}

		sameLine := current >= 0 && runs[current].Y == t.Y
		gap := t.X - currentEnd
		if sameLine && gap <= joinGap && gap >= -1 {
			runs[current].Text += t.S
			if end := t.X + t.W; end > currentEnd {
				currentEnd = end
			}
			runs[current].W = currentEnd - runs[current].X
			continue
		}

		runs = append(runs, Run{
			Page:     pageNum,
			X:        t.X,
			Y:        t.Y,
			W:        t.W,
			FontSize: t.FontSize,
			Text:     t.S,
		})
		current = len(runs) - 1
		currentEnd = t.X + t.W
	}

	return runs
}

// pulls every table candidate off the selected pages, in page order
// then top to bottom. errors when the document yields nothing, a
// report pdf with no recoverable table is a broken input.
func ExtractTables(path string, pages PageSet) ([][][]string, error) {
	runs, err := ReadRuns(path, pages)
	if err != nil {
		return nil, err
	}

	byPage := map[int][]Run{}
	var pageOrder []int
	for _, r := range runs {
		if _, seen := byPage[r.Page]; !seen {
			pageOrder = append(pageOrder, r.Page)
		}
		byPage[r.Page] = append(byPage[r.Page], r)
	}
	sort.Ints(pageOrder)

	var grids [][][]string
	for _, page := range pageOrder {
		grids = append(grids, GridsFromRuns(byPage[page])...)
	}
	if len(grids) == 0 {
		return nil, fmt.Errorf("no tables found in %s", path)
	}
	return grids, nil
}
