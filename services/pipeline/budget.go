package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"tp4-dataops/lib/scrapers/budget"
	"tp4-dataops/lib/tabular"
	"tp4-dataops/lib/textutil"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func (s Service) FetchBudget(ctx context.Context) (tabular.Table, error) {
	ctx, span := tracer.Start(ctx, "FetchBudget")
	defer span.End()

	grid, err := s.budget.Scrape(ctx, budget.Options{
		Url:       s.cfg.BudgetUrl,
		UserAgent: s.cfg.UserAgent,
		Timeout:   s.cfg.Timeout(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return tabular.Table{}, err
	}

	table := budgetTable(grid).
		WithColumn("source_url", tabular.TextCell(s.cfg.BudgetUrl)).
		WithColumn("scraped_at", tabular.TextCell(s.scrapedAt()))

	path := filepath.Join(s.cfg.OutputDir, BudgetFile)
	if err := table.WriteCSVFile(path); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return tabular.Table{}, err
	}

	span.SetAttributes(attribute.Int("rows", len(table.Rows)))
	return table, nil
}

// treasury cells mix amounts with currency suffixes and percent
// signs, so every cell gets the same scrub. a column only keeps its
// numbers typed when the whole column parses.
func budgetTable(grid budget.Grid) tabular.Table {
	body := make([][]string, len(grid.Rows))
	for i, row := range grid.Rows {
		cleaned := make([]string, len(row))
		for j, cell := range row {
			cleaned[j] = textutil.NormalizeNumber(strings.ReplaceAll(cell, "MRU", ""))
		}
		body[i] = cleaned
	}
	return tabular.FromParts(grid.Headers, body).CoerceNumeric(1)
}
