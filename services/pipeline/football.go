package pipeline

import (
	"context"
	"path/filepath"

	"tp4-dataops/lib/scrapers/football"
	"tp4-dataops/lib/tabular"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var footballColumns = []string{
	"match_date", "home_team", "away_team",
	"home_score", "away_score", "status",
}

func (s Service) FetchFootball(ctx context.Context) (tabular.Table, error) {
	ctx, span := tracer.Start(ctx, "FetchFootball")
	defer span.End()

	matches, err := s.football.Scrape(ctx, s.cfg.FootballUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return tabular.Table{}, err
	}

	table := matchesTable(matches).
		WithColumn("source_url", tabular.TextCell(s.cfg.FootballUrl)).
		WithColumn("scraped_at", tabular.TextCell(s.scrapedAt()))

	path := filepath.Join(s.cfg.OutputDir, FootballFile)
	if err := table.WriteCSVFile(path); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return tabular.Table{}, err
	}

	span.SetAttributes(attribute.Int("rows", len(table.Rows)))
	return table, nil
}

func matchesTable(matches []football.Match) tabular.Table {
	table := tabular.Table{Columns: footballColumns}
	for _, m := range matches {
		table.Rows = append(table.Rows, []tabular.Cell{
			textOrMissing(m.Date),
			tabular.TextCell(m.Home),
			tabular.TextCell(m.Away),
			scoreCell(m.HomeScore),
			scoreCell(m.AwayScore),
			tabular.TextCell(m.Status),
		})
	}
	return table
}

func scoreCell(score *int) tabular.Cell {
	if score == nil {
		return tabular.MissingCell()
	}
	return tabular.NumberCell(float64(*score))
}

func textOrMissing(s string) tabular.Cell {
	if s == "" {
		return tabular.MissingCell()
	}
	return tabular.TextCell(s)
}
