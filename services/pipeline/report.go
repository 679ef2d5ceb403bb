package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tp4-dataops/lib/tabular"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("services/pipeline")

var rowsGauge, _ = meter.Int64Gauge("dataset_rows")

func (s Service) Report(ctx context.Context, footballT, budgetT, inpcT tabular.Table) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Report")
	defer span.End()

	summary, err := s.summarize(footballT, budgetT, inpcT)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Summary{}, err
	}

	if err := writeKpiJson(filepath.Join(s.cfg.OutputDir, KpiFile), summary); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Summary{}, err
	}
	if err := writeRunReport(filepath.Join(s.cfg.OutputDir, ReportFile), summary); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Summary{}, err
	}

	recordRowGauges(ctx, summary)
	renderSummary(summary)

	if s.cfg.Smtp.Enabled() {
		if err := s.mailReport(ctx, summary); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return Summary{}, err
		}
	}

	return summary, nil
}

func reportLines(summary Summary) []string {
	return []string{
		"# TP4 — Run report",
		fmt.Sprintf("- scraped_at: %s", summary.ScrapedAt),
		fmt.Sprintf("- run_id: %s", summary.RunId),
		fmt.Sprintf("- Football: %s (%d rows)", summary.Football.Status, summary.Football.Rows),
		fmt.Sprintf("- Budget: %s (%d rows)", summary.Budget.Status, summary.Budget.Rows),
		fmt.Sprintf("- INPC: %s (%d rows)", summary.Inpc.Status, summary.Inpc.Rows),
	}
}

func writeRunReport(path string, summary Summary) error {
	contents := strings.Join(reportLines(summary), "\n") + "\n"
	return os.WriteFile(path, []byte(contents), 0644)
}

func renderSummary(summary Summary) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Dataset", "Status", "Rows", "Missing"})
	for _, d := range []struct {
		name string
		kpi  DatasetKPI
	}{
		{"football", summary.Football},
		{"budget", summary.Budget},
		{"inpc", summary.Inpc},
	} {
		t.AppendRow(table.Row{d.name, d.kpi.Status, d.kpi.Rows, d.kpi.MissingValues})
	}
	t.Render()
}

func recordRowGauges(ctx context.Context, summary Summary) {
	for name, kpi := range map[string]DatasetKPI{
		"football": summary.Football,
		"budget":   summary.Budget,
		"inpc":     summary.Inpc,
	} {
		rowsGauge.Record(ctx, int64(kpi.Rows),
			metric.WithAttributes(attribute.String("dataset", name)))
	}
}
