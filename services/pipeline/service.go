package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"tp4-dataops/lib/pdftext"
	"tp4-dataops/lib/scrapers/budget"
	"tp4-dataops/lib/scrapers/football"
	"tp4-dataops/lib/scrapers/inpc"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/pipeline")

const (
	FootballFile  = "football_results.csv"
	BudgetFile    = "budget_execution.csv"
	InpcRawFile   = "inpc_table2.csv"
	InpcCleanFile = "inpc_table2_clean.csv"
	KpiFile       = "kpi.json"
	ReportFile    = "run_report.md"
)

type FootballSource interface {
	Scrape(ctx context.Context, url string) ([]football.Match, error)
}

type BudgetSource interface {
	Scrape(ctx context.Context, opts budget.Options) (budget.Grid, error)
}

type InpcSource interface {
	Download(ctx context.Context, url string, destDir string) (string, error)
}

// Options overrides the live sources, which is also the seam tests
// use. zero values fall back to the real scrapers.
type Options struct {
	Football      FootballSource
	Budget        BudgetSource
	Inpc          InpcSource
	ExtractTables func(path string, pages pdftext.PageSet) ([][][]string, error)
	Now           func() time.Time
}

type Service struct {
	cfg           Config
	football      FootballSource
	budget        BudgetSource
	inpc          InpcSource
	extractTables func(path string, pages pdftext.PageSet) ([][][]string, error)
	now           func() time.Time
}

func NewService(cfg Config, opts Options) Service {
	s := Service{
		cfg:           cfg,
		football:      opts.Football,
		budget:        opts.Budget,
		inpc:          opts.Inpc,
		extractTables: opts.ExtractTables,
		now:           opts.Now,
	}
	if s.football == nil {
		s.football = football.NewScraper(football.Options{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout(),
		})
	}
	if s.budget == nil {
		s.budget = liveBudget{}
	}
	if s.inpc == nil {
		s.inpc = inpc.NewScraper(inpc.Options{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout(),
		})
	}
	if s.extractTables == nil {
		s.extractTables = pdftext.ExtractTables
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// budget.Scrape spins up its own browser per call, there is no client
// to hold on to.
type liveBudget struct{}

func (liveBudget) Scrape(ctx context.Context, opts budget.Options) (budget.Grid, error) {
	return budget.Scrape(ctx, opts)
}

func (s Service) scrapedAt() string {
	return s.now().UTC().Format(time.RFC3339)
}

// Run executes the stages in a fixed order: football, budget, the
// price-index download, extraction, cleaning, then reporting. the
// first failure stops the run and nothing downstream of it is
// written.
func (s Service) Run(ctx context.Context) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	fail := func(err error) (Summary, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Summary{}, err
	}

	if err := os.MkdirAll(s.cfg.OutputDir, 0755); err != nil {
		return fail(fmt.Errorf("create output dir: %w", err))
	}

	footballTable, err := s.FetchFootball(ctx)
	if err != nil {
		return fail(FetchError{Source: "football", Err: err})
	}
	budgetTable, err := s.FetchBudget(ctx)
	if err != nil {
		return fail(FetchError{Source: "budget", Err: err})
	}
	pdfPath, err := s.FetchInpcPdf(ctx)
	if err != nil {
		return fail(FetchError{Source: "inpc", Err: err})
	}
	shaped, err := s.ExtractInpc(ctx, pdfPath, pdftext.AllPages())
	if err != nil {
		return fail(ExtractionError{Err: err})
	}
	cleaned, err := s.CleanInpc(ctx, shaped)
	if err != nil {
		return fail(CleaningError{Err: err})
	}
	summary, err := s.Report(ctx, footballTable, budgetTable, cleaned)
	if err != nil {
		return fail(ReportingError{Err: err})
	}
	return summary, nil
}
