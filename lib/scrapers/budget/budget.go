package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/budget")

type Options struct {
	Url       string
	UserAgent string
	Timeout   time.Duration
}

// header and cell texts exactly as rendered, typing happens later
type Grid struct {
	Headers []string
	Rows    [][]string
}

const rowSelector = "tbody.p-datatable-tbody tr.ng-star-inserted"

const headersJs = `Array.from(document.querySelectorAll('thead tr th'))
	.map(th => th.innerText.trim())
	.filter(t => t.length > 0)`

const rowsJs = `Array.from(document.querySelectorAll('tbody.p-datatable-tbody tr.ng-star-inserted'))
	.map(tr => Array.from(tr.querySelectorAll('td')).map(td => td.innerText.trim()))`

// drives a headless chromium through the treasury's angular app. the
// table body is filled in client side, plain http only ever sees an
// empty shell, so we have to wait for the rendered rows.
func Scrape(ctx context.Context, opts Options) (Grid, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()
	span.SetAttributes(attribute.String("url", opts.Url))

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Headless,
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Second * 30
	}
	timeoutCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()

	var grid Grid
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(opts.Url),
		chromedp.WaitReady("body"),
		chromedp.WaitVisible(rowSelector, chromedp.ByQuery),
		chromedp.Evaluate(headersJs, &grid.Headers),
		chromedp.Evaluate(rowsJs, &grid.Rows),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to render budget table")
		return Grid{}, fmt.Errorf("render %s: %w", opts.Url, err)
	}

	if len(grid.Rows) == 0 {
		err := fmt.Errorf("budget table rendered but no rows extracted")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Grid{}, err
	}

	slog.DebugContext(ctx, "scraped budget table",
		"headers", len(grid.Headers),
		"rows", len(grid.Rows),
	)
	span.SetAttributes(attribute.Int("rows", len(grid.Rows)))
	return grid, nil
}
