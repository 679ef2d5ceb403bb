package inpc

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tp4-dataops/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/inpc")

var instrumentOutput restyutil.InstrumentOutput

func SetRestyInstrumentOutput(output restyutil.InstrumentOutput) {
	instrumentOutput = output
}

// Filename is the fixed name the bulletin is stored under. a rerun
// overwrites the previous download.
const Filename = "inpc.pdf"

type Options struct {
	UserAgent string
	Timeout   time.Duration
}

type Scraper struct {
	http *resty.Client
}

func NewScraper(opts Options) Scraper {
	client := restyutil.NewScrapingClient(opts.Timeout, opts.UserAgent)
	client.SetHeader("accept", "application/pdf,*/*")
	restyutil.InstrumentClient(client, tracer, instrumentOutput)
	return Scraper{http: client}
}

// Download fetches the monthly price-index bulletin and stores it
// under destDir, returning the path of the written file.
func (s Scraper) Download(ctx context.Context, url string, destDir string) (string, error) {
	ctx, span := tracer.Start(ctx, "Download")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	res, err := s.http.R().SetContext(ctx).Get(url)
	if err != nil {
		span.SetStatus(codes.Error, "request failed")
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	if res.IsError() {
		err := fmt.Errorf("fetch %s: status %s", url, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad response status")
		return "", err
	}

	path := filepath.Join(destDir, Filename)
	if err := os.WriteFile(path, res.Body(), 0644); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	slog.DebugContext(ctx, "downloaded bulletin", "path", path, "bytes", len(res.Body()))
	span.SetAttributes(attribute.Int("bytes", len(res.Body())))
	return path, nil
}
