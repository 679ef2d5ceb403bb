package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"tp4-dataops/lib/restyutil"
	"tp4-dataops/lib/scrapers/football"
	"tp4-dataops/lib/scrapers/inpc"
	"tp4-dataops/lib/serviceutil"
	"tp4-dataops/lib/telemetry"
)

func initTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	// no telemetry.json5 just means no exporters, the pipeline is
	// expected to run in bare containers
	err := telemetry.SetupFromEnv(ctx, "dataops")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		serviceutil.Fatal("setup telemetry", err)
	}
	go func() {
		<-ctx.Done()
		telemetry.Shutdown(context.Background())
	}()
	telemetry.InstrumentPerfStats(ctx)

	if !verbose {
		return
	}

	football.SetRestyInstrumentOutput(
		restyutil.NewFilesystemOutput(".dev/resty/football"),
	)
	inpc.SetRestyInstrumentOutput(
		restyutil.NewFilesystemOutput(".dev/resty/inpc"),
	)
}
