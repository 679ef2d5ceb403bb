package telemetry

import (
	"log/slog"
	"os"
)

// installs the process-wide text logger. verbose drops the level to
// debug, which in turn enables http message dumps in restyutil.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
