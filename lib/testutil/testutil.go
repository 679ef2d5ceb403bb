package testutil

import (
	"fmt"
	"testing"

	"tp4-dataops/lib/telemetry"
)

// shared bootstrap for package tests: telemetry with no-op exporters
// plus a scratch directory for stage outputs.
func Setup(t testing.TB, name string) (outputDir string, cleanup func()) {
	cleanup = telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", name))
	return t.TempDir(), cleanup
}
