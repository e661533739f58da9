// Package testutil bootstraps package test binaries: slog plus otel
// providers (when a telemetry.json5 is reachable) exactly once.
package testutil

import (
	"fmt"
	"os"
	"testing"

	"webtable/lib/telemetry"
)

func Run(m *testing.M, name string) {
	cleanup := telemetry.SetupForTesting(fmt.Sprintf("test:%s", name))
	code := m.Run()
	cleanup()
	os.Exit(code)
}
