package telemetry

import (
	"context"
	"os"
)

var setupTestEnvironments = map[string]bool{}

// SetupForTesting configures slog and, when a telemetry.json5 is in
// reach, the otel providers, once per service name. A missing config is
// fine in tests.
func SetupForTesting(serviceName string) func() {
	if setupTestEnvironments[serviceName] {
		return func() {}
	}
	setupTestEnvironments[serviceName] = true

	InitSlog(true)
	err := SetupFromEnv(context.Background(), serviceName)
	if err != nil && !os.IsNotExist(err) {
		panic(err)
	}

	return func() {
		err := Shutdown(context.Background())
		if err != nil {
			panic(err)
		}
	}
}
