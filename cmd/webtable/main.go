package main

import (
	"os"

	"webtable/cmd/webtable/commands"
	"webtable/lib/osutil"
	"webtable/lib/telemetry"
)

func main() {
	ctx := osutil.SignalContext()

	telemetry.InitSlog(true)
	if err := telemetry.SetupFromEnv(ctx, "webtable"); err != nil && !os.IsNotExist(err) {
		panic(err)
	}
	defer telemetry.Shutdown(ctx)
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
