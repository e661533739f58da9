package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog sets the default slog handler. Dev mode gets human-readable
// text on stderr with debug enabled; otherwise JSON at info.
func InitSlog(dev bool) {
	var handler slog.Handler
	if dev {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	slog.SetDefault(slog.New(handler))
}
