package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"webtable/lib/configutil"
	"webtable/lib/fetchlog"
)

var rootCmd = &cobra.Command{
	Use:   "webtable",
	Short: "webtable walks through manual scraping mechanics: fetch a page with captured headers, decode the gzip artifact, extract its tables.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}

// Config is the optional webtable.json5 discovered by walking up from
// the working directory. Flags always win over it.
type Config struct {
	HeaderFile string          `json:"header_file"`
	Log        fetchlog.Config `json:"log"`
}

func loadConfig() Config {
	cfg, err := configutil.ReadRecursively[Config]("webtable.json5")
	if err != nil && !os.IsNotExist(err) {
		fatal("failed to read webtable.json5", err)
	}
	return cfg
}

// openLog returns nil when no fetch log is configured anywhere.
func openLog(flagPath string, cfg Config) *fetchlog.Log {
	logConfig := cfg.Log
	if flagPath != "" {
		logConfig = fetchlog.Config{File: flagPath}
	}
	if logConfig.File == "" && logConfig.Url == "" {
		return nil
	}

	log, err := fetchlog.Open(logConfig)
	if err != nil {
		fatal("failed to open fetch log", err)
	}
	return log
}
