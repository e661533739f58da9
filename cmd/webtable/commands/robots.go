package commands

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"webtable/lib/fetch"
	"webtable/lib/robotstxt"
)

var (
	robotsAgent string
	robotsPath  string
)

func init() {
	robotsCmd.Flags().StringVar(&robotsAgent, "agent", "webtable", "User-agent to evaluate the rules for.")
	robotsCmd.Flags().StringVar(&robotsPath, "path", "", "Path to check (default: the url's own path).")
	rootCmd.AddCommand(robotsCmd)
}

var robotsCmd = &cobra.Command{
	Use:   "robots <url> [--agent ua] [--path p]",
	Short: "Fetch the site's robots.txt and report whether a path is allowed. Advisory only.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target, err := url.Parse(args[0])
		if err != nil {
			fatal("failed to parse url", err)
		}

		client, err := fetch.NewClient(fetch.Options{})
		if err != nil {
			fatal("failed to build client", err)
		}

		robots, err := robotstxt.Fetch(cmd.Context(), client, args[0])
		if err != nil {
			fatal("failed to fetch robots.txt", err)
		}

		path := robotsPath
		if path == "" {
			path = target.Path
		}
		if path == "" {
			path = "/"
		}

		if robots.Allowed(robotsAgent, path) {
			fmt.Printf("allowed: %s may fetch %s\n", robotsAgent, path)
		} else {
			fmt.Printf("disallowed: %s is asked not to fetch %s\n", robotsAgent, path)
		}
	},
}
