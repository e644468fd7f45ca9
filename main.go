package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/discuss-feed/internal/common"
	"github.com/dtnitsch/discuss-feed/internal/history"
	"github.com/dtnitsch/discuss-feed/internal/locate"
	"github.com/dtnitsch/discuss-feed/internal/run"
	"github.com/dtnitsch/discuss-feed/internal/summarize"
	"github.com/dtnitsch/discuss-feed/internal/token"
)

func main() {
	app := &cli.App{
		Name:  "discuss-feed",
		Usage: "Publish a daily feed of interview discussions found through web search",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Fetch search results, publish the feed and manifest, render the HTML page",
				Action: run.RunAction,
				Flags: []cli.Flag{
					common.QuietFlag,
					&cli.DurationFlag{
						Name:  "every",
						Usage: "Repeat the run at this interval until interrupted (e.g. 6h)",
					},
					&cli.StringFlag{
						Name:  "endpoint",
						Usage: "Search API endpoint (defaults to the Custom Search JSON API)",
					},
				},
			},
			{
				Name:   "summarize",
				Usage:  "Write summary.md, data/summary.json and summary.html for the current feed",
				Action: summarize.SummarizeAction,
				Flags:  []cli.Flag{common.QuietFlag},
			},
			{
				Name:   "locate",
				Usage:  "Print and verify the feed the manifest points at",
				Action: locate.LocateAction,
				Flags:  []cli.Flag{common.FormatFlag},
			},
			{
				Name:   "token",
				Usage:  "Print the path token for a day",
				Action: token.TokenAction,
				Flags: []cli.Flag{
					common.FormatFlag,
					&cli.StringFlag{
						Name:  "salt",
						Usage: "Salt for the daily token (defaults to JSON_SALT)",
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "Day as YYYY-MM-DD (defaults to today, UTC)",
					},
					&cli.BoolFlag{
						Name:  "random",
						Usage: "Generate a random token instead of the daily one",
					},
				},
			},
			{
				Name:   "history",
				Usage:  "List recorded runs",
				Action: history.HistoryAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "Maximum number of runs to show (0 for all)",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: history.FormatTable,
						Usage: "Output format: table, json or yaml",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
