package summarize

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/discuss-feed/internal/common"
	"github.com/dtnitsch/discuss-feed/models"
	"github.com/dtnitsch/discuss-feed/pkg/classify"
	"github.com/dtnitsch/discuss-feed/pkg/manifest"
	"github.com/dtnitsch/discuss-feed/pkg/storage"
	"github.com/dtnitsch/discuss-feed/pkg/summary"
)

func SummarizeAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig()
	if err != nil {
		return err
	}

	chain := summary.NewChain(cfg.OpenAIKey, cfg.OpenAIModel)
	strategy, err := Generate(c.Context, cfg, chain, logger)
	if err != nil {
		return err
	}
	logger.Info("Wrote summary", "strategy", strategy, "markdown", cfg.SummaryMarkdown, "json", cfg.SummaryJSON, "html", cfg.SummaryHTML)
	return nil
}

// Generate summarizes the feed the manifest points at and writes the
// summary outputs. It returns the name of the strategy that wrote the text.
func Generate(ctx context.Context, cfg *models.Config, chain summary.Chain, logger *slog.Logger) (string, error) {
	s := &storage.Storage{}

	located, err := manifest.Locate(s, cfg.ProjectRoot, cfg.ManifestPath)
	if err != nil {
		return "", fmt.Errorf("failed to load current feed: %w", err)
	}
	items := located.Document.Items
	logger.Info("Loaded feed", "path", located.Record.JSONPath, "count", len(items))

	trends := classify.New(cfg.Categories).BuildTrends(items)
	text, strategy, err := chain.Summarize(ctx, summary.Input{Items: items, Trends: trends}, logger)
	if err != nil {
		return "", err
	}

	paths := summary.Paths{Markdown: cfg.SummaryMarkdown, JSON: cfg.SummaryJSON, HTML: cfg.SummaryHTML}
	if err := summary.Write(s, paths, text, summary.BuildReport(items, trends)); err != nil {
		return "", err
	}
	return strategy, nil
}
