package run

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/discuss-feed/internal/common"
	"github.com/dtnitsch/discuss-feed/internal/config"
	"github.com/dtnitsch/discuss-feed/pkg/fetcher"
	"github.com/dtnitsch/discuss-feed/pkg/history"
)

func RunAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig()
	if err != nil {
		return err
	}
	if err := config.RequireSearch(cfg); err != nil {
		return err
	}

	var hist *history.DB
	if cfg.HistoryDB != "" {
		hist, err = history.Open(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer hist.Close()
	}

	p, err := NewPipeline(cfg, Deps{
		Searcher: fetcher.NewClient(c.String("endpoint"), cfg.CSEID, cfg.CSEKey),
		History:  hist,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if every := c.Duration("every"); every > 0 {
		logger.Info("Running periodically", "every", every.String())
		return p.Every(ctx, every)
	}

	out, err := p.Once(ctx)
	if err != nil {
		return err
	}
	logger.Info("Run complete", "run_id", out.Run.ID, "items", out.Run.ItemCount, "json_path", out.Run.JSONPath)
	return nil
}
