package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/dtnitsch/discuss-feed/models"
	"github.com/dtnitsch/discuss-feed/pkg/feed"
	"github.com/dtnitsch/discuss-feed/pkg/fetcher"
	"github.com/dtnitsch/discuss-feed/pkg/filter"
	"github.com/dtnitsch/discuss-feed/pkg/history"
	"github.com/dtnitsch/discuss-feed/pkg/render"
	"github.com/dtnitsch/discuss-feed/pkg/storage"
)

// Pipeline performs one publication: fetch, remember, publish, render.
type Pipeline struct {
	cfg       *models.Config
	storage   *storage.Storage
	fetcher   *fetcher.Fetcher
	publisher *feed.Publisher
	history   *history.DB
	logger    *slog.Logger
	now       func() time.Time
}

// Deps are the collaborators a Pipeline needs beyond the configuration.
// History may be nil to run without a history store.
type Deps struct {
	Searcher fetcher.Searcher
	History  *history.DB
	Limiter  *rate.Limiter
	Logger   *slog.Logger
	Now      func() time.Time
}

func NewPipeline(cfg *models.Config, deps Deps) (*Pipeline, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	f, err := filter.New(filter.Options{
		AllowPatterns: cfg.AllowPatterns,
		Keywords:      cfg.KeywordWords,
		Companies:     cfg.Companies,
		Languages:     cfg.Languages,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}

	s := &storage.Storage{}
	return &Pipeline{
		cfg:     cfg,
		storage: s,
		fetcher: fetcher.NewFetcher(deps.Searcher, f, fetcher.Options{
			Query:      fetcher.BuildQuery(cfg.SiteHost, cfg.QCompanies, cfg.QIntents),
			MaxResults: cfg.MaxResults,
			Limiter:    deps.Limiter,
			Logger:     deps.Logger,
			Now:        deps.Now,
		}),
		publisher: feed.NewPublisher(s, cfg),
		history:   deps.History,
		logger:    deps.Logger,
		now:       deps.Now,
	}, nil
}

// Outcome summarizes a completed run.
type Outcome struct {
	Run       *history.Run
	Published *feed.Result
	Unchanged bool
	// FeedBytes is the size of the written feed on disk.
	FeedBytes int64
	// KnownURLs counts every URL the history store has seen; zero without one.
	KnownURLs int
}

// Once runs the pipeline a single time.
func (p *Pipeline) Once(ctx context.Context) (*Outcome, error) {
	log := p.logger
	run := history.NewRun(p.now())

	var known int
	items, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	log.Info("Fetched items", "count", len(items))

	if p.history != nil {
		items, err = p.history.RememberItems(items, run.StartedAt.Time)
		if err != nil {
			return nil, err
		}
		known, err = p.history.CountItems()
		if err != nil {
			return nil, err
		}
		log.Info("Remembered items", "distinct_urls_known", known)
	}

	digest, err := itemsDigest(items)
	if err != nil {
		return nil, err
	}

	published, err := p.publisher.Publish(items, p.now())
	if err != nil {
		return nil, err
	}
	stats, err := p.storage.GetFileStats(published.FeedPath)
	if err != nil {
		return nil, err
	}
	log.Info("Wrote feed", "path", published.FeedPath, "count", published.Manifest.Count, "size_bytes", stats.SizeBytes)
	log.Info("Wrote manifest", "path", p.cfg.ManifestPath, "json_path", published.Manifest.JSONPath)

	if err := render.Write(p.storage, p.cfg.TemplatesDir, p.cfg.OutputHTML, render.OptionsFromConfig(p.cfg), items, p.now()); err != nil {
		return nil, err
	}
	log.Info("Wrote HTML", "path", p.cfg.OutputHTML)

	run.FinishedAt = models.NewTimestamp(p.now())
	run.JSONPath = published.Manifest.JSONPath
	run.ItemCount = len(items)
	run.FeedDigest = digest

	out := &Outcome{Run: run, Published: published, FeedBytes: stats.SizeBytes, KnownURLs: known}
	if p.history == nil {
		return out, nil
	}

	last, err := p.history.LastRun()
	switch {
	case err == nil:
		out.Unchanged = last.FeedDigest == digest
	case !errors.Is(err, history.ErrNoRuns):
		return nil, err
	}
	if out.Unchanged {
		log.Info("Feed unchanged since last run", "last_run", last.ID)
	}

	if err := p.history.RecordRun(run); err != nil {
		return nil, err
	}
	return out, nil
}

// itemsDigest hashes the published item list. The document's updated_at is
// left out so identical content yields an identical digest.
func itemsDigest(items []models.FeedItem) (string, error) {
	if items == nil {
		items = []models.FeedItem{}
	}
	data, err := storage.EncodeJSON(items)
	if err != nil {
		return "", err
	}
	return history.Digest(data), nil
}

// Every runs the pipeline immediately and then once per interval until ctx
// is done. A failed run is logged and the next one proceeds.
func (p *Pipeline) Every(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := p.Once(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Error("Run failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
