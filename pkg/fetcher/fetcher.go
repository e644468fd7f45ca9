// Package fetcher collects candidate feed items from the search API.
package fetcher

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/dtnitsch/discuss-feed/models"
	"github.com/dtnitsch/discuss-feed/pkg/filter"
)

const (
	PageSize  = 10
	LastStart = 91
	// PageInterval spaces consecutive page requests.
	PageInterval = 600 * time.Millisecond
)

// Options configures a Fetcher.
type Options struct {
	Query string
	// MaxResults caps accepted items. Zero or less requests nothing.
	MaxResults int
	// Limiter throttles page requests; nil means one page per PageInterval.
	Limiter *rate.Limiter
	Logger  *slog.Logger
	Now     func() time.Time
}

// Fetcher pages through search results and keeps those the filter accepts.
type Fetcher struct {
	searcher Searcher
	filter   *filter.Filter
	opts     Options
}

func NewFetcher(searcher Searcher, f *filter.Filter, opts Options) *Fetcher {
	if opts.Limiter == nil {
		opts.Limiter = rate.NewLimiter(rate.Every(PageInterval), 1)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Fetcher{searcher: searcher, filter: f, opts: opts}
}

// Fetch requests pages until MaxResults items are accepted, the API reports
// no results, the last page is reached, or a request fails. A failed request
// ends the fetch with whatever was collected so far. Only context
// cancellation is returned as an error.
func (f *Fetcher) Fetch(ctx context.Context) ([]models.FeedItem, error) {
	log := f.opts.Logger
	var items []models.FeedItem

	for start := 1; start <= LastStart && len(items) < f.opts.MaxResults; start += PageSize {
		if err := f.opts.Limiter.Wait(ctx); err != nil {
			return nil, err
		}

		log.Debug("Fetching search page", "start", start)
		page, err := f.searcher.Search(ctx, f.opts.Query, start, PageSize)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn("Search request failed, keeping results so far", "start", start, "error", err)
			break
		}

		accepted := 0
		for _, it := range page.Items {
			snippet := it.Snippet
			if snippet == "" && it.HTMLSnippet != "" {
				snippet = plainText(it.HTMLSnippet)
			}
			company, ok := f.filter.Accept(it.Title, snippet, it.Link)
			if !ok {
				continue
			}
			items = append(items, models.FeedItem{
				Title:     it.Title,
				URL:       it.Link,
				Snippet:   snippet,
				Company:   company,
				FirstSeen: models.NewTimestamp(f.opts.Now()),
			})
			accepted++
		}
		log.Info("Fetched search page", "start", start, "results", len(page.Items), "accepted", accepted)

		if page.SearchInformation.TotalResults == "0" {
			break
		}
	}

	return filter.Dedup(items, f.opts.MaxResults), nil
}

// plainText strips markup from an HTML fragment and collapses whitespace.
func plainText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
