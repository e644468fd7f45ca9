// Package feed publishes a run's items: it resolves the feed path, writes
// the document and then points the manifest at it.
package feed

import (
	"fmt"
	"time"

	"github.com/dtnitsch/discuss-feed/models"
	"github.com/dtnitsch/discuss-feed/pkg/feedpath"
	"github.com/dtnitsch/discuss-feed/pkg/manifest"
	"github.com/dtnitsch/discuss-feed/pkg/storage"
)

// Publisher holds the locations and path policy for one project.
type Publisher struct {
	Storage      *storage.Storage
	Root         string
	ManifestPath string
	Path         feedpath.Options
}

// NewPublisher builds a Publisher from the process configuration.
func NewPublisher(s *storage.Storage, cfg *models.Config) *Publisher {
	return &Publisher{
		Storage:      s,
		Root:         cfg.ProjectRoot,
		ManifestPath: cfg.ManifestPath,
		Path: feedpath.Options{
			Randomize: cfg.JSONRandomize,
			Stable:    cfg.JSONDailyStable,
			Salt:      cfg.JSONSalt,
		},
	}
}

// Result describes a completed publication.
type Result struct {
	FeedPath string
	Manifest *models.ManifestRecord
	// Data is the exact feed bytes written.
	Data []byte
}

// Publish writes items to the resolved feed path and then the manifest.
// The document is complete on disk before the manifest names it. Two
// overlapping runs can still leave the manifest naming the other run's
// document; each file on its own is always whole.
func (p *Publisher) Publish(items []models.FeedItem, now time.Time) (*Result, error) {
	feedPath, err := feedpath.Resolve(p.Path, p.Root, now)
	if err != nil {
		return nil, err
	}

	doc := models.NewFeedDocument(items, now)
	data, err := p.Storage.WriteJSON(feedPath, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to write feed: %w", err)
	}

	record, err := manifest.Publish(p.Storage, p.ManifestPath, feedPath, doc.Count, p.Root, now)
	if err != nil {
		return nil, fmt.Errorf("failed to publish manifest: %w", err)
	}

	return &Result{FeedPath: feedPath, Manifest: record, Data: data}, nil
}
