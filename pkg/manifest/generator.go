package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/dtnitsch/discuss-feed/models"
	"github.com/dtnitsch/discuss-feed/pkg/storage"
)

// Publish records feedPath, relative to root, as the current feed. The
// manifest is always fully overwritten; the previous record is never read.
// Callers must write the feed before publishing so the manifest never
// points at a missing or partial file.
func Publish(s *storage.Storage, manifestPath, feedPath string, count int, root string, now time.Time) (*models.ManifestRecord, error) {
	rel, err := RelativePath(root, feedPath)
	if err != nil {
		return nil, fmt.Errorf("error computing manifest json_path for %s: %w", feedPath, err)
	}

	record := &models.ManifestRecord{
		UpdatedAt: models.NewTimestamp(now),
		JSONPath:  rel,
		Count:     count,
	}

	if _, err := s.WriteJSON(manifestPath, record); err != nil {
		return nil, fmt.Errorf("error saving manifest: %w", err)
	}
	return record, nil
}

// Load reads the manifest at manifestPath.
func Load(s *storage.Storage, manifestPath string) (*models.ManifestRecord, error) {
	var record models.ManifestRecord
	if err := s.ReadJSON(manifestPath, &record); err != nil {
		return nil, fmt.Errorf("error loading manifest: %w", err)
	}
	if record.JSONPath == "" {
		return nil, fmt.Errorf("error loading manifest: %s has no json_path", manifestPath)
	}
	return &record, nil
}

// Located is a manifest together with the feed it points at.
type Located struct {
	Record   *models.ManifestRecord
	FeedPath string
	Document *models.FeedDocument
}

// Locate follows the manifest to the current feed and checks that the feed
// lies under root, exists and agrees with the manifest's count.
func Locate(s *storage.Storage, root, manifestPath string) (*Located, error) {
	record, err := Load(s, manifestPath)
	if err != nil {
		return nil, err
	}

	feedPath := Abs(root, record.JSONPath)
	if _, err := RelativePath(root, feedPath); err != nil {
		return nil, fmt.Errorf("error following manifest json_path %s: %w", record.JSONPath, err)
	}
	var doc models.FeedDocument
	if err := s.ReadJSON(feedPath, &doc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFeedMissing, record.JSONPath)
		}
		return nil, err
	}
	if doc.Count != record.Count {
		return nil, fmt.Errorf("%w: feed has %d, manifest has %d", ErrCountMismatch, doc.Count, record.Count)
	}

	return &Located{Record: record, FeedPath: feedPath, Document: &doc}, nil
}
