package history

import (
	"fmt"
	"time"

	"github.com/dtnitsch/discuss-feed/models"
)

// RememberItems upserts items and returns copies whose FirstSeen is the
// earliest time their URL was ever recorded. An unknown URL takes the item's
// own FirstSeen, or now when that is zero. Every URL's last_seen becomes now.
func (db *DB) RememberItems(items []models.FeedItem, now time.Time) ([]models.FeedItem, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsert, err := tx.Prepare(`
		INSERT INTO items (url, title, company, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			company = excluded.company,
			first_seen = MIN(items.first_seen, excluded.first_seen),
			last_seen = excluded.last_seen
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare item upsert: %w", err)
	}
	defer upsert.Close()

	lookup, err := tx.Prepare("SELECT first_seen FROM items WHERE url = ?")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare item lookup: %w", err)
	}
	defer lookup.Close()

	seen := models.NewTimestamp(now).String()
	out := make([]models.FeedItem, len(items))
	for i, it := range items {
		first := it.FirstSeen
		if first.IsZero() {
			first = models.NewTimestamp(now)
		}
		if _, err := upsert.Exec(it.URL, it.Title, it.Company, first.String(), seen); err != nil {
			return nil, fmt.Errorf("failed to upsert item %s: %w", it.URL, err)
		}

		var stored string
		if err := lookup.QueryRow(it.URL).Scan(&stored); err != nil {
			return nil, fmt.Errorf("failed to read first_seen for %s: %w", it.URL, err)
		}
		parsed, err := time.Parse(time.RFC3339, stored)
		if err != nil {
			return nil, fmt.Errorf("invalid first_seen %q for %s: %w", stored, it.URL, err)
		}

		it.FirstSeen = models.NewTimestamp(parsed)
		out[i] = it
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit items: %w", err)
	}
	return out, nil
}

// CountItems returns how many distinct URLs have been recorded.
func (db *DB) CountItems() (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM items").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return n, nil
}
