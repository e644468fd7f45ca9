package models

import (
	"fmt"
	"time"
)

// TimestampLayout is ISO-8601 with second precision and a numeric offset,
// e.g. 2024-01-15T08:30:00+00:00.
const TimestampLayout = "2006-01-02T15:04:05-07:00"

// Timestamp is a UTC instant serialized with second precision.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to whole seconds in UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Second)}
}

// String formats the timestamp using TimestampLayout.
func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// MarshalYAML renders the timestamp as a plain string.
func (t Timestamp) MarshalYAML() (any, error) {
	return t.String(), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("timestamp must be a JSON string, got %s", data)
	}
	parsed, err := time.Parse(time.RFC3339, string(data[1:len(data)-1]))
	if err != nil {
		return fmt.Errorf("invalid timestamp: %w", err)
	}
	*t = NewTimestamp(parsed)
	return nil
}

// FeedItem is one accepted search result. Its identity key is URL.
type FeedItem struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Snippet   string    `json:"snippet"`
	Company   string    `json:"company"`
	FirstSeen Timestamp `json:"first_seen"`
}

// FeedDocument is the data feed written once per run. It fully replaces
// any prior document at its path.
type FeedDocument struct {
	UpdatedAt Timestamp  `json:"updated_at"`
	Count     int        `json:"count"`
	Items     []FeedItem `json:"items"`
}

// NewFeedDocument builds a document for items, never emitting a null item list.
func NewFeedDocument(items []FeedItem, now time.Time) FeedDocument {
	if items == nil {
		items = []FeedItem{}
	}
	return FeedDocument{
		UpdatedAt: NewTimestamp(now),
		Count:     len(items),
		Items:     items,
	}
}

// ManifestRecord is the fixed-location pointer to the current feed.
type ManifestRecord struct {
	UpdatedAt Timestamp `json:"updated_at"`
	JSONPath  string    `json:"json_path"`
	Count     int       `json:"count"`
}
