package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dtnitsch/discuss-feed/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	t.Cleanup(func() { _ = database.Close() })
	return database
}

func day(d, h int) time.Time {
	return time.Date(2024, 1, d, h, 0, 0, 0, time.UTC)
}

func TestRememberItems_KeepsEarliestFirstSeen(t *testing.T) {
	db := setupTestDB(t)

	first := []models.FeedItem{
		{URL: "https://x/1", Title: "one", Company: "Google", FirstSeen: models.NewTimestamp(day(15, 8))},
	}
	got, err := db.RememberItems(first, day(15, 8))
	if err != nil {
		t.Fatalf("RememberItems() error = %v", err)
	}
	if got[0].FirstSeen.String() != "2024-01-15T08:00:00+00:00" {
		t.Errorf("first run FirstSeen = %s", got[0].FirstSeen)
	}

	second := []models.FeedItem{
		{URL: "https://x/1", Title: "one (edited)", Company: "Google", FirstSeen: models.NewTimestamp(day(16, 9))},
		{URL: "https://x/2", Title: "two", Company: "Meta", FirstSeen: models.NewTimestamp(day(16, 9))},
	}
	got, err = db.RememberItems(second, day(16, 9))
	if err != nil {
		t.Fatalf("RememberItems() error = %v", err)
	}

	tests := []struct {
		idx       int
		wantFirst string
		wantTitle string
	}{
		{0, "2024-01-15T08:00:00+00:00", "one (edited)"},
		{1, "2024-01-16T09:00:00+00:00", "two"},
	}
	for _, tt := range tests {
		if got[tt.idx].FirstSeen.String() != tt.wantFirst || got[tt.idx].Title != tt.wantTitle {
			t.Errorf("item %d = %+v, want first_seen %s title %q", tt.idx, got[tt.idx], tt.wantFirst, tt.wantTitle)
		}
	}

	var lastSeen string
	if err := db.QueryRow("SELECT last_seen FROM items WHERE url = ?", "https://x/1").Scan(&lastSeen); err != nil {
		t.Fatalf("query last_seen: %v", err)
	}
	if lastSeen != "2024-01-16T09:00:00+00:00" {
		t.Errorf("last_seen = %s", lastSeen)
	}

	if n, err := db.CountItems(); err != nil || n != 2 {
		t.Errorf("CountItems() = %d, %v, want 2", n, err)
	}
}

func TestRememberItems_ZeroFirstSeenUsesNow(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.RememberItems([]models.FeedItem{{URL: "u", Title: "t", Company: "c"}}, day(20, 12))
	if err != nil {
		t.Fatalf("RememberItems() error = %v", err)
	}
	if got[0].FirstSeen.String() != "2024-01-20T12:00:00+00:00" {
		t.Errorf("FirstSeen = %s", got[0].FirstSeen)
	}
}

func TestRuns(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.LastRun(); !errors.Is(err, ErrNoRuns) {
		t.Fatalf("LastRun() on empty db error = %v, want ErrNoRuns", err)
	}

	for i, h := range []int{8, 10, 9} {
		run := NewRun(day(15, h))
		run.FinishedAt = models.NewTimestamp(day(15, h).Add(time.Minute))
		run.JSONPath = "data/latest.json"
		run.ItemCount = i
		run.FeedDigest = Digest([]byte{byte(i)})
		if err := db.RecordRun(run); err != nil {
			t.Fatalf("RecordRun() error = %v", err)
		}
	}

	runs, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("ListRuns() returned %d runs, want 3", len(runs))
	}
	wantOrder := []int{1, 2, 0}
	for i, r := range runs {
		if r.ItemCount != wantOrder[i] {
			t.Errorf("runs[%d].ItemCount = %d, want %d", i, r.ItemCount, wantOrder[i])
		}
	}
	if runs[0].FinishedAt.String() != "2024-01-15T10:01:00+00:00" {
		t.Errorf("runs[0].FinishedAt = %s", runs[0].FinishedAt)
	}

	limited, err := db.ListRuns(2)
	if err != nil || len(limited) != 2 {
		t.Errorf("ListRuns(2) = %d runs, %v", len(limited), err)
	}

	last, err := db.LastRun()
	if err != nil {
		t.Fatalf("LastRun() error = %v", err)
	}
	if last.ID != runs[0].ID {
		t.Errorf("LastRun().ID = %s, want %s", last.ID, runs[0].ID)
	}
}

func TestNewRun_UniqueIDs(t *testing.T) {
	a, b := NewRun(day(1, 0)), NewRun(day(1, 0))
	if a.ID == b.ID || len(a.ID) != 36 {
		t.Errorf("NewRun() ids %q and %q", a.ID, b.ID)
	}
}

func TestDigest(t *testing.T) {
	a := Digest([]byte(`{"count":1}`))
	if len(a) != 64 {
		t.Errorf("Digest() length = %d, want 64", len(a))
	}
	if a != Digest([]byte(`{"count":1}`)) {
		t.Error("Digest() is not deterministic")
	}
	if a == Digest([]byte(`{"count":2}`)) {
		t.Error("Digest() collides for different input")
	}
}

func TestOpen_CreatesFileAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := db.RememberItems([]models.FeedItem{{URL: "u", Title: "t", Company: "c"}}, day(2, 0)); err != nil {
		t.Fatalf("RememberItems() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer reopened.Close()

	if n, err := reopened.CountItems(); err != nil || n != 1 {
		t.Errorf("CountItems() after reopen = %d, %v, want 1", n, err)
	}
	if reopened.Path() != path {
		t.Errorf("Path() = %s, want %s", reopened.Path(), path)
	}
}
