package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/dtnitsch/discuss-feed/models"
	"github.com/dtnitsch/discuss-feed/pkg/filter"
)

// fakeAPI serves numbered pages of results. pages maps a start index to the
// response for that page; any other start gets totalResults "0".
type fakeAPI struct {
	mu      sync.Mutex
	pages   map[int]any
	failAt  int
	starts  []int
	queries []string
}

func (a *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, _ := strconv.Atoi(q.Get("start"))

	a.mu.Lock()
	a.starts = append(a.starts, start)
	a.queries = append(a.queries, r.URL.RawQuery)
	a.mu.Unlock()

	if a.failAt != 0 && start == a.failAt {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
		return
	}
	page, ok := a.pages[start]
	if !ok {
		page = map[string]any{"searchInformation": map[string]string{"totalResults": "0"}}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(page)
}

func (a *fakeAPI) requested() ([]int, []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]int(nil), a.starts...), append([]string(nil), a.queries...)
}

func result(n int, title string) map[string]string {
	return map[string]string{
		"title":   title,
		"link":    fmt.Sprintf("https://leetcode.com/discuss/interview-question/%d/post", n),
		"snippet": "onsite",
	}
}

func pageOf(total string, results ...map[string]string) map[string]any {
	return map[string]any{
		"items":             results,
		"searchInformation": map[string]string{"totalResults": total},
	}
}

func newTestFetcher(t *testing.T, api *fakeAPI, maxResults int) *Fetcher {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	f, err := filter.New(filter.Options{
		AllowPatterns: []string{`^https?://leetcode\.com/discuss/interview-question/`},
		Keywords:      []string{"onsite"},
		Companies:     []models.Company{{Name: "Google", Aliases: []string{"google"}}},
	})
	if err != nil {
		t.Fatalf("filter.New() error = %v", err)
	}

	now := time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)
	return NewFetcher(NewClient(srv.URL, "engine", "secret"), f, Options{
		Query:      "site:leetcode.com/discuss (Google) (onsite)",
		MaxResults: maxResults,
		Limiter:    rate.NewLimiter(rate.Inf, 1),
		Logger:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Now:        func() time.Time { return now },
	})
}

func TestBuildQuery(t *testing.T) {
	got := BuildQuery("leetcode.com/discuss", []string{"Google", "Meta"}, []string{"onsite", "OA"})
	want := "site:leetcode.com/discuss (Google OR Meta) (onsite OR OA)"
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestFetch_PaginatesUntilNoResults(t *testing.T) {
	api := &fakeAPI{pages: map[int]any{
		1:  pageOf("25", result(1, "Google onsite"), result(2, "Netflix onsite")),
		11: pageOf("25", result(3, "Google onsite again"), result(1, "Google onsite")),
	}}
	f := newTestFetcher(t, api, 40)

	items, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Fetch() returned %d items, want 2: %+v", len(items), items)
	}
	if items[0].Company != "Google" || items[0].FirstSeen.String() != "2024-01-15T08:30:00+00:00" {
		t.Errorf("items[0] = %+v", items[0])
	}
	starts, queries := api.requested()
	if want := []int{1, 11, 21}; fmt.Sprint(starts) != fmt.Sprint(want) {
		t.Errorf("requested starts = %v, want %v", starts, want)
	}

	params := queries[0]
	for _, p := range []string{"sort=date", "safe=off", "num=10", "cx=engine", "key=secret"} {
		if !containsParam(params, p) {
			t.Errorf("query %q missing %s", params, p)
		}
	}
}

func containsParam(raw, param string) bool {
	for _, kv := range strings.Split(raw, "&") {
		if kv == param {
			return true
		}
	}
	return false
}

func TestFetch_StopsAtMaxResults(t *testing.T) {
	api := &fakeAPI{pages: map[int]any{
		1:  pageOf("100", result(1, "Google onsite"), result(2, "Google onsite"), result(3, "Google onsite")),
		11: pageOf("100", result(4, "Google onsite")),
	}}
	f := newTestFetcher(t, api, 2)

	items, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(items) != 2 {
		t.Errorf("Fetch() returned %d items, want 2", len(items))
	}
	if starts, _ := api.requested(); len(starts) != 1 {
		t.Errorf("made %d requests, want 1", len(starts))
	}
}

func TestFetch_ZeroMaxResultsRequestsNothing(t *testing.T) {
	for _, max := range []int{0, -1} {
		api := &fakeAPI{pages: map[int]any{1: pageOf("100", result(1, "Google onsite"))}}
		f := newTestFetcher(t, api, max)

		items, err := f.Fetch(context.Background())
		if err != nil {
			t.Fatalf("Fetch() with max %d error = %v", max, err)
		}
		if items == nil || len(items) != 0 {
			t.Errorf("Fetch() with max %d = %v, want an empty list", max, items)
		}
		if starts, _ := api.requested(); len(starts) != 0 {
			t.Errorf("Fetch() with max %d requested %v, want nothing", max, starts)
		}
	}
}

func TestFetch_StopsAfterLastPage(t *testing.T) {
	pages := make(map[int]any)
	for start := 1; start <= 101; start += PageSize {
		pages[start] = pageOf("1000", result(start, "Meta only"))
	}
	api := &fakeAPI{pages: pages}
	f := newTestFetcher(t, api, 40)

	if _, err := f.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if starts, _ := api.requested(); len(starts) != 10 || starts[9] != LastStart {
		t.Errorf("requested starts = %v, want 1..%d", starts, LastStart)
	}
}

func TestFetch_RequestErrorKeepsCollected(t *testing.T) {
	api := &fakeAPI{
		pages: map[int]any{
			1:  pageOf("50", result(1, "Google onsite")),
			21: pageOf("50", result(2, "Google onsite")),
		},
		failAt: 11,
	}
	f := newTestFetcher(t, api, 40)

	items, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(items) != 1 {
		t.Errorf("Fetch() returned %d items, want 1", len(items))
	}
	if starts, _ := api.requested(); len(starts) != 2 {
		t.Errorf("requested starts = %v, want [1 11]", starts)
	}
}

func TestFetch_HTMLSnippetFallback(t *testing.T) {
	api := &fakeAPI{pages: map[int]any{
		1: map[string]any{
			"items": []map[string]string{{
				"title":       "Google",
				"link":        "https://leetcode.com/discuss/interview-question/7/x",
				"htmlSnippet": "<b>Onsite</b> &amp; phone\n screen",
			}},
			"searchInformation": map[string]string{"totalResults": "0"},
		},
	}}
	f := newTestFetcher(t, api, 40)

	items, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(items) != 1 || items[0].Snippet != "Onsite & phone screen" {
		t.Errorf("Fetch() = %+v, want snippet from htmlSnippet", items)
	}
}

func TestFetch_ContextCanceled(t *testing.T) {
	api := &fakeAPI{}
	f := newTestFetcher(t, api, 40)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.Fetch(ctx); err == nil {
		t.Error("Fetch() with canceled context should fail")
	}
}

func TestClient_SearchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, "cx", "key").Search(context.Background(), "q", 1, 10); err == nil {
		t.Error("Search() on 403 should fail")
	}
}
