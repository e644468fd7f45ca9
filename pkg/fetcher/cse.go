package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultEndpoint is the Custom Search JSON API.
const DefaultEndpoint = "https://www.googleapis.com/customsearch/v1"

// RequestTimeout bounds a single search request.
const RequestTimeout = 30 * time.Second

// SearchItem is one result of a search page.
type SearchItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	HTMLSnippet string `json:"htmlSnippet"`
}

// SearchResponse is the subset of the API response the feed uses.
type SearchResponse struct {
	Items             []SearchItem `json:"items"`
	SearchInformation struct {
		TotalResults string `json:"totalResults"`
	} `json:"searchInformation"`
}

// Searcher runs one page of a search query.
type Searcher interface {
	Search(ctx context.Context, query string, start, num int) (*SearchResponse, error)
}

// Client calls the Custom Search JSON API.
type Client struct {
	client   *http.Client
	endpoint string
	key      string
	cx       string
}

// NewClient returns a Client for the given engine id and API key. An empty
// endpoint selects DefaultEndpoint.
func NewClient(endpoint, cx, key string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		client:   &http.Client{Timeout: RequestTimeout},
		endpoint: endpoint,
		key:      key,
		cx:       cx,
	}
}

// BuildQuery builds "site:<host> (A OR B) (x OR y)".
func BuildQuery(site string, companies, intents []string) string {
	return fmt.Sprintf("site:%s (%s) (%s)", site, strings.Join(companies, " OR "), strings.Join(intents, " OR "))
}

// Search fetches num results starting at the 1-based index start, newest
// first.
func (c *Client) Search(ctx context.Context, query string, start, num int) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("key", c.key)
	params.Set("cx", c.cx)
	params.Set("q", query)
	params.Set("start", strconv.Itoa(start))
	params.Set("num", strconv.Itoa(num))
	params.Set("sort", "date")
	params.Set("safe", "off")

	body, err := c.get(ctx, c.endpoint+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed, status code: %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}
	return bodyBytes, nil
}
