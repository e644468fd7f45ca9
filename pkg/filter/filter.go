// Package filter decides which search results become feed items.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dtnitsch/discuss-feed/models"
)

// Options configures a Filter. Empty AllowPatterns or Keywords disable the
// corresponding check.
type Options struct {
	AllowPatterns []string
	Keywords      []string
	Companies     []models.Company
	Languages     []string
}

type companyMatcher struct {
	name string
	rx   *regexp.Regexp
}

// Filter applies the URL allow-list, keyword, company and language checks.
type Filter struct {
	allow     *regexp.Regexp
	keywords  *regexp.Regexp
	companies []companyMatcher
	languages *LanguageFilter
}

// New compiles the configured patterns. All matching is case-insensitive.
func New(opts Options) (*Filter, error) {
	f := &Filter{}

	if len(opts.AllowPatterns) > 0 {
		rx, err := regexp.Compile("(?i)" + strings.Join(opts.AllowPatterns, "|"))
		if err != nil {
			return nil, fmt.Errorf("failed to compile path_allow patterns: %w", err)
		}
		f.allow = rx
	}

	if len(opts.Keywords) > 0 {
		f.keywords = regexp.MustCompile(`(?i)\b(` + quoteAll(opts.Keywords) + `)\b`)
	}

	for _, c := range opts.Companies {
		aliases := c.Aliases
		if len(aliases) == 0 {
			aliases = []string{c.Name}
		}
		f.companies = append(f.companies, companyMatcher{
			name: c.Name,
			rx:   regexp.MustCompile("(?i)" + quoteAll(aliases)),
		})
	}

	if len(opts.Languages) > 0 {
		lf, err := NewLanguageFilter(opts.Languages)
		if err != nil {
			return nil, err
		}
		f.languages = lf
	}

	return f, nil
}

func quoteAll(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}

// AllowedURL reports whether link is non-empty and passes the allow-list.
func (f *Filter) AllowedURL(link string) bool {
	if link == "" {
		return false
	}
	return f.allow == nil || f.allow.MatchString(link)
}

// DetectCompany returns the first configured company whose aliases occur in
// text, or "" when none does.
func (f *Filter) DetectCompany(text string) string {
	for _, c := range f.companies {
		if c.rx.MatchString(text) {
			return c.name
		}
	}
	return ""
}

// Accept runs every check against a single result and returns the detected
// company. ok is false when the result must be dropped.
func (f *Filter) Accept(title, snippet, link string) (company string, ok bool) {
	if !f.AllowedURL(link) {
		return "", false
	}

	combo := title + " " + snippet + " " + link
	if f.keywords != nil && !f.keywords.MatchString(combo) {
		return "", false
	}

	company = f.DetectCompany(combo)
	if company == "" {
		return "", false
	}

	if f.languages != nil && !f.languages.Allowed(title+" "+snippet) {
		return "", false
	}

	return company, true
}

// Dedup keeps the first item per URL, preserving order, and caps the result
// at max entries. max <= 0 means no cap.
func Dedup(items []models.FeedItem, max int) []models.FeedItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]models.FeedItem, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it.URL]; dup {
			continue
		}
		seen[it.URL] = struct{}{}
		out = append(out, it)
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}
