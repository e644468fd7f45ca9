// Package classify assigns feed items to topic categories by keyword and
// aggregates per-company trends.
package classify

import (
	"strings"

	"github.com/dtnitsch/discuss-feed/models"
	"github.com/dtnitsch/discuss-feed/pkg/tally"
)

// UnknownCompany labels items that carry no company.
const UnknownCompany = "Unknown"

// Classifier matches text against an ordered category table.
type Classifier struct {
	categories []models.Category
}

// New returns a Classifier over categories. A nil table selects the
// defaults; an empty one classifies everything as Other. Keywords are matched
// case-insensitively.
func New(categories []models.Category) *Classifier {
	if categories == nil {
		categories = DefaultCategories()
	}
	lowered := make([]models.Category, len(categories))
	for i, c := range categories {
		kws := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		lowered[i] = models.Category{Name: c.Name, Keywords: kws}
	}
	return &Classifier{categories: lowered}
}

// ClassifyItem returns, in table order, every category with at least one
// keyword occurring as a substring of "title snippet". Items matching
// nothing are classified as Other.
func (c *Classifier) ClassifyItem(title, snippet string) []string {
	text := strings.ToLower(title + " " + snippet)

	var hits []string
	for _, cat := range c.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(text, kw) {
				hits = append(hits, cat.Name)
				break
			}
		}
	}
	if len(hits) == 0 {
		hits = append(hits, Other)
	}
	return hits
}

// Trends holds item counts per company and category counts per company.
type Trends struct {
	Companies *tally.Counter
	ByCompany map[string]*tally.Counter
}

// Categories returns the category counter for company, never nil.
func (t *Trends) Categories(company string) *tally.Counter {
	if c, ok := t.ByCompany[company]; ok {
		return c
	}
	return tally.NewCounter()
}

// BuildTrends counts items per company and classifies each item.
func (c *Classifier) BuildTrends(items []models.FeedItem) *Trends {
	t := &Trends{
		Companies: tally.NewCounter(),
		ByCompany: make(map[string]*tally.Counter),
	}
	for _, it := range items {
		company := it.Company
		if company == "" {
			company = UnknownCompany
		}
		t.Companies.Inc(company)

		counter, ok := t.ByCompany[company]
		if !ok {
			counter = tally.NewCounter()
			t.ByCompany[company] = counter
		}
		for _, cat := range c.ClassifyItem(it.Title, it.Snippet) {
			counter.Inc(cat)
		}
	}
	return t
}
