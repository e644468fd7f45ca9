package summary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dtnitsch/discuss-feed/models"
	"github.com/dtnitsch/discuss-feed/pkg/classify"
	"github.com/dtnitsch/discuss-feed/pkg/storage"
	"github.com/dtnitsch/discuss-feed/pkg/tally"
)

const topKeywords = 10

// Report is the machine-readable summary written to data/summary.json.
type Report struct {
	CompanyCounts         *tally.Counter    `json:"company_counts"`
	CompanyCategoryCounts companyCategories `json:"company_category_counts"`
	TopCompanies          []tally.Entry     `json:"top_companies"`
	TopKeywords           []string          `json:"top_keywords"`
}

// companyCategories marshals per-company counters in company first-seen
// order.
type companyCategories struct {
	order    []string
	counters map[string]*tally.Counter
}

func (c companyCategories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, company := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(company)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.counters[company])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// BuildReport derives the report from items and their trends.
func BuildReport(items []models.FeedItem, trends *classify.Trends) *Report {
	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = it.Title
	}

	top := trends.Companies.MostCommon(topCompanies)
	if top == nil {
		top = []tally.Entry{}
	}
	keywords := tally.TopKeywords(titles, topKeywords)

	return &Report{
		CompanyCounts: trends.Companies,
		CompanyCategoryCounts: companyCategories{
			order:    trends.Companies.Keys(),
			counters: trends.ByCompany,
		},
		TopCompanies: top,
		TopKeywords:  keywords,
	}
}

// Paths names the three summary outputs.
type Paths struct {
	Markdown string
	JSON     string
	HTML     string
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML converts the Markdown summary to a standalone page.
func RenderHTML(md string) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("failed to render summary HTML: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", html.EscapeString(Title))
	page.WriteString("<link rel=\"stylesheet\" href=\"assets/style.css\">\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// Write stores the Markdown, JSON and HTML outputs, each atomically.
func Write(s *storage.Storage, paths Paths, md string, report *Report) error {
	if err := s.SaveFile(paths.Markdown, []byte(md)); err != nil {
		return fmt.Errorf("failed to write %s: %w", paths.Markdown, err)
	}
	if _, err := s.WriteJSON(paths.JSON, report); err != nil {
		return fmt.Errorf("failed to write %s: %w", paths.JSON, err)
	}
	page, err := RenderHTML(md)
	if err != nil {
		return err
	}
	if err := s.SaveFile(paths.HTML, page); err != nil {
		return fmt.Errorf("failed to write %s: %w", paths.HTML, err)
	}
	return nil
}
