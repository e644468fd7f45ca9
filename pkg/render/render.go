// Package render builds the static HTML page that lists the feed by company.
package render

import (
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/discuss-feed/models"
	"github.com/dtnitsch/discuss-feed/pkg/storage"
)

const (
	HeadTemplate = "head.html"
	TailTemplate = "tail.html"

	titlePlaceholder = "{{PAGE_TITLE}}"
	robotsMeta       = `  <meta name="robots" content="noindex,nofollow">`
)

// Options controls page content.
type Options struct {
	Title        string
	Noindex      bool
	CompanyOrder []string
}

// OptionsFromConfig picks the page settings out of cfg.
func OptionsFromConfig(cfg *models.Config) Options {
	return Options{
		Title:        cfg.PageTitle,
		Noindex:      cfg.PageNoindex,
		CompanyOrder: cfg.CompanyOrder,
	}
}

var unsafeID = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// DomID is the element id of a company's tab pane.
func DomID(company string) string {
	return "tab-" + unsafeID.ReplaceAllString(company, "-")
}

// hasRobotsMeta reports whether head already carries a robots meta tag.
func hasRobotsMeta(head string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(head))
	if err != nil {
		return strings.Contains(head, `name="robots"`)
	}
	found := false
	doc.Find("meta[name]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name, _ := s.Attr("name")
		found = strings.EqualFold(strings.TrimSpace(name), "robots")
		return !found
	})
	return found
}

// renderHead fills the title placeholder and injects a noindex meta tag
// before </head> when requested and none is present.
func renderHead(tpl string, opts Options) string {
	head := strings.ReplaceAll(tpl, titlePlaceholder, html.EscapeString(opts.Title))
	if opts.Noindex && !hasRobotsMeta(head) {
		head = strings.Replace(head, "</head>", robotsMeta+"\n</head>", 1)
	}
	return head
}

// Build assembles the page from the head and tail templates. Companies are
// shown in CompanyOrder; companies without items get no tab.
func Build(headTpl, tailTpl string, opts Options, items []models.FeedItem, now time.Time) string {
	groups := make(map[string][]models.FeedItem)
	for _, it := range items {
		groups[it.Company] = append(groups[it.Company], it)
	}

	var available []string
	for _, c := range opts.CompanyOrder {
		if len(groups[c]) > 0 {
			available = append(available, c)
		}
	}

	var parts []string
	parts = append(parts,
		fmt.Sprintf("<h1>%s</h1>", html.EscapeString(opts.Title)),
		fmt.Sprintf("<div class='time'>Updated at %s</div>", html.EscapeString(models.NewTimestamp(now).String())),
	)

	tabs := []string{"<div class='tab' role='tablist' aria-label='Companies'>"}
	for _, c := range available {
		id := DomID(c)
		tabs = append(tabs, fmt.Sprintf(
			"<button class='tablink' role='tab' aria-controls='%s' onclick=\"openCompany(event,'%s')\">%s</button>",
			id, id, html.EscapeString(c)))
	}
	tabs = append(tabs, "</div>")
	parts = append(parts, strings.Join(tabs, "\n"))

	var panes []string
	for _, c := range available {
		id := DomID(c)
		panes = append(panes,
			fmt.Sprintf("<div id='%s' class='tabcontent' role='tabpanel' aria-labelledby='%s-btn'>", id, id),
			"<div class='grid'>")
		for _, it := range groups[c] {
			panes = append(panes, card(it))
		}
		panes = append(panes, "</div></div>")
	}
	parts = append(parts, strings.Join(panes, "\n"))

	return renderHead(headTpl, opts) + "\n<body>\n" + strings.Join(parts, "\n") + "\n" + tailTpl
}

func card(it models.FeedItem) string {
	return "<div class='card'>" +
		fmt.Sprintf("<div class='item-title'><a href='%s' target='_blank' rel='noopener'>%s</a></div>",
			html.EscapeString(it.URL), html.EscapeString(it.Title)) +
		fmt.Sprintf("<div class='snippet'>%s</div>", html.EscapeString(it.Snippet)) +
		"</div>"
}

// Write reads the templates from templatesDir, builds the page and replaces
// outPath atomically.
func Write(s *storage.Storage, templatesDir, outPath string, opts Options, items []models.FeedItem, now time.Time) error {
	head, err := s.ReadFile(filepath.Join(templatesDir, HeadTemplate))
	if err != nil {
		return err
	}
	tail, err := s.ReadFile(filepath.Join(templatesDir, TailTemplate))
	if err != nil {
		return err
	}

	page := Build(string(head), string(tail), opts, items, now)
	if err := s.SaveFile(outPath, []byte(page)); err != nil {
		return fmt.Errorf("failed to write HTML %s: %w", outPath, err)
	}
	return nil
}
