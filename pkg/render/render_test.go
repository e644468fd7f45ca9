package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/discuss-feed/models"
	"github.com/dtnitsch/discuss-feed/pkg/storage"
)

const testHead = `<!DOCTYPE html>
<html>
<head>
  <title>{{PAGE_TITLE}}</title>
</head>`

const testTail = "<script src='app.js'></script>\n</body>\n</html>\n"

var testNow = time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)

func TestDomID(t *testing.T) {
	tests := []struct {
		company string
		want    string
	}{
		{"Google", "tab-Google"},
		{"Jane Street", "tab-Jane-Street"},
		{"AT&T", "tab-AT-T"},
		{"snake_case-ok", "tab-snake_case-ok"},
	}
	for _, tt := range tests {
		if got := DomID(tt.company); got != tt.want {
			t.Errorf("DomID(%q) = %q, want %q", tt.company, got, tt.want)
		}
	}
}

func TestRenderHead(t *testing.T) {
	tests := []struct {
		name       string
		tpl        string
		opts       Options
		wantRobots int
		wantTitle  string
	}{
		{
			name:       "injects noindex",
			tpl:        testHead,
			opts:       Options{Title: "Daily <Feed>", Noindex: true},
			wantRobots: 1,
			wantTitle:  "<title>Daily &lt;Feed&gt;</title>",
		},
		{
			name:       "keeps existing robots meta",
			tpl:        strings.Replace(testHead, "</head>", `<meta name="ROBOTS" content="none"></head>`, 1),
			opts:       Options{Title: "T", Noindex: true},
			wantRobots: 0,
			wantTitle:  "<title>T</title>",
		},
		{
			name:       "noindex disabled",
			tpl:        testHead,
			opts:       Options{Title: "T"},
			wantRobots: 0,
			wantTitle:  "<title>T</title>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderHead(tt.tpl, tt.opts)
			if n := strings.Count(got, robotsMeta); n != tt.wantRobots {
				t.Errorf("renderHead() injected %d robots tags, want %d:\n%s", n, tt.wantRobots, got)
			}
			if !strings.Contains(got, tt.wantTitle) {
				t.Errorf("renderHead() missing %q:\n%s", tt.wantTitle, got)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	items := []models.FeedItem{
		{Company: "Meta", Title: "Meta <onsite>", URL: "https://x/1?a=1&b=2", Snippet: "it's \"hard\""},
		{Company: "Google", Title: "Google phone", URL: "https://x/2"},
		{Company: "Netflix", Title: "not in order", URL: "https://x/3"},
		{Company: "Meta", Title: "Meta OA", URL: "https://x/4"},
	}
	opts := Options{Title: "FAANG Discuss Daily", Noindex: true, CompanyOrder: []string{"Google", "Amazon", "Meta"}}

	page := Build(testHead, testTail, opts, items, testNow)

	mustContain := []string{
		"<h1>FAANG Discuss Daily</h1>",
		"<div class='time'>Updated at 2024-01-15T08:30:00+00:00</div>",
		"aria-controls='tab-Google'",
		"<div id='tab-Meta' class='tabcontent' role='tabpanel' aria-labelledby='tab-Meta-btn'>",
		"<a href='https://x/1?a=1&amp;b=2' target='_blank' rel='noopener'>Meta &lt;onsite&gt;</a>",
		"<div class='snippet'>it&#39;s &#34;hard&#34;</div>",
		"\n<body>\n<h1>",
	}
	for _, want := range mustContain {
		if !strings.Contains(page, want) {
			t.Errorf("Build() missing %q", want)
		}
	}

	if strings.Contains(page, "tab-Amazon") || strings.Contains(page, "not in order") {
		t.Error("Build() rendered a company without items or outside the order")
	}
	if strings.Index(page, "tab-Google") > strings.Index(page, "tab-Meta") {
		t.Error("Build() did not follow company order")
	}
	if strings.Index(page, "Meta &lt;onsite&gt;") > strings.Index(page, "Meta OA") {
		t.Error("Build() reordered items within a company")
	}
	if !strings.HasSuffix(page, testTail) {
		t.Error("Build() does not end with the tail template")
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	tplDir := filepath.Join(dir, "templates")
	if err := os.MkdirAll(tplDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tplDir, HeadTemplate), []byte(testHead), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tplDir, TailTemplate), []byte(testTail), 0644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "index.html")
	s := &storage.Storage{}
	if err := Write(s, tplDir, out, Options{Title: "T", CompanyOrder: []string{"Google"}}, nil, testNow); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "<h1>T</h1>") {
		t.Errorf("Write() output = %s", data)
	}
	if leftovers, _ := filepath.Glob(out + storage.TempPattern); len(leftovers) > 0 {
		t.Errorf("Write() left temporary files behind: %v", leftovers)
	}

	if err := Write(s, filepath.Join(dir, "missing"), out, Options{}, nil, testNow); err == nil {
		t.Error("Write() with missing templates should fail")
	}
}
