package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Defaults for settings the file leaves out.
const (
	DefaultPageTitle       = "FAANG Discuss Daily"
	DefaultSite            = "leetcode.com/discuss"
	DefaultMaxResults      = 40
	DefaultOutputHTML      = "index.html"
	DefaultManifest        = "data/manifest.json"
	DefaultSummaryMarkdown = "summary.md"
	DefaultSummaryJSON     = "data/summary.json"
	DefaultSummaryHTML     = "summary.html"
	DefaultHistoryDB       = "data/history.db"
	DefaultOpenAIModel     = "gpt-4o-mini"
)

var (
	DefaultIntents   = []string{"interview", "onsite", "phone", "screen", "OA", "questions"}
	DefaultPathAllow = []string{`^https?://leetcode\.com/discuss/(?:interview-question|study-guide|general-discussion|interview-experience)/`}
	DefaultKeywords  = []string{"onsite", "phone", "screen", "oa", "interview", "experience", "question", "questions"}
)

// settings mirrors config/settings.json. Pointer and nil-slice fields tell
// "absent" apart from an explicit zero value.
type settings struct {
	Page struct {
		Title        *string  `json:"title" yaml:"title"`
		Noindex      *bool    `json:"noindex" yaml:"noindex"`
		CompanyOrder []string `json:"company_order" yaml:"company_order"`
	} `json:"page" yaml:"page"`

	Query struct {
		Site       *string  `json:"site" yaml:"site"`
		MaxResults *int     `json:"max_results" yaml:"max_results"`
		Companies  []string `json:"companies" yaml:"companies"`
		Intents    []string `json:"intents" yaml:"intents"`
	} `json:"query" yaml:"query"`

	Filters struct {
		PathAllow []string `json:"path_allow" yaml:"path_allow"`
		Keywords  []string `json:"keywords" yaml:"keywords"`
		Languages []string `json:"languages" yaml:"languages"`
	} `json:"filters" yaml:"filters"`

	Output struct {
		HTML            *string `json:"html" yaml:"html"`
		JSONManifest    *string `json:"json_manifest" yaml:"json_manifest"`
		JSONRandomize   *bool   `json:"json_randomize" yaml:"json_randomize"`
		JSONDailyStable *bool   `json:"json_daily_stable" yaml:"json_daily_stable"`
		SummaryMarkdown *string `json:"summary_markdown" yaml:"summary_markdown"`
		SummaryJSON     *string `json:"summary_json" yaml:"summary_json"`
		SummaryHTML     *string `json:"summary_html" yaml:"summary_html"`
		HistoryDB       *string `json:"history_db" yaml:"history_db"`
	} `json:"output" yaml:"output"`

	Summary struct {
		Model *string `json:"openai_model" yaml:"openai_model"`
	} `json:"summary" yaml:"summary"`
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// loadSettings parses YAML by extension and everything else as JSON with
// comments and trailing commas allowed.
func loadSettings(path string) (*settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var s settings
	if isYAML(path) {
		err = yaml.Unmarshal(data, &s)
	} else {
		err = json.Unmarshal(jsonc.ToJSON(data), &s)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	return &s, nil
}

func orString(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func orBool(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func orInt(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func orList(v, def []string) []string {
	if v == nil {
		return append([]string(nil), def...)
	}
	return v
}
