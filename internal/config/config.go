// Package config assembles the process configuration from the project tree
// and the environment. It is the only place that reads environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/discuss-feed/models"
	"github.com/dtnitsch/discuss-feed/pkg/classify"
)

// Environment variables.
const (
	EnvWorkspace      = "GITHUB_WORKSPACE"
	EnvCompanyConfig  = "COMPANY_CONFIG"
	EnvSettingsConfig = "SETTINGS_CONFIG"
	EnvCSEID          = "CSE_ID"
	EnvCSEKey         = "CSE_KEY"
	EnvJSONSalt       = "JSON_SALT"
	EnvOpenAIKey      = "OPENAI_API_KEY"
)

var (
	// ErrMissingFile is returned when a required project file does not exist.
	ErrMissingFile = errors.New("missing file")
	// ErrMissingCredentials is returned when the search API is not configured.
	ErrMissingCredentials = errors.New("missing search credentials")
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load detects the project root and builds the configuration. Missing
// search credentials are not an error here; see RequireSearch.
func Load(lookup LookupFunc) (*models.Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	root, err := ProjectRoot(lookup)
	if err != nil {
		return nil, err
	}
	return LoadFrom(root, lookup)
}

// ProjectRoot returns GITHUB_WORKSPACE when it names an existing directory,
// else the enclosing git work tree, else the working directory.
func ProjectRoot(lookup LookupFunc) (string, error) {
	if ws, ok := lookup(EnvWorkspace); ok && ws != "" {
		if info, err := os.Stat(ws); err == nil && info.IsDir() {
			return filepath.Abs(ws)
		}
	}

	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err == nil {
		if top := strings.TrimSpace(string(out)); top != "" {
			if _, err := os.Stat(top); err == nil {
				return top, nil
			}
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}

type requiredFile struct {
	path string
	hint string
}

func checkFiles(files []requiredFile) error {
	for _, f := range files {
		if _, err := os.Stat(f.path); err != nil {
			return fmt.Errorf("%w: %s\nHint: %s", ErrMissingFile, f.path, f.hint)
		}
	}
	return nil
}

// LoadFrom builds the configuration for the project rooted at root.
func LoadFrom(root string, lookup LookupFunc) (*models.Config, error) {
	getenv := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	companiesCfg := filepath.Join(root, "config", "companies.json")
	if v := getenv(EnvCompanyConfig); v != "" {
		companiesCfg = v
	}
	settingsCfg := filepath.Join(root, "config", "settings.json")
	if v := getenv(EnvSettingsConfig); v != "" {
		settingsCfg = v
	}
	templatesDir := filepath.Join(root, "templates")
	assetsDir := filepath.Join(root, "assets")

	if err := checkFiles([]requiredFile{
		{companiesCfg, "Put companies.json under <repo-root>/config/ or set COMPANY_CONFIG env."},
		{settingsCfg, "Put settings.json under <repo-root>/config/ or set SETTINGS_CONFIG env."},
		{filepath.Join(templatesDir, "head.html"), "Missing templates/head.html under <repo-root>/templates/"},
		{filepath.Join(templatesDir, "tail.html"), "Missing templates/tail.html under <repo-root>/templates/"},
		{filepath.Join(assetsDir, "style.css"), "Missing assets/style.css under <repo-root>/assets/"},
	}); err != nil {
		return nil, err
	}

	companies, err := loadCompanies(companiesCfg)
	if err != nil {
		return nil, err
	}
	settings, err := loadSettings(settingsCfg)
	if err != nil {
		return nil, err
	}
	categories, err := loadCategories(filepath.Join(root, "config", "categories.json"))
	if err != nil {
		return nil, err
	}

	names := make([]string, len(companies))
	for i, c := range companies {
		names[i] = c.Name
	}

	cfg := &models.Config{
		ProjectRoot:  root,
		CompaniesCfg: companiesCfg,
		SettingsCfg:  settingsCfg,
		TemplatesDir: templatesDir,
		AssetsDir:    assetsDir,

		Companies:  companies,
		Categories: categories,

		CSEID:  getenv(EnvCSEID),
		CSEKey: getenv(EnvCSEKey),

		PageTitle:    orString(settings.Page.Title, DefaultPageTitle),
		PageNoindex:  orBool(settings.Page.Noindex, true),
		CompanyOrder: orList(settings.Page.CompanyOrder, names),

		SiteHost:   orString(settings.Query.Site, DefaultSite),
		MaxResults: orInt(settings.Query.MaxResults, DefaultMaxResults),
		QCompanies: orList(settings.Query.Companies, names),
		QIntents:   orList(settings.Query.Intents, DefaultIntents),

		AllowPatterns: orList(settings.Filters.PathAllow, DefaultPathAllow),
		KeywordWords:  orList(settings.Filters.Keywords, DefaultKeywords),
		Languages:     settings.Filters.Languages,

		OutputHTML:      underRoot(root, orString(settings.Output.HTML, DefaultOutputHTML)),
		ManifestPath:    underRoot(root, orString(settings.Output.JSONManifest, DefaultManifest)),
		JSONRandomize:   orBool(settings.Output.JSONRandomize, true),
		JSONDailyStable: orBool(settings.Output.JSONDailyStable, true),
		JSONSalt:        getenv(EnvJSONSalt),

		SummaryMarkdown: underRoot(root, orString(settings.Output.SummaryMarkdown, DefaultSummaryMarkdown)),
		SummaryJSON:     underRoot(root, orString(settings.Output.SummaryJSON, DefaultSummaryJSON)),
		SummaryHTML:     underRoot(root, orString(settings.Output.SummaryHTML, DefaultSummaryHTML)),
		HistoryDB:       underRoot(root, orString(settings.Output.HistoryDB, DefaultHistoryDB)),

		OpenAIKey:   getenv(EnvOpenAIKey),
		OpenAIModel: orString(settings.Summary.Model, DefaultOpenAIModel),
	}
	return cfg, nil
}

// underRoot resolves a relative output path against root. An empty path
// stays empty, which disables optional outputs.
func underRoot(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, filepath.FromSlash(p))
}

func loadCategories(path string) ([]models.Category, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return classify.DefaultCategories(), nil
	}
	lists, err := readOrderedLists(path)
	if err != nil {
		return nil, err
	}
	out := make([]models.Category, len(lists))
	for i, l := range lists {
		out[i] = models.Category{Name: l.Name, Keywords: l.Values}
	}
	return out, nil
}

func loadCompanies(path string) ([]models.Company, error) {
	lists, err := readOrderedLists(path)
	if err != nil {
		return nil, err
	}
	out := make([]models.Company, len(lists))
	for i, l := range lists {
		out[i] = models.Company{Name: l.Name, Aliases: l.Values}
	}
	return out, nil
}

// RequireSearch reports ErrMissingCredentials unless both CSE_ID and CSE_KEY
// were set.
func RequireSearch(cfg *models.Config) error {
	var missing []string
	if cfg.CSEID == "" {
		missing = append(missing, EnvCSEID)
	}
	if cfg.CSEKey == "" {
		missing = append(missing, EnvCSEKey)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: set %s", ErrMissingCredentials, strings.Join(missing, " and "))
	}
	return nil
}

// Salt returns JSON_SALT for commands that need only the token salt and not
// the whole project configuration.
func Salt(lookup LookupFunc) string {
	v, _ := lookup(EnvJSONSalt)
	return v
}
