// Package models defines data structures shared by the pipeline stages.
package models

// Company is one configured company and the aliases that identify it in
// search results. Order matters: the first matching company wins.
type Company struct {
	Name    string
	Aliases []string
}

// Category is one topic bucket used for trend summaries.
type Category struct {
	Name     string
	Keywords []string
}

// Config is the immutable configuration bundle assembled once at startup.
// Components receive the values they need from it; none of them read the
// environment themselves.
type Config struct {
	ProjectRoot  string
	CompaniesCfg string
	SettingsCfg  string
	TemplatesDir string
	AssetsDir    string

	Companies  []Company
	Categories []Category

	CSEID  string
	CSEKey string

	PageTitle    string
	PageNoindex  bool
	CompanyOrder []string

	SiteHost   string
	MaxResults int
	QCompanies []string
	QIntents   []string

	AllowPatterns []string
	KeywordWords  []string
	Languages     []string

	OutputHTML      string
	ManifestPath    string
	JSONRandomize   bool
	JSONDailyStable bool
	JSONSalt        string

	SummaryMarkdown string
	SummaryJSON     string
	SummaryHTML     string
	HistoryDB       string

	OpenAIKey   string
	OpenAIModel string
}
