package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/dtnitsch/discuss-feed/pkg/classify"
)

const (
	Title = "Daily Interview Feed Summary"

	topCompanies   = 10
	topCategories  = 5
	sampleQuestion = 5
)

// RulesStrategy renders a deterministic report from the trend counts.
type RulesStrategy struct{}

func (RulesStrategy) Name() string { return "rules" }

func (RulesStrategy) Summarize(_ context.Context, in Input) (string, error) {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("# %s", Title)
	add("")

	if in.Trends.Companies.Len() > 0 {
		add("## Top Companies by Mentions")
		for _, e := range in.Trends.Companies.MostCommon(topCompanies) {
			add("- %s: %d questions", e.Key, e.Count)
		}
		add("")

		add("## Trend by Company")
		for _, e := range in.Trends.Companies.MostCommon(0) {
			cats := in.Trends.Categories(e.Key)
			if cats.Len() == 0 {
				continue
			}
			add("- %s:", e.Key)
			for _, c := range cats.MostCommon(topCategories) {
				add("  - %s: %d", c.Key, c.Count)
			}
		}
		add("")
	}

	add("## Sample Questions")
	for i, it := range in.Items {
		if i == sampleQuestion {
			break
		}
		company := it.Company
		if company == "" {
			company = classify.UnknownCompany
		}
		add("- %s: %s (%s)", company, strings.TrimSpace(it.Title), strings.TrimSpace(it.URL))
	}
	add("")

	return strings.Join(lines, "\n"), nil
}
