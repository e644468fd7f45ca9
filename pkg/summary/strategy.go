// Package summary turns the current feed into a trend report.
package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/discuss-feed/models"
	"github.com/dtnitsch/discuss-feed/pkg/classify"
)

// Input is what every strategy summarizes.
type Input struct {
	Items  []models.FeedItem
	Trends *classify.Trends
}

// Strategy produces a Markdown summary.
type Strategy interface {
	Name() string
	Summarize(ctx context.Context, in Input) (string, error)
}

// Chain tries strategies in order and returns the first success.
type Chain []Strategy

// NewChain returns the OpenAI strategy when apiKey is set, followed by the
// rules strategy, which cannot fail.
func NewChain(apiKey, model string) Chain {
	var c Chain
	if apiKey != "" {
		c = append(c, NewOpenAIStrategy(apiKey, model))
	}
	return append(c, RulesStrategy{})
}

// Summarize returns the summary and the name of the strategy that wrote it.
func (c Chain) Summarize(ctx context.Context, in Input, logger *slog.Logger) (string, string, error) {
	var errs []error
	for _, s := range c {
		text, err := s.Summarize(ctx, in)
		if err == nil {
			return text, s.Name(), nil
		}
		logger.Warn("Summary strategy failed, trying next", "strategy", s.Name(), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
	}
	return "", "", fmt.Errorf("every summary strategy failed: %w", errors.Join(errs...))
}
