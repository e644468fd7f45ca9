package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const (
	DefaultModel = "gpt-4o-mini"

	maxTokens   = 600
	temperature = 0.3
	promptItems = 15
)

// OpenAIStrategy asks a chat model to write the report.
type OpenAIStrategy struct {
	client *openai.Client
	model  string
}

func NewOpenAIStrategy(apiKey, model string) *OpenAIStrategy {
	return NewOpenAIStrategyWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewOpenAIStrategyWithConfig allows a custom endpoint.
func NewOpenAIStrategyWithConfig(cfg openai.ClientConfig, model string) *OpenAIStrategy {
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIStrategy{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (s *OpenAIStrategy) Name() string { return "openai" }

func (s *OpenAIStrategy) Summarize(ctx context.Context, in Input) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(in)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("empty response from OpenAI")
	}
	return text + "\n", nil
}

func buildPrompt(in Input) string {
	var trends []string
	for _, e := range in.Trends.Companies.MostCommon(0) {
		cats := in.Trends.Categories(e.Key).MostCommon(topCategories)
		if len(cats) == 0 {
			continue
		}
		parts := make([]string, len(cats))
		for i, c := range cats {
			parts[i] = fmt.Sprintf("%s(%d)", c.Key, c.Count)
		}
		trends = append(trends, e.Key+": "+strings.Join(parts, ", "))
	}

	var examples []string
	for i, it := range in.Items {
		if i == promptItems {
			break
		}
		examples = append(examples, fmt.Sprintf("- %s: %s", it.Company, strings.TrimSpace(it.Title)))
	}

	return fmt.Sprintf(`You write a concise daily report of interview questions found in a forum feed.
Start with a short overview of the top companies by volume. Then highlight per-company topic trends (categories and counts).
Finish with 3-5 notable examples from the list.

Topic categories and counts (pre-aggregated):
%s

Examples:
%s

Write a clean Markdown report with headings and bullet points. Keep it under 300 words.
`, strings.Join(trends, "\n"), strings.Join(examples, "\n"))
}
