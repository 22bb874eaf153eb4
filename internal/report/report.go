// Package report generates an optional natural-language powder report from
// computed scores. It is strictly a presentation layer: scoring never depends
// on it, and it stays disabled unless an API key is configured.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kevincorvallis/shredders-sub008/internal/model"
)

// Generator wraps a chat-completion client for powder report summaries.
type Generator struct {
	client    *openai.Client
	model     string
	maxTokens int
	logger    *zap.Logger
}

// NewGenerator builds a Generator from config. Returns nil (not an error) when
// no API key is set, so callers can treat the feature as absent.
func NewGenerator(cfg model.ReportConfig, logger *zap.Logger) *Generator {
	if cfg.APIKey == "" {
		return nil
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	mdl := cfg.Model
	if mdl == "" {
		mdl = openai.GPT4oMini
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 600
	}

	return &Generator{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     mdl,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// Enabled reports whether report generation is configured.
func (g *Generator) Enabled() bool {
	return g != nil
}

// Generate produces a short powder report covering the given scores.
func (g *Generator) Generate(ctx context.Context, scores []model.PowderScore) (string, error) {
	if g == nil {
		return "", fmt.Errorf("report generation is not configured")
	}
	if len(scores) == 0 {
		return "", fmt.Errorf("no scores to report on")
	}

	prompt := BuildPrompt(scores)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a ski conditions reporter. Summarize the powder outlook " +
					"for the listed mountains using only the data provided. Do not invent " +
					"measurements. Keep it under three short paragraphs.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   g.maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("powder report request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	g.logger.Debug("powder report generated",
		zap.String("model", g.model),
		zap.Int("tokens", resp.Usage.TotalTokens))

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// BuildPrompt renders scores into the prompt body, best score first.
func BuildPrompt(scores []model.PowderScore) string {
	sorted := make([]model.PowderScore, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	var b strings.Builder
	b.WriteString("Current powder scores (0-10 scale):\n\n")
	for _, s := range sorted {
		fmt.Fprintf(&b, "%s: %.1f (%s)\n", s.MountainID, s.Score, s.Verdict)
		for _, f := range s.Factors {
			fmt.Fprintf(&b, "  - %s: %s\n", f.Name, f.Description)
		}
		b.WriteString("\n")
	}
	b.WriteString("Write a powder report for riders deciding where to go.")
	return b.String()
}
