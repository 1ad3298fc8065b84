package summarization

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go-roadwatch/types"
)

const maxRegionsInPrompt = 15

// GenerateConditionSummary asks the model for a short plain-language paragraph
// about the province's road condition, for the dashboard header. Purely
// presentational: the numbers in the prompt are the already-computed
// aggregates, never raw reports.
func GenerateConditionSummary(
	ctx context.Context,
	client *openai.Client,
	summary types.StatsSummary,
	regions map[string]types.RegionStatsItem,
) (string, error) {
	if client == nil {
		return "", fmt.Errorf("openai client not configured")
	}

	prompt := buildPrompt(summary, regions)

	resp, err := client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an assistant that summarizes road damage statistics for a provincial operations dashboard, concisely and factually.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   150,
			N:           1,
			Temperature: 0.5,
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildPrompt(summary types.StatsSummary, regions map[string]types.RegionStatsItem) string {
	// Worst-hit regions first, capped so the prompt stays small.
	items := make([]types.RegionStatsItem, 0, len(regions))
	for _, item := range regions {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Data.Parah != items[j].Data.Parah {
			return items[i].Data.Parah > items[j].Data.Parah
		}
		return items[i].Data.Total > items[j].Data.Total
	})
	if len(items) > maxRegionsInPrompt {
		items = items[:maxRegionsInPrompt]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Province-wide road damage reports: %d total (%d severe, %d moderate, %d light).\n",
		summary.Total, summary.Critical, summary.Moderate, summary.Minor)
	b.WriteString("Per-region breakdown (worst first):\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s: %d reports (%d severe, %d moderate, %d light)\n",
			item.Nama, item.Data.Total, item.Data.Parah, item.Data.Sedang, item.Data.Ringan)
	}
	b.WriteString("\nWrite a 2-3 sentence summary of the overall road condition and where repair crews should focus. Summary:")
	return b.String()
}
