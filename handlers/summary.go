package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"go-roadwatch/stats"
	"go-roadwatch/summarization"
)

// ConditionSummaryHandler returns the dashboard's natural-language condition
// paragraph alongside the numeric province summary.
func ConditionSummaryHandler(c *gin.Context, engine *stats.Engine, openaiClient *openai.Client, logg *logrus.Logger) {
	ctx := c.Request.Context()

	items, err := engine.AggregateByRegency(ctx)
	if err != nil {
		logg.WithError(err).Error("failed to aggregate stats for summary")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch statistics"})
		return
	}
	summary := stats.Summarize(items)

	text, err := summarization.GenerateConditionSummary(ctx, openaiClient, summary, items)
	if err != nil {
		logg.WithError(err).Error("failed to generate condition summary")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": summary,
		"text":    text,
	})
}
