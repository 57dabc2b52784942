package absa

import (
	"fmt"
	"sort"
	"strings"

	"github.com/siherrmann/absa/model"
)

// GenerateReport renders a result as a markdown report.
// Aspects follow AspectOrder, aspects missing from it are appended sorted by text.
func (a *Analyzer) GenerateReport(result *model.AnalysisResult) string {
	return GenerateReport(result)
}

// GenerateReport renders a result as a markdown report with two decimal scores
func GenerateReport(result *model.AnalysisResult) string {
	if result == nil {
		return ""
	}

	report := []string{"# Sentiment Analysis Report\n"}

	report = append(report, "## Overall Sentiment")
	report = append(report, fmt.Sprintf("Compound Score: %.2f", result.OverallSentiment.Compound))
	report = append(report, fmt.Sprintf("Confidence: %.2f\n", result.Confidence))

	report = append(report, "## Aspect Analysis")
	for _, aspect := range reportOrder(result) {
		score := result.AspectSentiments[aspect]
		report = append(report, fmt.Sprintf("### %s", aspect))
		report = append(report, fmt.Sprintf("- Compound Score: %.2f", score.Compound))
		report = append(report, fmt.Sprintf("- Positive: %.2f", score.Positive))
		report = append(report, fmt.Sprintf("- Negative: %.2f", score.Negative))
		report = append(report, fmt.Sprintf("- Neutral: %.2f\n", score.Neutral))
	}

	return strings.Join(report, "\n")
}

// reportOrder returns the aspect keys in insertion order
func reportOrder(result *model.AnalysisResult) []string {
	seen := make(map[string]bool, len(result.AspectSentiments))
	var order []string
	for _, aspect := range result.AspectOrder {
		if _, ok := result.AspectSentiments[aspect]; ok && !seen[aspect] {
			seen[aspect] = true
			order = append(order, aspect)
		}
	}

	var rest []string
	for aspect := range result.AspectSentiments {
		if !seen[aspect] {
			rest = append(rest, aspect)
		}
	}
	sort.Strings(rest)

	return append(order, rest...)
}
