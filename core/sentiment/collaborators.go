package sentiment

import (
	"context"
	"fmt"
	"sort"

	"github.com/jonreiter/govader"
	"github.com/knights-analytics/hugot"
	"github.com/siherrmann/absa/helper"
	"github.com/siherrmann/absa/model"
)

// DefaultPolarity creates a VADER lexicon scorer. The lexicon is loaded once.
func DefaultPolarity() PolarityFunc {
	analyzer := govader.NewSentimentIntensityAnalyzer()

	return func(text string) model.SentimentScore {
		scores := analyzer.PolarityScores(text)
		return model.SentimentScore{
			Compound: scores.Compound,
			Positive: scores.Positive,
			Negative: scores.Negative,
			Neutral:  scores.Neutral,
		}
	}
}

// DefaultClassifier creates a classifier using a fine-tuned sentiment model.
// Uses distilbert SST-2 unless configured otherwise. The returned func destroys the hugot session.
func DefaultClassifier(config model.Config) (ClassifyFunc, func() error, error) {
	// Prepare model (download if needed)
	modelPath, err := helper.PrepareModel(config.ModelDir, config.ClassifierModel, config.ClassifierModelFile)
	if err != nil {
		return nil, nil, err
	}

	// Initialize hugot session with Go backend
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	pipelineConfig := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentiment-pipeline",
	}
	classifierPipeline, err := hugot.NewPipeline(session, pipelineConfig)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, nil, fmt.Errorf("failed to create sentiment pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, nil, fmt.Errorf("failed to create sentiment pipeline: %w", err)
	}

	classify := func(ctx context.Context, text string) ([]model.TransformerSentiment, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := classifierPipeline.RunPipeline([]string{text})
		if err != nil {
			return nil, fmt.Errorf("failed to classify text: %w", err)
		}

		if len(result.ClassificationOutputs) == 0 {
			return nil, nil
		}

		var sentiments []model.TransformerSentiment
		for _, output := range result.ClassificationOutputs[0] {
			sentiments = append(sentiments, model.TransformerSentiment{
				Label: model.NormalizeLabel(output.Label),
				Score: float64(output.Score),
			})
		}
		sort.SliceStable(sentiments, func(i, j int) bool {
			return sentiments[i].Score > sentiments[j].Score
		})

		return sentiments, nil
	}

	return classify, session.Destroy, nil
}
