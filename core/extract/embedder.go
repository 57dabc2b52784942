package extract

import (
	"context"
	"fmt"

	"github.com/knights-analytics/hugot"
	"github.com/sashabaranov/go-openai"
	"github.com/siherrmann/absa/helper"
	"github.com/siherrmann/absa/model"
	"golang.org/x/time/rate"
)

// DefaultTokenEmbedder creates an embedder using a sentence transformer model.
// The pipeline pools over tokens already, the result is a single row matrix.
// The returned func destroys the underlying hugot session.
func DefaultTokenEmbedder(config model.Config) (TokenEmbedFunc, func() error, error) {
	// Prepare model (download if needed)
	modelPath, err := helper.PrepareModel(config.ModelDir, config.EmbeddingModel, config.EmbeddingModelFile)
	if err != nil {
		return nil, nil, err
	}

	// Initialize hugot session with Go backend
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	// Create sentence transformers pipeline configuration
	pipelineConfig := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "embedder-pipeline",
	}
	sentencePipeline, err := hugot.NewPipeline(session, pipelineConfig)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, nil, fmt.Errorf("failed to create sentence pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, nil, fmt.Errorf("failed to create sentence pipeline: %w", err)
	}

	embed := func(ctx context.Context, text string) ([][]float32, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := sentencePipeline.RunPipeline([]string{text})
		if err != nil {
			return nil, fmt.Errorf("failed to generate embedding: %w", err)
		}

		if len(result.Embeddings) == 0 {
			return nil, ErrNoEmbedding
		}

		return [][]float32{result.Embeddings[0]}, nil
	}

	return embed, session.Destroy, nil
}

// OpenAITokenEmbedder creates an embedder using the OpenAI embeddings API.
// Requests wait on the limiter, a nil limiter does not throttle.
func OpenAITokenEmbedder(client *openai.Client, embeddingModel string, limiter *rate.Limiter) TokenEmbedFunc {
	if embeddingModel == "" {
		embeddingModel = string(openai.SmallEmbedding3)
	}

	return func(ctx context.Context, text string) ([][]float32, error) {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: []string{text},
			Model: openai.EmbeddingModel(embeddingModel),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create embedding: %w", err)
		}

		if len(resp.Data) == 0 {
			return nil, ErrNoEmbedding
		}

		return [][]float32{resp.Data[0].Embedding}, nil
	}
}
