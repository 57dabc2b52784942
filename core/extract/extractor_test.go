package extract

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/siherrmann/absa/core/parse"
	"github.com/siherrmann/absa/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const review = "The battery life is terrible but the screen is great."

var reviewTags = map[string]model.PartOfSpeech{
	"the": model.POSDeterminer, "battery": model.POSNoun, "life": model.POSNoun,
	"is": model.POSAuxiliary, "terrible": model.POSAdjective, "but": model.POSConjunction,
	"screen": model.POSNoun, "great": model.POSAdjective, ".": model.POSPunctuation,
	"it": model.POSPronoun, "apple": model.POSProperNoun, "makes": model.POSVerb,
	"good": model.POSAdjective, "phones": model.POSNoun, "part": model.POSNoun,
	"phone": model.POSNoun, "'s": model.POSAuxiliary, "russia": model.POSProperNoun,
	"parade": model.POSNoun,
}

func mockParser() parse.ParseFunc {
	return parse.NewParser(func(ctx context.Context, text string, spans []parse.Span) ([]model.PartOfSpeech, error) {
		tags := make([]model.PartOfSpeech, len(spans))
		for i, span := range spans {
			tag, ok := reviewTags[span.Text]
			if !ok {
				tag, ok = reviewTags[strings.ToLower(span.Text)]
			}
			if !ok {
				tag = model.POSOther
			}
			tags[i] = tag
		}
		return tags, nil
	})
}

func aspectTexts(aspects []model.Aspect) []string {
	texts := []string{}
	for _, a := range aspects {
		texts = append(texts, a.Text)
	}
	return texts
}

func TestExtractAspects(t *testing.T) {
	extractor := NewExtractor(mockParser(), nil)
	ctx := context.Background()

	t.Run("Extracts nouns in token order", func(t *testing.T) {
		aspects, err := extractor.ExtractAspects(ctx, review)
		require.NoError(t, err)
		assert.Equal(t, []string{"battery", "life", "screen"}, aspectTexts(aspects))
	})

	t.Run("Captures offsets tag and dependents", func(t *testing.T) {
		aspects, err := extractor.ExtractAspects(ctx, review)
		require.NoError(t, err)
		require.Len(t, aspects, 3)

		screen := aspects[2]
		assert.Equal(t, "screen", review[screen.Start:screen.End])
		assert.Equal(t, model.POSNoun, screen.POS)
		assert.Equal(t, []string{"the", "great"}, screen.Dependents)
		assert.Equal(t, []string{"The", "battery", "terrible"}, aspects[1].Dependents)
		assert.Empty(t, aspects[0].Dependents)
	})

	t.Run("Is idempotent", func(t *testing.T) {
		first, err := extractor.ExtractAspects(ctx, review)
		require.NoError(t, err)
		second, err := extractor.ExtractAspects(ctx, review)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Keeps repeated aspects with distinct offsets", func(t *testing.T) {
		aspects, err := extractor.ExtractAspects(ctx, "the screen is great the screen")
		require.NoError(t, err)
		require.Len(t, aspects, 2)
		assert.NotEqual(t, aspects[0].Start, aspects[1].Start)
		assert.NotEqual(t, aspects[0].ID, aspects[1].ID)
	})

	t.Run("Skips stop word nouns and keeps proper nouns", func(t *testing.T) {
		aspects, err := extractor.ExtractAspects(ctx, "Apple makes part")
		require.NoError(t, err)
		assert.Equal(t, []string{"Apple"}, aspectTexts(aspects))
		assert.Equal(t, model.POSProperNoun, aspects[0].POS)
	})

	t.Run("Possessive clitics are not part of the aspect", func(t *testing.T) {
		aspects, err := extractor.ExtractAspects(ctx, "Russia's parade")
		require.NoError(t, err)
		assert.Equal(t, []string{"Russia", "parade"}, aspectTexts(aspects))
	})

	t.Run("Empty text yields no aspects", func(t *testing.T) {
		aspects, err := extractor.ExtractAspects(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, aspects)
	})

	t.Run("Parser errors are wrapped", func(t *testing.T) {
		cause := errors.New("parser down")
		failing := NewExtractor(func(ctx context.Context, text string) (*model.ParsedDocument, error) {
			return nil, cause
		}, nil)
		_, err := failing.ExtractAspects(ctx, review)
		assert.ErrorIs(t, err, cause)
	})
}

func TestExtractAspectOpinionPairs(t *testing.T) {
	ctx := context.Background()

	t.Run("Pairs nouns with attached adjectives", func(t *testing.T) {
		extractor := NewExtractor(mockParser(), nil)
		pairs, err := extractor.ExtractAspectOpinionPairs(ctx, review)
		require.NoError(t, err)
		assert.Equal(t, []model.AspectOpinionPair{
			{Aspect: "life", Opinion: "terrible", SentimentScore: PlaceholderPairScore},
			{Aspect: "screen", Opinion: "great", SentimentScore: PlaceholderPairScore},
		}, pairs)
	})

	t.Run("Pairs attributive adjectives", func(t *testing.T) {
		extractor := NewExtractor(mockParser(), nil)
		pairs, err := extractor.ExtractAspectOpinionPairs(ctx, "Apple makes good phones")
		require.NoError(t, err)
		require.Len(t, pairs, 1)
		assert.Equal(t, "phones", pairs[0].Aspect)
		assert.Equal(t, "good", pairs[0].Opinion)
	})

	t.Run("Pairs adjectives after a contracted copula", func(t *testing.T) {
		extractor := NewExtractor(mockParser(), nil)
		pairs, err := extractor.ExtractAspectOpinionPairs(ctx, "The phone's great.")
		require.NoError(t, err)
		assert.Equal(t, []model.AspectOpinionPair{
			{Aspect: "phone", Opinion: "great", SentimentScore: PlaceholderPairScore},
		}, pairs)
	})

	t.Run("Opinion scorer replaces the placeholder", func(t *testing.T) {
		scores := map[string]float64{"terrible": -0.48, "great": 0.62}
		extractor := NewExtractor(mockParser(), nil, WithOpinionScorer(func(opinion string) float64 {
			return scores[opinion]
		}))
		pairs, err := extractor.ExtractAspectOpinionPairs(ctx, review)
		require.NoError(t, err)
		require.Len(t, pairs, 2)
		assert.Equal(t, -0.48, pairs[0].SentimentScore)
		assert.Equal(t, 0.62, pairs[1].SentimentScore)
	})

	t.Run("Empty text yields no pairs", func(t *testing.T) {
		extractor := NewExtractor(mockParser(), nil)
		pairs, err := extractor.ExtractAspectOpinionPairs(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, pairs)
	})
}

func TestEmbed(t *testing.T) {
	ctx := context.Background()

	t.Run("Averages token vectors", func(t *testing.T) {
		extractor := NewExtractor(mockParser(), func(ctx context.Context, text string) ([][]float32, error) {
			return [][]float32{{1, 2, 3}, {3, 4, 5}}, nil
		})
		vector, err := extractor.Embed(ctx, review)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{2, 3, 4}, vector, 1e-9)
	})

	t.Run("Returns a pooled row unchanged", func(t *testing.T) {
		extractor := NewExtractor(mockParser(), func(ctx context.Context, text string) ([][]float32, error) {
			return [][]float32{{0.5, -1, 2}}, nil
		})
		vector, err := extractor.Embed(ctx, review)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{0.5, -1, 2}, vector, 1e-9)
	})

	t.Run("Rejects empty output", func(t *testing.T) {
		extractor := NewExtractor(mockParser(), func(ctx context.Context, text string) ([][]float32, error) {
			return nil, nil
		})
		_, err := extractor.Embed(ctx, review)
		assert.ErrorIs(t, err, ErrNoEmbedding)
	})

	t.Run("Rejects ragged vectors", func(t *testing.T) {
		extractor := NewExtractor(mockParser(), func(ctx context.Context, text string) ([][]float32, error) {
			return [][]float32{{1, 2}, {1}}, nil
		})
		_, err := extractor.Embed(ctx, review)
		assert.ErrorIs(t, err, ErrRaggedEmbedding)
	})

	t.Run("Fails without embedder", func(t *testing.T) {
		extractor := NewExtractor(mockParser(), nil)
		_, err := extractor.Embed(ctx, review)
		assert.Error(t, err)
	})
}

func TestOpenAITokenEmbedder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.EmbeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"object": "list",
			"model":  req.Model,
			"data": []map[string]interface{}{
				{"object": "embedding", "index": 0, "embedding": []float32{0.25, 0.75}},
			},
		})
	}))
	defer server.Close()

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	client := openai.NewClientWithConfig(config)

	t.Run("Returns the embedding as a single row", func(t *testing.T) {
		embed := OpenAITokenEmbedder(client, "", nil)
		vectors, err := embed(context.Background(), review)
		require.NoError(t, err)
		require.Len(t, vectors, 1)
		assert.Equal(t, []float32{0.25, 0.75}, vectors[0])
	})

	t.Run("Feeds the extractor mean", func(t *testing.T) {
		extractor := NewExtractor(mockParser(), OpenAITokenEmbedder(client, "", nil))
		vector, err := extractor.Embed(context.Background(), review)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{0.25, 0.75}, vector, 1e-9)
	})
}

func TestDefaultTokenEmbedder(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping model-backed embedder test in short mode")
	}

	embed, closeModel, err := DefaultTokenEmbedder(model.DefaultConfig())
	if err != nil {
		t.Skipf("Skipping DefaultTokenEmbedder test - model not available: %v", err)
	}
	t.Cleanup(func() {
		assert.NoError(t, closeModel())
	})

	t.Run("Generates a 384 dimensional vector", func(t *testing.T) {
		extractor := NewExtractor(mockParser(), embed)
		vector, err := extractor.Embed(context.Background(), review)
		require.NoError(t, err)
		assert.Len(t, vector, 384)
	})
}
