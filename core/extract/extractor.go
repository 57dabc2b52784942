package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/siherrmann/absa/core/parse"
	"github.com/siherrmann/absa/helper"
	"github.com/siherrmann/absa/model"
	"gonum.org/v1/gonum/floats"
)

// PlaceholderPairScore is the sentiment score of every aspect-opinion pair
// unless an opinion scorer is set
const PlaceholderPairScore = 0.5

var (
	ErrNoEmbedding     = errors.New("no embedding generated")
	ErrRaggedEmbedding = errors.New("token vectors differ in length")
)

// TokenEmbedFunc returns the vectors of text, either one per token or a single pooled row.
// All vectors have the same length.
type TokenEmbedFunc func(ctx context.Context, text string) ([][]float32, error)

// OpinionScoreFunc scores a single opinion word
type OpinionScoreFunc func(opinion string) float64

// Extractor finds aspects and aspect-opinion pairs in text
type Extractor struct {
	parse        parse.ParseFunc
	embed        TokenEmbedFunc
	scoreOpinion OpinionScoreFunc
}

// Option configures an Extractor
type Option func(*Extractor)

// WithOpinionScorer scores pairs by their opinion word instead of the placeholder
func WithOpinionScorer(score OpinionScoreFunc) Option {
	return func(e *Extractor) {
		e.scoreOpinion = score
	}
}

// NewExtractor creates a new extractor. embed may be nil if Embed is never called.
func NewExtractor(parser parse.ParseFunc, embed TokenEmbedFunc, opts ...Option) *Extractor {
	e := &Extractor{
		parse: parser,
		embed: embed,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractAspects returns every noun and proper noun that is not a stop word, in token order.
// Each aspect carries the text of its direct dependents. Repeated words are kept.
func (e *Extractor) ExtractAspects(ctx context.Context, text string) ([]model.Aspect, error) {
	doc, err := e.parse(ctx, text)
	if err != nil {
		return nil, helper.NewError("extract aspects", err)
	}

	aspects := []model.Aspect{}
	for _, token := range doc.Tokens {
		if !token.POS.IsNominal() || token.IsStop {
			continue
		}

		var dependents []string
		for _, child := range doc.Children(token.Index) {
			dependents = append(dependents, child.Text)
		}
		aspects = append(aspects, model.NewAspect(token, dependents))
	}

	return aspects, nil
}

// ExtractAspectOpinionPairs pairs every noun and proper noun with each adjective depending on it.
// Pairs are ordered by noun, then by adjective.
func (e *Extractor) ExtractAspectOpinionPairs(ctx context.Context, text string) ([]model.AspectOpinionPair, error) {
	doc, err := e.parse(ctx, text)
	if err != nil {
		return nil, helper.NewError("extract aspect opinion pairs", err)
	}

	pairs := []model.AspectOpinionPair{}
	for _, token := range doc.Tokens {
		if !token.POS.IsNominal() {
			continue
		}

		for _, child := range doc.Children(token.Index) {
			if child.POS != model.POSAdjective {
				continue
			}
			pairs = append(pairs, model.AspectOpinionPair{
				Aspect:         token.Text,
				Opinion:        child.Text,
				SentimentScore: e.pairScore(child.Text),
			})
		}
	}

	return pairs, nil
}

func (e *Extractor) pairScore(opinion string) float64 {
	if e.scoreOpinion == nil {
		return PlaceholderPairScore
	}
	return e.scoreOpinion(opinion)
}

// Embed returns the mean of the vectors of text. A pooled row is returned as is.
func (e *Extractor) Embed(ctx context.Context, text string) ([]float64, error) {
	if e.embed == nil {
		return nil, helper.NewError("embed", fmt.Errorf("embedder not set"))
	}

	vectors, err := e.embed(ctx, text)
	if err != nil {
		return nil, helper.NewError("embed", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, helper.NewError("embed", ErrNoEmbedding)
	}

	dim := len(vectors[0])
	mean := make([]float64, dim)
	row := make([]float64, dim)
	for _, vector := range vectors {
		if len(vector) != dim {
			return nil, helper.NewError("embed", ErrRaggedEmbedding)
		}
		for i, v := range vector {
			row[i] = float64(v)
		}
		floats.Add(mean, row)
	}
	floats.Scale(1/float64(len(vectors)), mean)

	return mean, nil
}
