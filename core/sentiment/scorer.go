package sentiment

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/siherrmann/absa/helper"
	"github.com/siherrmann/absa/model"
	"gonum.org/v1/gonum/stat"
)

// WindowSize is the number of tokens taken on each side of an aspect mention
const WindowSize = 3

var ErrNoClassification = errors.New("classifier returned no result")

// PolarityFunc scores text with a sentiment lexicon
type PolarityFunc func(text string) model.SentimentScore

// ClassifyFunc classifies text, ranked by score
type ClassifyFunc func(ctx context.Context, text string) ([]model.TransformerSentiment, error)

// Scorer combines a lexicon scorer and a sentiment classifier
type Scorer struct {
	polarity PolarityFunc
	classify ClassifyFunc
}

// NewScorer creates a new scorer. classify may be nil if only lexicon scores are used.
func NewScorer(polarity PolarityFunc, classify ClassifyFunc) *Scorer {
	return &Scorer{
		polarity: polarity,
		classify: classify,
	}
}

// ScoreLexicon returns the lexicon score of text
func (s *Scorer) ScoreLexicon(text string) model.SentimentScore {
	return s.polarity(text)
}

// ScoreTransformer returns the top ranked classification of text
func (s *Scorer) ScoreTransformer(ctx context.Context, text string) (model.TransformerSentiment, error) {
	if s.classify == nil {
		return model.TransformerSentiment{}, helper.NewError("score transformer", errors.New("classifier not set"))
	}

	results, err := s.classify(ctx, text)
	if err != nil {
		return model.TransformerSentiment{}, helper.NewError("score transformer", err)
	}
	if len(results) == 0 {
		return model.TransformerSentiment{}, helper.NewError("score transformer", ErrNoClassification)
	}

	return results[0], nil
}

// ScoreAspectWindow scores the words around the first whitespace token equal to aspect.
// Up to WindowSize tokens on each side are included. A missing aspect yields the zero score.
func (s *Scorer) ScoreAspectWindow(text string, aspect string) model.SentimentScore {
	tokens := strings.Fields(text)

	idx := -1
	for i, token := range tokens {
		if token == aspect {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.SentimentScore{}
	}

	return s.polarity(strings.Join(Window(tokens, idx, WindowSize), " "))
}

// Window returns tokens[idx-radius : idx+radius+1] clamped to the slice bounds
func Window(tokens []string, idx int, radius int) []string {
	start := max(0, idx-radius)
	end := min(len(tokens), idx+radius+1)
	return tokens[start:end]
}

// Confidence is the mean of the absolute lexicon compound score and the classifier score
func (s *Scorer) Confidence(ctx context.Context, text string) (float64, error) {
	lexicon := s.ScoreLexicon(text)

	transformer, err := s.ScoreTransformer(ctx, text)
	if err != nil {
		return 0, err
	}

	return stat.Mean([]float64{math.Abs(lexicon.Compound), transformer.Score}, nil), nil
}
