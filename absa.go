package absa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/sashabaranov/go-openai"
	"github.com/siherrmann/absa/core/extract"
	"github.com/siherrmann/absa/core/parse"
	"github.com/siherrmann/absa/core/sentiment"
	"github.com/siherrmann/absa/core/visualize"
	"github.com/siherrmann/absa/helper"
	"github.com/siherrmann/absa/model"
	"golang.org/x/sync/errgroup"
)

// Chart names returned by Visualize
const (
	ChartSentimentDistribution = "sentiment_distribution"
	ChartAspectNetwork         = "aspect_network"
)

var ErrNilResult = errors.New("analysis result is nil")

// Analyzer runs aspect based sentiment analysis over documents
type Analyzer struct {
	Extractor  *extract.Extractor
	Scorer     *sentiment.Scorer
	Visualizer *visualize.Visualizer
	// Batch
	concurrency int
	// Logging
	log *slog.Logger
	// Model sessions and API clients released by Close
	closers []func() error
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithLogger sets the logger of the analyzer
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.log = logger
	}
}

// WithConcurrency sets how many documents of a batch are analyzed at once
func WithConcurrency(n int) Option {
	return func(a *Analyzer) {
		a.concurrency = n
	}
}

// WithCloser registers a release func called by Close, e.g. a hugot session's Destroy
func WithCloser(closer func() error) Option {
	return func(a *Analyzer) {
		if closer != nil {
			a.closers = append(a.closers, closer)
		}
	}
}

// NewAnalyzer creates a new analyzer from its components
func NewAnalyzer(extractor *extract.Extractor, scorer *sentiment.Scorer, visualizer *visualize.Visualizer, opts ...Option) *Analyzer {
	a := &Analyzer{
		Extractor:   extractor,
		Scorer:      scorer,
		Visualizer:  visualizer,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.log == nil {
		a.log = helper.NewLogger(os.Stdout, slog.LevelInfo)
	}
	if a.concurrency < 1 {
		a.concurrency = 1
	}

	return a
}

// NewDefaultAnalyzer creates an analyzer with the configured parser, embedder and
// classifier. Models are downloaded into config.ModelDir and loaded once.
// The analyzer owns the model sessions and clients, Close releases them.
func NewDefaultAnalyzer(config model.Config, opts ...Option) (*Analyzer, error) {
	var closers []func() error
	fail := func(operation string, err error) (*Analyzer, error) {
		if closeErr := closeAll(closers); closeErr != nil {
			return nil, helper.NewError(operation, fmt.Errorf("%w (cleanup error: %v)", err, closeErr))
		}
		return nil, helper.NewError(operation, err)
	}

	var parser parse.ParseFunc
	switch config.Parser {
	case model.ParserGoogle:
		client, err := parse.NewGoogleClient(context.Background(), nil)
		if err != nil {
			return fail("create google parser", err)
		}
		closers = append(closers, client.Close)
		parser = parse.GoogleParser(client, helper.NewRateLimiter(config.RequestsPerSecond))
	default:
		p, closeParser, err := parse.DefaultParser(config)
		if err != nil {
			return fail("create default parser", err)
		}
		closers = append(closers, closeParser)
		parser = p
	}

	var embedder extract.TokenEmbedFunc
	switch config.Embedder {
	case model.EmbedderOpenAI:
		client := openai.NewClient(os.Getenv("OPENAI_API_KEY"))
		embedder = extract.OpenAITokenEmbedder(client, config.OpenAIModel, helper.NewRateLimiter(config.RequestsPerSecond))
	default:
		e, closeEmbedder, err := extract.DefaultTokenEmbedder(config)
		if err != nil {
			return fail("create default embedder", err)
		}
		closers = append(closers, closeEmbedder)
		embedder = e
	}

	classifier, closeClassifier, err := sentiment.DefaultClassifier(config)
	if err != nil {
		return fail("create default classifier", err)
	}
	closers = append(closers, closeClassifier)

	polarity := sentiment.DefaultPolarity()
	scorer := sentiment.NewScorer(polarity, classifier)

	var extractorOpts []extract.Option
	if config.OpinionScoring == model.OpinionScoreLexicon {
		extractorOpts = append(extractorOpts, extract.WithOpinionScorer(func(opinion string) float64 {
			return polarity(opinion).Compound
		}))
	}
	extractor := extract.NewExtractor(parser, embedder, extractorOpts...)

	defaults := []Option{WithConcurrency(config.Concurrency)}
	for _, closer := range closers {
		defaults = append(defaults, WithCloser(closer))
	}
	return NewAnalyzer(extractor, scorer, visualize.NewVisualizer(), append(defaults, opts...)...), nil
}

// Close releases the model sessions and clients of the analyzer.
// All closers run even if one fails, a second Close is a no-op.
func (a *Analyzer) Close() error {
	closers := a.closers
	a.closers = nil
	if err := closeAll(closers); err != nil {
		return helper.NewError("close analyzer", err)
	}
	return nil
}

// closeAll calls the closers in reverse order and joins their errors
func closeAll(closers []func() error) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Analyze runs the full analysis of one document.
// Aspects and pairs come from two independent extraction passes. Every aspect gets
// the lexicon score of its window, a repeated aspect text keeps the last score.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*model.AnalysisResult, error) {
	aspects, err := a.Extractor.ExtractAspects(ctx, text)
	if err != nil {
		return nil, err
	}

	pairs, err := a.Extractor.ExtractAspectOpinionPairs(ctx, text)
	if err != nil {
		return nil, err
	}

	result := &model.AnalysisResult{
		Aspects:            aspects,
		AspectOpinionPairs: pairs,
		AspectSentiments:   map[string]model.SentimentScore{},
		AspectOrder:        []string{},
	}
	for _, aspect := range aspects {
		result.SetAspectSentiment(aspect.Text, a.Scorer.ScoreAspectWindow(text, aspect.Text))
	}

	result.OverallSentiment = a.Scorer.ScoreLexicon(text)

	result.Confidence, err = a.Scorer.Confidence(ctx, text)
	if err != nil {
		return nil, err
	}

	a.log.Info("Analyzed document",
		"aspects", len(result.Aspects),
		"pairs", len(result.AspectOpinionPairs),
		"compound", result.OverallSentiment.Compound,
		"confidence", result.Confidence,
	)

	return result, nil
}

// AnalyzeBatch analyzes every text on its own and returns the results in input order.
// A failing document only sets the Err of its own result. Documents not started
// before ctx is done carry the context error.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, texts []string) []model.BatchResult {
	results := make([]model.BatchResult, len(texts))

	var g errgroup.Group
	g.SetLimit(a.concurrency)

	for i, text := range texts {
		results[i] = model.BatchResult{Index: i, Text: text}
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			result, err := a.Analyze(ctx, text)
			if err != nil {
				a.log.Warn("Failed to analyze document", "index", i, "error", err)
				results[i].Err = err
				return nil
			}
			results[i].Result = result
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Visualize returns the score distribution and the aspect network charts of a result
func (a *Analyzer) Visualize(result *model.AnalysisResult) (map[string]visualize.Chart, error) {
	if result == nil {
		return nil, helper.NewError("visualize", ErrNilResult)
	}

	distribution, err := a.Visualizer.PlotScoreDistribution([]model.SentimentScore{result.OverallSentiment}, "")
	if err != nil {
		return nil, helper.NewError("visualize", err)
	}

	network, err := a.Visualizer.PlotAspectNetwork(result.AspectOpinionPairs, "")
	if err != nil {
		return nil, helper.NewError("visualize", err)
	}

	return map[string]visualize.Chart{
		ChartSentimentDistribution: distribution,
		ChartAspectNetwork:         network,
	}, nil
}
