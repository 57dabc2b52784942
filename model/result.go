package model

// AnalysisResult is the outcome of analyzing one document
type AnalysisResult struct {
	Aspects            []Aspect            `json:"aspects" yaml:"aspects"`
	AspectOpinionPairs []AspectOpinionPair `json:"aspect_opinion_pairs" yaml:"aspect_opinion_pairs"`
	// AspectSentiments is keyed by aspect text, the last occurrence wins.
	AspectSentiments map[string]SentimentScore `json:"aspect_sentiments" yaml:"aspect_sentiments"`
	// AspectOrder holds the keys of AspectSentiments in first insertion order.
	AspectOrder      []string       `json:"aspect_order" yaml:"aspect_order"`
	OverallSentiment SentimentScore `json:"overall_sentiment" yaml:"overall_sentiment"`
	Confidence       float64        `json:"confidence" yaml:"confidence"`
}

// SetAspectSentiment stores the score for an aspect text, overwriting earlier ones
func (r *AnalysisResult) SetAspectSentiment(aspect string, score SentimentScore) {
	if r.AspectSentiments == nil {
		r.AspectSentiments = map[string]SentimentScore{}
	}
	if _, ok := r.AspectSentiments[aspect]; !ok {
		r.AspectOrder = append(r.AspectOrder, aspect)
	}
	r.AspectSentiments[aspect] = score
}

// BatchResult is the outcome of one document of a batch.
// Exactly one of Result and Err is set.
type BatchResult struct {
	Index  int             `json:"index" yaml:"index"`
	Text   string          `json:"-" yaml:"-"`
	Result *AnalysisResult `json:"result,omitempty" yaml:"result,omitempty"`
	Err    error           `json:"-" yaml:"-"`
}
