package model

import "strings"

// SentimentScore is a four channel lexicon polarity score
type SentimentScore struct {
	Compound float64 `json:"compound" yaml:"compound"`
	Positive float64 `json:"positive" yaml:"positive"`
	Negative float64 `json:"negative" yaml:"negative"`
	Neutral  float64 `json:"neutral" yaml:"neutral"`
}

// IsZero reports whether all channels are zero, the result of an aspect lookup miss
func (s SentimentScore) IsZero() bool {
	return s == SentimentScore{}
}

// SentimentLabel is the label of a transformer classification
type SentimentLabel string

const (
	LabelPositive SentimentLabel = "POSITIVE"
	LabelNegative SentimentLabel = "NEGATIVE"
)

// NormalizeLabel maps classifier labels like "positive" or "LABEL_1" to a SentimentLabel
func NormalizeLabel(label string) SentimentLabel {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "POSITIVE", "POS", "LABEL_1":
		return LabelPositive
	case "NEGATIVE", "NEG", "LABEL_0":
		return LabelNegative
	}
	return SentimentLabel(strings.ToUpper(label))
}

// TransformerSentiment is the primary output of the classification model
type TransformerSentiment struct {
	Label SentimentLabel `json:"label" yaml:"label"`
	Score float64        `json:"score" yaml:"score"`
}
