package model

import (
	"fmt"

	"github.com/google/uuid"
)

// aspectNamespace scopes the deterministic aspect occurrence IDs
var aspectNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("absa.aspect"))

// Aspect is a noun-like token that is a candidate topic of opinion
type Aspect struct {
	ID         uuid.UUID    `json:"id" yaml:"id"`
	Text       string       `json:"text" yaml:"text"`
	Start      int          `json:"start" yaml:"start"`
	End        int          `json:"end" yaml:"end"`
	POS        PartOfSpeech `json:"pos" yaml:"pos"`
	Dependents []string     `json:"dependents" yaml:"dependents"`
}

// NewAspect creates an aspect for the given token.
// The ID is derived from text and offsets, so the same occurrence always gets the same ID.
func NewAspect(token Token, dependents []string) Aspect {
	if dependents == nil {
		dependents = []string{}
	}
	return Aspect{
		ID:         AspectID(token.Text, token.Start, token.End),
		Text:       token.Text,
		Start:      token.Start,
		End:        token.End,
		POS:        token.POS,
		Dependents: dependents,
	}
}

// AspectID returns the occurrence identifier of an aspect
func AspectID(text string, start, end int) uuid.UUID {
	return uuid.NewSHA1(aspectNamespace, []byte(fmt.Sprintf("%d:%d:%s", start, end, text)))
}

// AspectOpinionPair links an aspect to an adjective attached to it
type AspectOpinionPair struct {
	Aspect         string  `json:"aspect" yaml:"aspect"`
	Opinion        string  `json:"opinion" yaml:"opinion"`
	SentimentScore float64 `json:"sentiment_score" yaml:"sentiment_score"`
}
