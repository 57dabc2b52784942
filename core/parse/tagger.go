package parse

import (
	"context"
	"fmt"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/siherrmann/absa/helper"
	"github.com/siherrmann/absa/model"
)

// DefaultParser creates a parser using a part-of-speech token classification model
// and the shallow attachment rules. The model is loaded once, the returned func releases it.
func DefaultParser(config model.Config) (ParseFunc, func() error, error) {
	tag, closeTagger, err := DefaultTagger(config)
	if err != nil {
		return nil, nil, err
	}
	return NewParser(tag), closeTagger, nil
}

// DefaultTagger creates a tagger using a universal part-of-speech token classification model.
// The returned func destroys the underlying hugot session.
func DefaultTagger(config model.Config) (TagFunc, func() error, error) {
	// Prepare model (download if needed)
	modelPath, err := helper.PrepareModel(config.ModelDir, config.POSModel, config.POSModelFile)
	if err != nil {
		return nil, nil, err
	}

	// Initialize hugot session with Go backend
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	// Every subword gets its own label, words are rebuilt from the spans
	pipelineConfig := hugot.TokenClassificationConfig{
		ModelPath: modelPath,
		Name:      "pos-pipeline",
		Options: []hugot.TokenClassificationOption{
			pipelines.WithoutAggregation(),
		},
	}
	posPipeline, err := hugot.NewPipeline(session, pipelineConfig)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, nil, fmt.Errorf("failed to create POS pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, nil, fmt.Errorf("failed to create POS pipeline: %w", err)
	}

	tag := func(ctx context.Context, text string, spans []Span) ([]model.PartOfSpeech, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := posPipeline.RunPipeline([]string{text})
		if err != nil {
			return nil, fmt.Errorf("failed to run POS tagging: %w", err)
		}

		var entities []pipelines.Entity
		if len(result.Entities) > 0 {
			entities = result.Entities[0]
		}

		labels := make([]LabeledOffset, 0, len(entities))
		for _, entity := range entities {
			labels = append(labels, LabeledOffset{Start: int(entity.Start), Label: entity.Entity})
		}
		return AlignTags(spans, labels), nil
	}

	return tag, session.Destroy, nil
}

// LabeledOffset is a label predicted for the subword starting at Start
type LabeledOffset struct {
	Start int
	Label string
}

// AlignTags assigns each span the label of the first subword starting inside it.
// Spans without a subword are tagged as punctuation or X.
func AlignTags(spans []Span, labels []LabeledOffset) []model.PartOfSpeech {
	tags := make([]model.PartOfSpeech, len(spans))

	j := 0
	for i, span := range spans {
		for j < len(labels) && labels[j].Start < span.Start {
			j++
		}
		if j < len(labels) && labels[j].Start < span.End {
			tags[i] = NormalizeTag(labels[j].Label)
			continue
		}
		if isPunctuation(span.Text) {
			tags[i] = model.POSPunctuation
		} else {
			tags[i] = model.POSOther
		}
	}

	return tags
}

// NormalizeTag maps model labels to universal part-of-speech tags
func NormalizeTag(label string) model.PartOfSpeech {
	label = strings.ToUpper(strings.TrimSpace(label))
	label = strings.TrimPrefix(strings.TrimPrefix(label, "B-"), "I-")

	switch label {
	case "NOUN", "NN", "NNS":
		return model.POSNoun
	case "PROPN", "NNP", "NNPS":
		return model.POSProperNoun
	case "ADJ", "JJ", "JJR", "JJS":
		return model.POSAdjective
	case "VERB":
		return model.POSVerb
	case "AUX":
		return model.POSAuxiliary
	case "ADV", "RB", "RBR", "RBS":
		return model.POSAdverb
	case "DET", "DT":
		return model.POSDeterminer
	case "ADP", "IN":
		return model.POSAdposition
	case "CCONJ", "CONJ", "CC":
		return model.POSConjunction
	case "SCONJ":
		return model.POSSubordinate
	case "PART", "PRT", "RP":
		return model.POSParticle
	case "PRON", "PRP":
		return model.POSPronoun
	case "NUM", "CD":
		return model.POSNumeral
	case "PUNCT", "SYM":
		return model.POSPunctuation
	}
	return model.POSOther
}

func isPunctuation(text string) bool {
	for _, r := range text {
		if !strings.ContainsRune(".,;:!?\"'()[]{}-–—…/", r) {
			return false
		}
	}
	return text != ""
}
