package parse

import (
	"context"
	"strings"

	language "cloud.google.com/go/language/apiv1"
	"cloud.google.com/go/language/apiv1/languagepb"
	"github.com/siherrmann/absa/helper"
	"github.com/siherrmann/absa/model"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// NewGoogleClient creates a Cloud Natural Language client.
// Without credentials the application default credentials are used.
func NewGoogleClient(ctx context.Context, credentialsJSON []byte) (*language.Client, error) {
	var opts []option.ClientOption
	if len(credentialsJSON) > 0 {
		opts = append(opts, option.WithCredentialsJSON(credentialsJSON))
	}
	client, err := language.NewClient(ctx, opts...)
	if err != nil {
		return nil, helper.NewError("create language client", err)
	}
	return client, nil
}

// GoogleParser creates a parser backed by the Cloud Natural Language syntax analysis.
// Requests wait on the limiter, a nil limiter does not throttle.
func GoogleParser(client *language.Client, limiter *rate.Limiter) ParseFunc {
	return func(ctx context.Context, text string) (*model.ParsedDocument, error) {
		doc := &model.ParsedDocument{Text: text, Tokens: []model.Token{}}
		if strings.TrimSpace(text) == "" {
			return doc, nil
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		req := &languagepb.AnalyzeSyntaxRequest{
			Document: &languagepb.Document{
				Source: &languagepb.Document_Content{
					Content: text,
				},
				Type: languagepb.Document_PLAIN_TEXT,
			},
			EncodingType: languagepb.EncodingType_UTF8,
		}

		resp, err := client.AnalyzeSyntax(ctx, req)
		if err != nil {
			return nil, helper.NewError("analyze syntax", err)
		}

		doc.Tokens = ConvertGoogleTokens(resp.GetTokens())
		PromotePredicates(doc)
		return doc, nil
	}
}

// ConvertGoogleTokens maps syntax analysis tokens to document tokens
func ConvertGoogleTokens(tokens []*languagepb.Token) []model.Token {
	converted := make([]model.Token, 0, len(tokens))
	for i, t := range tokens {
		content := t.GetText().GetContent()
		start := int(t.GetText().GetBeginOffset())

		head := int(t.GetDependencyEdge().GetHeadTokenIndex())
		if head == i || head < 0 || head >= len(tokens) {
			head = -1
		}

		converted = append(converted, model.Token{
			Index:    i,
			Text:     content,
			Start:    start,
			End:      start + len(content),
			POS:      googleTag(t.GetPartOfSpeech()),
			IsStop:   IsStopWord(content),
			Head:     head,
			Relation: strings.ToLower(t.GetDependencyEdge().GetLabel().String()),
		})
	}
	return converted
}

func googleTag(pos *languagepb.PartOfSpeech) model.PartOfSpeech {
	switch pos.GetTag() {
	case languagepb.PartOfSpeech_NOUN:
		if pos.GetProper() == languagepb.PartOfSpeech_PROPER {
			return model.POSProperNoun
		}
		return model.POSNoun
	case languagepb.PartOfSpeech_ADJ:
		return model.POSAdjective
	case languagepb.PartOfSpeech_VERB:
		return model.POSVerb
	case languagepb.PartOfSpeech_ADV:
		return model.POSAdverb
	case languagepb.PartOfSpeech_DET:
		return model.POSDeterminer
	case languagepb.PartOfSpeech_ADP:
		return model.POSAdposition
	case languagepb.PartOfSpeech_CONJ:
		return model.POSConjunction
	case languagepb.PartOfSpeech_PRT:
		return model.POSParticle
	case languagepb.PartOfSpeech_PRON:
		return model.POSPronoun
	case languagepb.PartOfSpeech_NUM:
		return model.POSNumeral
	case languagepb.PartOfSpeech_PUNCT:
		return model.POSPunctuation
	}
	return model.POSOther
}
