package parse

import (
	"context"

	"github.com/siherrmann/absa/model"
)

// ParseFunc tokenizes, tags and parses text into a dependency annotated document.
// Empty text must yield an empty document without an error.
type ParseFunc func(ctx context.Context, text string) (*model.ParsedDocument, error)

// TagFunc assigns a part-of-speech tag to every span of a text
type TagFunc func(ctx context.Context, text string, spans []Span) ([]model.PartOfSpeech, error)

// NewParser builds a ParseFunc from a tagger.
// The text is segmented, tagged and then attached with the shallow dependency rules.
func NewParser(tag TagFunc) ParseFunc {
	return func(ctx context.Context, text string) (*model.ParsedDocument, error) {
		doc := &model.ParsedDocument{Text: text, Tokens: []model.Token{}}

		spans := Segment(text)
		if len(spans) == 0 {
			return doc, nil
		}

		tags, err := tag(ctx, text, spans)
		if err != nil {
			return nil, err
		}

		for i, span := range spans {
			pos := model.POSOther
			if i < len(tags) {
				pos = tags[i]
			}
			doc.Tokens = append(doc.Tokens, model.Token{
				Index:  i,
				Text:   span.Text,
				Start:  span.Start,
				End:    span.End,
				POS:    pos,
				IsStop: IsStopWord(span.Text),
				Head:   -1,
			})
		}

		Attach(doc.Tokens)
		return doc, nil
	}
}
