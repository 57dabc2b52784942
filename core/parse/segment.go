package parse

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is a word or punctuation mark with its byte offsets in the source text
type Span struct {
	Text  string
	Start int
	End   int
}

// Segment splits text into word and punctuation spans.
// Words are runs of letters and digits, joined by inner apostrophes and hyphens.
// Clitics like 's, 're and n't are split off into spans of their own.
// A point only joins digits. Every other non-space rune is a span of its own.
func Segment(text string) []Span {
	var spans []Span

	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			i += size
			continue
		}

		start := i
		if n := cliticLen(text[i:]); n > 0 {
			i += n
			spans = append(spans, Span{Text: text[start:i], Start: start, End: i})
			continue
		}
		if !isWordRune(r) {
			i += size
			spans = append(spans, Span{Text: text[start:i], Start: start, End: i})
			continue
		}

		i += size
		for i < len(text) {
			r, size = utf8.DecodeRuneInString(text[i:])
			if isWordRune(r) {
				i += size
				continue
			}
			if isApostrophe(r) {
				// "can't" splits into "ca" and "n't"
				if prev, prevSize := utf8.DecodeLastRuneInString(text[:i]); (prev == 'n' || prev == 'N') &&
					i-prevSize > start && cliticLen(text[i-prevSize:]) > 0 {
					i -= prevSize
					break
				}
				if cliticLen(text[i:]) > 0 {
					break
				}
			}
			if isJoiner(r) && i+size < len(text) {
				next, nextSize := utf8.DecodeRuneInString(text[i+size:])
				prev, _ := utf8.DecodeLastRuneInString(text[:i])
				if isWordRune(next) && (r != '.' || unicode.IsDigit(prev) && unicode.IsDigit(next)) {
					i += size + nextSize
					continue
				}
			}
			break
		}
		spans = append(spans, Span{Text: text[start:i], Start: start, End: i})
	}

	return spans
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func isJoiner(r rune) bool {
	return isApostrophe(r) || r == '-' || r == '.'
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}

var clitics = []string{"n't", "'s", "'re", "'m", "'ll", "'ve", "'d"}

// cliticLen returns the byte length of the clitic text starts with, or 0.
// A clitic must end the word it is attached to.
func cliticLen(text string) int {
	for _, clitic := range clitics {
		for _, form := range []string{clitic, strings.ReplaceAll(clitic, "'", "’")} {
			if len(text) < len(form) || !strings.EqualFold(text[:len(form)], form) {
				continue
			}
			if next, _ := utf8.DecodeRuneInString(text[len(form):]); len(text) > len(form) && isWordRune(next) {
				continue
			}
			return len(form)
		}
	}
	return 0
}
