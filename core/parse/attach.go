package parse

import (
	"strings"

	"github.com/siherrmann/absa/model"
)

// Dependency relation labels set by Attach and PromotePredicates
const (
	RelDeterminer = "det"
	RelAdjective  = "amod"
	RelNumeral    = "nummod"
	RelCompound   = "compound"
	RelAdverb     = "advmod"
	RelSubject    = "nsubj"
	RelComplement = "acomp"
	RelConjunct   = "conj"
)

var copulas = map[string]bool{
	"be": true, "is": true, "are": true, "was": true, "were": true, "been": true, "being": true,
	"am": true, "'s": true, "'re": true, "'m": true,
	"seem": true, "seems": true, "seemed": true, "look": true, "looks": true, "looked": true,
	"feel": true, "feels": true, "felt": true, "become": true, "becomes": true, "became": true,
	"remain": true, "remains": true, "remained": true, "sound": true, "sounds": true, "stay": true, "stays": true,
}

var coordinators = map[string]bool{"and": true, "or": true, ",": true}

// Attach sets Head and Relation of tagged tokens with shallow dependency rules.
// Determiners, adjectives, numerals and compound nouns attach to the head noun of
// their noun phrase. An adjective following a copula attaches to the head noun of
// the subject, as do adjectives coordinated with it. Everything else stays a root.
func Attach(tokens []model.Token) {
	for i := range tokens {
		tokens[i].Head = -1
		tokens[i].Relation = ""
	}

	phraseHead := attachNounPhrases(tokens)

	for c := range tokens {
		if !isCopula(tokens[c]) {
			continue
		}

		subject := findSubject(tokens, phraseHead, c)
		if subject < 0 {
			continue
		}
		tokens[subject].Head = c
		tokens[subject].Relation = RelSubject

		j := skipModifiers(tokens, c+1, subject)
		if j >= len(tokens) || tokens[j].POS != model.POSAdjective || phraseHead[j] >= 0 {
			continue
		}
		tokens[j].Head = subject
		tokens[j].Relation = RelComplement

		// coordinated adjectives: "fast and reliable"
		for {
			k := j + 1
			if k >= len(tokens) || !coordinators[strings.ToLower(tokens[k].Text)] {
				break
			}
			k = skipModifiers(tokens, k+1, subject)
			if k >= len(tokens) || tokens[k].POS != model.POSAdjective || phraseHead[k] >= 0 {
				break
			}
			tokens[k].Head = subject
			tokens[k].Relation = RelConjunct
			j = k
		}
	}
}

// attachNounPhrases attaches noun phrase members to the phrase head.
// It returns the phrase head of every token, -1 for tokens outside a phrase.
func attachNounPhrases(tokens []model.Token) []int {
	phraseHead := make([]int, len(tokens))
	for i := range phraseHead {
		phraseHead[i] = -1
	}

	i := 0
	for i < len(tokens) {
		if !inNounPhrase(tokens[i].POS) {
			i++
			continue
		}

		// a phrase ends after the last noun of a noun run
		end := i
		for end+1 < len(tokens) && inNounPhrase(tokens[end+1].POS) &&
			!(tokens[end].POS.IsNominal() && !tokens[end+1].POS.IsNominal()) {
			end++
		}

		head := -1
		for k := end; k >= i; k-- {
			if tokens[k].POS.IsNominal() {
				head = k
				break
			}
		}
		if head < 0 {
			i = end + 1
			continue
		}

		for k := i; k <= end; k++ {
			phraseHead[k] = head
			if k == head {
				continue
			}
			tokens[k].Head = head
			tokens[k].Relation = phraseRelation(tokens[k].POS)
		}
		i = end + 1
	}

	return phraseHead
}

// findSubject returns the token the copula at c predicates over, or -1
func findSubject(tokens []model.Token, phraseHead []int, c int) int {
	for k := c - 1; k >= 0; k-- {
		switch {
		case tokens[k].POS == model.POSAdverb, tokens[k].POS == model.POSParticle,
			tokens[k].POS == model.POSAuxiliary:
			continue
		case phraseHead[k] >= 0:
			return phraseHead[k]
		case tokens[k].POS == model.POSPronoun:
			return k
		}
		return -1
	}
	return -1
}

// skipModifiers skips adverbs, particles and auxiliaries starting at j.
// Skipped adverbs attach to the subject so they stay visible as dependents.
func skipModifiers(tokens []model.Token, j int, subject int) int {
	for j < len(tokens) {
		switch tokens[j].POS {
		case model.POSAdverb, model.POSParticle:
			tokens[j].Head = subject
			tokens[j].Relation = RelAdverb
		case model.POSAuxiliary:
		default:
			return j
		}
		j++
	}
	return j
}

func isCopula(t model.Token) bool {
	if t.POS != model.POSAuxiliary && t.POS != model.POSVerb {
		return false
	}
	return copulas[strings.ToLower(strings.ReplaceAll(t.Text, "’", "'"))]
}

func inNounPhrase(pos model.PartOfSpeech) bool {
	switch pos {
	case model.POSDeterminer, model.POSAdjective, model.POSNumeral, model.POSNoun, model.POSProperNoun:
		return true
	}
	return false
}

func phraseRelation(pos model.PartOfSpeech) string {
	switch pos {
	case model.POSDeterminer:
		return RelDeterminer
	case model.POSAdjective:
		return RelAdjective
	case model.POSNumeral:
		return RelNumeral
	}
	return RelCompound
}

// PromotePredicates moves adjectival complements of a copula onto the copula's subject.
// Parsers attaching "great" in "the screen is great" to the verb yield no noun-adjective
// link otherwise. Adjectives coordinated with a promoted complement follow it.
func PromotePredicates(doc *model.ParsedDocument) {
	if doc == nil {
		return
	}

	subjects := map[int]int{}
	for _, t := range doc.Tokens {
		if t.Relation == RelSubject && t.Head >= 0 {
			if _, ok := subjects[t.Head]; !ok {
				subjects[t.Head] = t.Index
			}
		}
	}

	promoted := map[int]int{}
	for i, t := range doc.Tokens {
		if t.POS != model.POSAdjective || t.Relation != RelComplement || t.Head < 0 {
			continue
		}
		subject, ok := subjects[t.Head]
		if !ok {
			continue
		}
		doc.Tokens[i].Head = subject
		promoted[i] = subject
	}

	for i, t := range doc.Tokens {
		if t.POS != model.POSAdjective || t.Relation != RelConjunct {
			continue
		}
		if subject, ok := promoted[t.Head]; ok {
			doc.Tokens[i].Head = subject
		}
	}
}
