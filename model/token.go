package model

// PartOfSpeech is a universal part-of-speech tag
type PartOfSpeech string

const (
	POSNoun        PartOfSpeech = "NOUN"
	POSProperNoun  PartOfSpeech = "PROPN"
	POSAdjective   PartOfSpeech = "ADJ"
	POSVerb        PartOfSpeech = "VERB"
	POSAuxiliary   PartOfSpeech = "AUX"
	POSAdverb      PartOfSpeech = "ADV"
	POSDeterminer  PartOfSpeech = "DET"
	POSAdposition  PartOfSpeech = "ADP"
	POSConjunction PartOfSpeech = "CCONJ"
	POSSubordinate PartOfSpeech = "SCONJ"
	POSParticle    PartOfSpeech = "PART"
	POSPronoun     PartOfSpeech = "PRON"
	POSNumeral     PartOfSpeech = "NUM"
	POSPunctuation PartOfSpeech = "PUNCT"
	POSOther       PartOfSpeech = "X"
)

// IsNominal reports whether the tag marks a noun or a proper noun
func (p PartOfSpeech) IsNominal() bool {
	return p == POSNoun || p == POSProperNoun
}

// Token is a single parsed word of a document.
// Head is the index of the syntactic head token, -1 for a root.
type Token struct {
	Index    int          `json:"index" yaml:"index"`
	Text     string       `json:"text" yaml:"text"`
	Start    int          `json:"start" yaml:"start"`
	End      int          `json:"end" yaml:"end"`
	POS      PartOfSpeech `json:"pos" yaml:"pos"`
	IsStop   bool         `json:"is_stop" yaml:"is_stop"`
	Head     int          `json:"head" yaml:"head"`
	Relation string       `json:"relation,omitempty" yaml:"relation,omitempty"`
}

// ParsedDocument is the output of a parser
type ParsedDocument struct {
	Text   string  `json:"text" yaml:"text"`
	Tokens []Token `json:"tokens" yaml:"tokens"`
}

// Children returns the direct dependents of token i in token order
func (d *ParsedDocument) Children(i int) []Token {
	var children []Token
	for _, t := range d.Tokens {
		if t.Head == i && t.Index != i {
			children = append(children, t)
		}
	}
	return children
}
