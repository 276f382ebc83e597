package segment

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Punkt splits text with the pre-trained English Punkt model.
type Punkt struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunkt loads the English Punkt model.
func NewPunkt() (*Punkt, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("segment: load punkt model: %w", err)
	}
	return &Punkt{tokenizer: tokenizer}, nil
}

// Split returns the trimmed, non-empty sentences of text in order.
func (p *Punkt) Split(text string) []string {
	out := make([]string, 0)
	if text == "" {
		return out
	}
	for _, s := range p.tokenizer.Tokenize(text) {
		if sentence := strings.TrimSpace(s.Text); sentence != "" {
			out = append(out, sentence)
		}
	}
	return out
}
