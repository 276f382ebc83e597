package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/sentences"
)

// closers may follow a terminator inside the same sentence, as in `"Stop."` or `(see above.)`.
const closers = `"')]}’”»`

// Rule splits text on Unicode UAX #29 sentence boundaries. A boundary only
// closes a sentence when the text before it ends in terminal punctuation, so
// line breaks inside a sentence do not split it.
type Rule struct{}

// NewRule returns a rule-based Segmenter.
func NewRule() *Rule {
	return &Rule{}
}

// Split returns the trimmed, non-empty sentences of text in order.
func (r *Rule) Split(text string) []string {
	out := make([]string, 0)
	if text == "" {
		return out
	}
	var pending strings.Builder
	flush := func() {
		if s := strings.TrimSpace(pending.String()); s != "" {
			out = append(out, s)
		}
		pending.Reset()
	}
	segments := sentences.FromString(text)
	for segments.Next() {
		segment := segments.Value()
		pending.WriteString(segment)
		if endsSentence(segment) {
			flush()
		}
	}
	flush()
	return out
}

func endsSentence(segment string) bool {
	s := strings.TrimRightFunc(segment, unicode.IsSpace)
	s = strings.TrimRight(s, closers)
	last, size := utf8.DecodeLastRuneInString(s)
	if size == 0 {
		return false
	}
	return isTerminator(last)
}

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '…', '‼', '⁇', '⁈', '⁉', '。', '！', '？', '．', '؟', '।':
		return true
	}
	return false
}
