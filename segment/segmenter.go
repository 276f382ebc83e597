// Package segment splits document text into sentences.
//
// Two models share the same contract: a rule-based splitter following
// Unicode UAX #29 sentence boundaries, and the statistical Punkt model
// trained for English. Both are immutable once built and safe for
// concurrent use.
package segment

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// ModelRule is the rule-based splitter; it needs no model data.
	ModelRule = "rule"
	// ModelPunkt is the statistical Punkt model for English.
	ModelPunkt = "punkt"
)

// Segmenter splits text into an ordered sequence of trimmed sentences.
type Segmenter interface {
	Split(text string) []string
}

type constructor func() (Segmenter, error)

var registry = map[string]constructor{
	ModelRule:  func() (Segmenter, error) { return NewRule(), nil },
	ModelPunkt: func() (Segmenter, error) { return NewPunkt() },
}

// New builds the segmenter registered for model. An empty model selects ModelRule.
func New(model string) (Segmenter, error) {
	model = strings.ToLower(strings.TrimSpace(model))
	if model == "" {
		model = ModelRule
	}
	ctor, ok := registry[model]
	if !ok {
		return nil, fmt.Errorf("segment: unknown model %q (available: %s)", model, strings.Join(Models(), ", "))
	}
	return ctor()
}

// Models returns the registered model names.
func Models() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
