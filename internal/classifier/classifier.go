// Package classifier decides whether user-submitted text is acceptable for
// a positivity-only platform. The production system delegates this to an
// external model; the simulator ships a deterministic stand-in behind the
// same interface.
package classifier

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Classifier reports whether text may be published.
type Classifier interface {
	IsPositive(text string) bool
}

// Func adapts a plain function to the Classifier interface.
type Func func(text string) bool

func (f Func) IsPositive(text string) bool { return f(text) }

// WordFilter is the default classifier: it strips any markup from the text
// and rejects it if a banned word remains. Matching is case-insensitive.
type WordFilter struct {
	policy *bluemonday.Policy
	banned []string
}

// NewWordFilter builds a filter rejecting the given words. With no words it
// rejects "negative".
func NewWordFilter(banned ...string) *WordFilter {
	if len(banned) == 0 {
		banned = []string{"negative"}
	}
	lowered := make([]string, len(banned))
	for i, w := range banned {
		lowered[i] = strings.ToLower(w)
	}
	return &WordFilter{
		policy: bluemonday.StrictPolicy(),
		banned: lowered,
	}
}

func (f *WordFilter) IsPositive(text string) bool {
	clean := strings.ToLower(f.policy.Sanitize(text))
	for _, w := range f.banned {
		if strings.Contains(clean, w) {
			return false
		}
	}
	return true
}
