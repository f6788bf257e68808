// Package classifier decides whether extracted text is in scope for legal
// analysis. The policy is a deliberately lenient single-hit heuristic: one
// keyword anywhere in the lower-cased text accepts the whole document. The
// keyword set mixes narrow legal terms with broad administrative ones, so
// the gate is overinclusive on purpose.
package classifier

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Classifier is a keyword-driven acceptor over raw text.
type Classifier struct {
	keywords []string
}

// New returns a classifier using the built-in keyword set.
func New() *Classifier {
	return &Classifier{keywords: defaultKeywords}
}

// NewFromKeywords returns a classifier over a caller-supplied set. Keywords
// are matched lower-case; the set is normalized here once.
func NewFromKeywords(keywords []string) *Classifier {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			normalized = append(normalized, kw)
		}
	}
	return &Classifier{keywords: normalized}
}

// LoadFromFile reads a JSON array of keywords so the set can be versioned
// and tuned without a code change. An empty path selects the built-in set.
func LoadFromFile(path string) (*Classifier, error) {
	if path == "" {
		return New(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keywords file: %w", err)
	}
	var keywords []string
	if err := json.Unmarshal(data, &keywords); err != nil {
		return nil, fmt.Errorf("parse keywords file %s: %w", path, err)
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("keywords file %s contains no entries", path)
	}
	return NewFromKeywords(keywords), nil
}

// IsLegalDocument reports whether text contains any configured keyword,
// case-insensitively. Empty text always rejects.
func (c *Classifier) IsLegalDocument(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Keywords returns a copy of the active keyword set for auditing.
func (c *Classifier) Keywords() []string {
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}
