// Package nlp implements the text normalizer: tokenize, drop stopwords and
// punctuation, lemmatize, lowercase.
package nlp

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/bbalet/stopwords"
	"github.com/jdkato/prose/v2"

	"libridex/internal/core"
)

var _ core.Normalizer = (*Normalizer)(nil)

// Normalizer holds the English lemmatizer dictionary, loaded once at
// startup.
type Normalizer struct {
	lemmatizer *golem.Lemmatizer
}

func NewNormalizer() (*Normalizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load lemmatizer dictionary: %w", err)
	}
	return &Normalizer{lemmatizer: lem}, nil
}

// Normalize emits the lowercased lemma of every surviving token, joined by
// single spaces, preserving source order. Tokens that are stopwords, pure
// punctuation or pure whitespace are dropped.
func (n *Normalizer) Normalize(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return "", fmt.Errorf("tokenize: %w", err)
	}

	tokens := doc.Tokens()
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		word := strings.ToLower(strings.TrimSpace(tok.Text))
		if word == "" || isPunctuation(word) || isStopword(word) {
			continue
		}
		out = append(out, strings.ToLower(n.lemmatizer.Lemma(word)))
	}
	return strings.Join(out, " "), nil
}

func isPunctuation(word string) bool {
	for _, r := range word {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// isStopword relies on stopwords.CleanString reducing a lone English
// stopword to an empty string.
func isStopword(word string) bool {
	return strings.TrimSpace(stopwords.CleanString(word, "en", false)) == ""
}
