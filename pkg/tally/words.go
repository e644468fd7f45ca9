package tally

import (
	"strings"
)

// stopwords are skipped when counting title keywords.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "all": {}, "also": {}, "am": {}, "an": {},
	"and": {}, "any": {}, "are": {}, "as": {}, "at": {}, "be": {}, "been": {},
	"before": {}, "but": {}, "by": {}, "can": {}, "could": {}, "did": {}, "do": {},
	"does": {}, "for": {}, "from": {}, "got": {}, "had": {}, "has": {}, "have": {},
	"how": {}, "i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},
	"just": {}, "me": {}, "my": {}, "no": {}, "not": {}, "of": {}, "on": {}, "or": {},
	"our": {}, "out": {}, "so": {}, "some": {}, "than": {}, "that": {}, "the": {},
	"their": {}, "them": {}, "then": {}, "there": {}, "these": {}, "they": {},
	"this": {}, "to": {}, "up": {}, "was": {}, "we": {}, "were": {}, "what": {},
	"when": {}, "which": {}, "who": {}, "why": {}, "will": {}, "with": {},
	"would": {}, "you": {}, "your": {},

	// Forum boilerplate that says nothing about the topic.
	"leetcode": {}, "discuss": {}, "post": {}, "posted": {}, "share": {},
	"shared": {}, "help": {}, "please": {}, "thanks": {}, "anyone": {},
}

// IsStopword checks if a word is a common stopword that should be filtered out.
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

// WordFrequency counts lower-cased words in text, trimming punctuation at
// the edges and skipping stopwords, single characters and pure numbers.
func WordFrequency(text string) *Counter {
	c := NewCounter()
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return ('a' > r || r > 'z') && ('0' > r || r > '9')
		})
		if len(word) < 2 || IsStopword(word) || isNumber(word) {
			continue
		}
		c.Inc(word)
	}
	return c
}

func isNumber(word string) bool {
	for _, r := range word {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// TopKeywords returns the n most frequent words across texts.
func TopKeywords(texts []string, n int) []string {
	counters := make([]*Counter, 0, len(texts))
	for _, t := range texts {
		counters = append(counters, WordFrequency(t))
	}
	ranked := Reduce(counters...).MostCommon(n)
	out := make([]string, len(ranked))
	for i, e := range ranked {
		out[i] = e.Key
	}
	return out
}
