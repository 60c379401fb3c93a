package cluster

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// stopwords is a compact English stopword list. Tokens here never become
// keywords and never participate in bigrams.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "all": {},
	"am": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "because": {}, "been": {}, "before": {}, "being": {}, "below": {},
	"between": {}, "both": {}, "but": {}, "by": {}, "can": {}, "could": {},
	"did": {}, "do": {}, "does": {}, "doing": {}, "down": {}, "during": {},
	"each": {}, "few": {}, "for": {}, "from": {}, "further": {}, "had": {},
	"has": {}, "have": {}, "having": {}, "he": {}, "her": {}, "here": {},
	"hers": {}, "him": {}, "his": {}, "how": {}, "i": {}, "if": {}, "in": {},
	"into": {}, "is": {}, "it": {}, "its": {}, "just": {}, "me": {}, "more": {},
	"most": {}, "my": {}, "no": {}, "nor": {}, "not": {}, "now": {}, "of": {},
	"off": {}, "on": {}, "once": {}, "only": {}, "or": {}, "other": {},
	"our": {}, "ours": {}, "out": {}, "over": {}, "own": {}, "same": {},
	"she": {}, "should": {}, "so": {}, "some": {}, "such": {}, "than": {},
	"that": {}, "the": {}, "their": {}, "theirs": {}, "them": {}, "then": {},
	"there": {}, "these": {}, "they": {}, "this": {}, "those": {}, "through": {},
	"to": {}, "too": {}, "under": {}, "until": {}, "up": {}, "very": {},
	"was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "while": {}, "who": {}, "whom": {}, "why": {}, "will": {},
	"with": {}, "would": {}, "you": {}, "your": {}, "yours": {},
}

// tokenize lowercases text and splits it into word tokens of two or more
// alphanumeric characters, dropping stopwords.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}

// terms returns the unigrams and bigrams of a document.
func terms(text string) []string {
	tokens := tokenize(text)
	out := append([]string(nil), tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// TopKeywords extracts the highest-TF-IDF terms of a document set. Each
// document's term vector is L2-normalized before scores are summed, so one
// long comment cannot dominate the cluster's keyword list. Ties break
// alphabetically.
func TopKeywords(docs []string, n int) []string {
	if len(docs) == 0 || n <= 0 {
		return nil
	}

	docTerms := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		counts := make(map[string]int)
		for _, t := range terms(doc) {
			counts[t]++
		}
		docTerms[i] = counts
		for t := range counts {
			df[t]++
		}
	}

	nDocs := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for t, d := range df {
		idf[t] = math.Log((1+nDocs)/(1+float64(d))) + 1
	}

	scores := make(map[string]float64)
	for _, counts := range docTerms {
		var norm float64
		weights := make(map[string]float64, len(counts))
		for t, c := range counts {
			w := float64(c) * idf[t]
			weights[t] = w
			norm += w * w
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for t, w := range weights {
			scores[t] += w / norm
		}
	}

	ranked := make([]string, 0, len(scores))
	for t := range scores {
		ranked = append(ranked, t)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if scores[ranked[i]] != scores[ranked[j]] {
			return scores[ranked[i]] > scores[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
