// Package textvec turns free text into L2-normalized TF-IDF term vectors.
//
// Weights are raw term counts times the smoothed inverse document frequency
//
//	idf(t) = ln((1+N) / (1+df(t))) + 1
//
// so a term present in every document still carries a positive weight.
// Vocabulary dimensions follow lexicographic term order, which makes indices
// reproducible for identical input.
package textvec

import (
	"math"
	"sort"
)

// Vocabulary maps terms to vector dimensions and holds their IDF.
type Vocabulary struct {
	terms []string
	index map[string]int
	idf   []float64
}

// Fit builds the vocabulary from overviews and returns one unit-length vector
// per overview, in input order. Overviews without any vocabulary token map to
// the zero vector.
func Fit(overviews []string) (*Vocabulary, []TermVector) {
	docs := make([][]string, len(overviews))
	df := make(map[string]int)
	for i, text := range overviews {
		tokens := Tokenize(text)
		docs[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	n := float64(len(overviews))
	vocab := &Vocabulary{
		terms: terms,
		index: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	for i, t := range terms {
		vocab.index[t] = i
		vocab.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	vectors := make([]TermVector, len(docs))
	for i, tokens := range docs {
		vectors[i] = vocab.vectorize(tokens)
	}
	return vocab, vectors
}

// Transform vectorizes arbitrary text against the fitted vocabulary.
// Terms outside the vocabulary are ignored.
func (v *Vocabulary) Transform(text string) TermVector {
	return v.vectorize(Tokenize(text))
}

func (v *Vocabulary) vectorize(tokens []string) TermVector {
	if len(tokens) == 0 {
		return TermVector{}
	}
	counts := make(map[int]float64, len(tokens))
	for _, tok := range tokens {
		dim, ok := v.index[tok]
		if !ok {
			continue
		}
		counts[dim]++
	}
	for dim, tf := range counts {
		counts[dim] = tf * v.idf[dim]
	}
	return NewTermVector(counts).normalized()
}

// Len returns the vocabulary size.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Index returns the dimension of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Term returns the term at dimension i.
func (v *Vocabulary) Term(i int) string {
	if i < 0 || i >= len(v.terms) {
		return ""
	}
	return v.terms[i]
}

// IDF returns the inverse document frequency of dimension i, or 0 when out of range.
func (v *Vocabulary) IDF(i int) float64 {
	if i < 0 || i >= len(v.idf) {
		return 0
	}
	return v.idf[i]
}

// Terms returns a copy of the vocabulary in dimension order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// WeightedTerm is a term paired with its weight in some vector.
type WeightedTerm struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// TopTerms returns the k highest weighted terms of vec, ties broken by term.
func (v *Vocabulary) TopTerms(vec TermVector, k int) []WeightedTerm {
	if k <= 0 || vec.IsZero() {
		return []WeightedTerm{}
	}
	out := make([]WeightedTerm, 0, vec.Len())
	for _, e := range vec.entries {
		out = append(out, WeightedTerm{Term: v.Term(e.Dim), Weight: e.Weight})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Term < out[j].Term
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}
