// Package textindex implements a TF-IDF vector space over knowledge chunks
// with cosine-similarity retrieval and an on-disk cache artifact.
package textindex

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenRe matches word tokens of at least two letters/digits.
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// TermWeight is one non-zero component of a sparse vector.
type TermWeight struct {
	Index  int
	Weight float64
}

// SparseVector is a term-weight vector sorted by term index.
type SparseVector []TermWeight

// Dot returns the dot product of two sparse vectors. For L2-normalized
// vectors this is the cosine similarity.
func (v SparseVector) Dot(other SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v) && j < len(other) {
		switch {
		case v[i].Index == other[j].Index:
			sum += v[i].Weight * other[j].Weight
			i++
			j++
		case v[i].Index < other[j].Index:
			i++
		default:
			j++
		}
	}
	return sum
}

// VectorizerConfig controls vocabulary construction and term weighting.
type VectorizerConfig struct {
	// MaxFeatures caps the vocabulary; the most frequent terms win,
	// ties broken alphabetically. Zero means no cap.
	MaxFeatures int
	// Bigrams adds adjacent-term pairs to the vocabulary.
	Bigrams bool
	// SublinearTF replaces raw term counts with 1 + ln(count).
	SublinearTF bool
	// StopWords are dropped before n-gram construction.
	StopWords []string
}

// Vectorizer is a fitted TF-IDF transform. Fields are exported so the
// fitted state round-trips through the cache artifact; they must not be
// mutated after Fit.
type Vectorizer struct {
	Config     VectorizerConfig
	Vocabulary map[string]int
	IDF        []float64
}

// NewVectorizer returns an unfitted vectorizer.
func NewVectorizer(cfg VectorizerConfig) *Vectorizer {
	return &Vectorizer{Config: cfg}
}

// Fit builds the vocabulary and IDF weights from the corpus. Vocabulary
// indices are assigned in sorted term order so fitting is deterministic.
func (v *Vectorizer) Fit(corpus []string) {
	stop := stopSet(v.Config.StopWords)

	df := make(map[string]int)
	total := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, term := range v.terms(text, stop) {
			total[term]++
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	terms := make([]string, 0, len(total))
	for term := range total {
		terms = append(terms, term)
	}

	if v.Config.MaxFeatures > 0 && len(terms) > v.Config.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if total[terms[i]] != total[terms[j]] {
				return total[terms[i]] > total[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.Config.MaxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(corpus))
	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, term := range terms {
		v.Vocabulary[term] = i
		// Smoothed IDF: acts as if one extra document contained every term.
		v.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
}

// Transform projects text into the fitted vector space and L2-normalizes
// the result. Terms outside the vocabulary are ignored; text with no
// vocabulary overlap yields an empty (all-zero) vector.
func (v *Vectorizer) Transform(text string) SparseVector {
	stop := stopSet(v.Config.StopWords)

	counts := make(map[int]int)
	for _, term := range v.terms(text, stop) {
		if idx, ok := v.Vocabulary[term]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	vec := make(SparseVector, 0, len(counts))
	for idx, count := range counts {
		tf := float64(count)
		if v.Config.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		vec = append(vec, TermWeight{Index: idx, Weight: tf * v.IDF[idx]})
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].Index < vec[j].Index })

	var norm float64
	for _, tw := range vec {
		norm += tw.Weight * tw.Weight
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i].Weight /= norm
		}
	}
	return vec
}

// Dimension returns the fitted vocabulary size.
func (v *Vectorizer) Dimension() int { return len(v.Vocabulary) }

// terms tokenizes text, drops stop words, and appends bigrams when
// configured. Bigrams are built after stop-word removal.
func (v *Vectorizer) terms(text string, stop map[string]struct{}) []string {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)

	tokens := raw[:0]
	for _, t := range raw {
		if _, isStop := stop[t]; isStop {
			continue
		}
		tokens = append(tokens, t)
	}

	if !v.Config.Bigrams {
		return tokens
	}
	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

func stopSet(words []string) map[string]struct{} {
	if len(words) == 0 {
		return nil
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
