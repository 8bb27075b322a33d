package preprocess

import (
	"math"
	"sort"
	"strings"
)

// Vectorizer computes sparse TF-IDF vectors over a fitted corpus.
// Unigrams and bigrams are indexed; inverse document frequencies use
// the smoothed form ln((1+n)/(1+df)) + 1 and vectors are L2-normalized.
type Vectorizer struct {
	NgramMax    int
	MaxFeatures int

	docFreq map[string]int
	numDocs int
	fitted  bool
}

// NewVectorizer returns a vectorizer indexing unigrams and bigrams
func NewVectorizer() *Vectorizer {
	return &Vectorizer{NgramMax: 2, MaxFeatures: 20000}
}

func (v *Vectorizer) terms(text string) []string {
	tokens := Tokenize(text)
	terms := make([]string, 0, len(tokens)*v.NgramMax)
	for n := 1; n <= v.NgramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// Fit builds the vocabulary and document frequencies from the corpus
func (v *Vectorizer) Fit(docs []string) {
	v.docFreq = make(map[string]int)
	v.numDocs = len(docs)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range v.terms(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			v.docFreq[term]++
		}
	}
	if v.MaxFeatures > 0 && len(v.docFreq) > v.MaxFeatures {
		v.truncateVocabulary()
	}
	v.fitted = true
}

// truncateVocabulary keeps the MaxFeatures most frequent terms,
// breaking ties lexicographically so the result is deterministic
func (v *Vectorizer) truncateVocabulary() {
	type entry struct {
		term string
		df   int
	}
	entries := make([]entry, 0, len(v.docFreq))
	for term, df := range v.docFreq {
		entries = append(entries, entry{term, df})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].df != entries[j].df {
			return entries[i].df > entries[j].df
		}
		return entries[i].term < entries[j].term
	})
	kept := make(map[string]int, v.MaxFeatures)
	for _, e := range entries[:v.MaxFeatures] {
		kept[e.term] = e.df
	}
	v.docFreq = kept
}

// Transform maps a document onto the fitted vocabulary as a sparse,
// L2-normalized TF-IDF vector. Terms outside the vocabulary are ignored.
func (v *Vectorizer) Transform(doc string) map[string]float64 {
	if !v.fitted {
		return nil
	}
	counts := make(map[string]float64)
	for _, term := range v.terms(doc) {
		if _, ok := v.docFreq[term]; ok {
			counts[term]++
		}
	}
	var norm float64
	for term, tf := range counts {
		idf := math.Log(float64(1+v.numDocs)/float64(1+v.docFreq[term])) + 1
		w := tf * idf
		counts[term] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for term := range counts {
			counts[term] /= norm
		}
	}
	return counts
}

// FitTransform fits on the corpus and returns the vector of each document
func (v *Vectorizer) FitTransform(docs []string) []map[string]float64 {
	v.Fit(docs)
	vecs := make([]map[string]float64, len(docs))
	for i, doc := range docs {
		vecs[i] = v.Transform(doc)
	}
	return vecs
}

// Cosine returns the cosine similarity of two sparse vectors.
// Zero vectors have similarity 0.
func Cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot, normA, normB float64
	for term, wa := range a {
		normA += wa * wa
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	for _, wb := range b {
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// CosineFloat32 returns the cosine similarity of two dense embedding
// vectors, 0 when lengths differ or either vector is zero.
func CosineFloat32(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
