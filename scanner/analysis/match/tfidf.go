package match

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Vectorizer builds TF-IDF vectors over a small corpus. Vocabulary is
// unigrams plus bigrams of tokens at least two characters long, with
// English stopwords excluded, capped at maxFeatures terms by corpus
// frequency. Vectors are L2-normalized, idf uses smoothing:
// idf(t) = ln((1+n)/(1+df)) + 1.
type Vectorizer struct {
	maxFeatures int
	stopwords   map[string]struct{}
}

func NewVectorizer(maxFeatures int, stopwords map[string]struct{}) *Vectorizer {
	return &Vectorizer{
		maxFeatures: maxFeatures,
		stopwords:   stopwords,
	}
}

var tokenRe = regexp.MustCompile(`\b\w\w+\b`)

func (v *Vectorizer) tokenize(doc string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(doc), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if _, ok := v.stopwords[t]; !ok {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// terms emits the unigrams and bigrams of one document
func (v *Vectorizer) terms(doc string) []string {
	tokens := v.tokenize(doc)
	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// FitTransform builds the vocabulary from the documents and returns the
// sorted feature names with one L2-normalized TF-IDF vector per
// document
func (v *Vectorizer) FitTransform(docs []string) ([]string, [][]float64) {
	counts := make([]map[string]int, len(docs))
	totals := map[string]int{}
	docFreq := map[string]int{}

	for i, doc := range docs {
		counts[i] = map[string]int{}
		for _, term := range v.terms(doc) {
			counts[i][term]++
		}
		for term, n := range counts[i] {
			totals[term] += n
			docFreq[term]++
		}
	}

	vocab := make([]string, 0, len(totals))
	for term := range totals {
		vocab = append(vocab, term)
	}

	if v.maxFeatures > 0 && len(vocab) > v.maxFeatures {
		sort.Slice(vocab, func(i, j int) bool {
			if totals[vocab[i]] != totals[vocab[j]] {
				return totals[vocab[i]] > totals[vocab[j]]
			}
			return vocab[i] < vocab[j]
		})
		vocab = vocab[:v.maxFeatures]
	}
	sort.Strings(vocab)

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	matrix := make([][]float64, len(docs))
	for d := range docs {
		row := make([]float64, len(vocab))
		var norm float64
		for i, term := range vocab {
			row[i] = float64(counts[d][term]) * idf[i]
			norm += row[i] * row[i]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for i := range row {
				row[i] /= norm
			}
		}
		matrix[d] = row
	}
	return vocab, matrix
}

// CosineSimilarity of two equal-length vectors. Zero vectors yield 0.
func CosineSimilarity(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
