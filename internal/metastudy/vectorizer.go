package metastudy

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// TermMatrix is a documents-by-vocabulary TF-IDF weight matrix. Vocabulary
// holds the distinct non-stopword terms in ascending lexical order, which
// fixes a stable, reproducible column ordering for identical input.
type TermMatrix struct {
	Vocabulary []string
	Rows       [][]float64
}

// Vectorizer converts a corpus of summary strings into a TermMatrix.
// Weights are raw term frequency scaled by smoothed inverse document
// frequency (ln((1+n)/(1+df))+1), with each document row L2-normalized.
type Vectorizer struct {
	stopWords map[string]struct{}
}

// NewVectorizer returns a vectorizer with the built-in English stop words.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{stopWords: englishStopWords}
}

// Fit builds the TF-IDF matrix for the given documents. A corpus of zero or
// one documents still produces a valid matrix; the vocabulary may be empty
// when every token is a stop word, in which case every row is all zeros and
// downstream clustering treats the documents as trivially similar.
func (v *Vectorizer) Fit(docs []string) *TermMatrix {
	counts := make([]map[string]int, len(docs))
	df := map[string]int{}

	for i, doc := range docs {
		counts[i] = map[string]int{}
		for _, term := range v.tokenize(doc) {
			counts[i][term]++
		}
		for term := range counts[i] {
			df[term]++
		}
	}

	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	rows := make([][]float64, len(docs))
	for i := range docs {
		row := make([]float64, len(vocab))
		for term, tf := range counts[i] {
			j := index[term]
			row[j] = float64(tf) * idf[j]
		}
		l2Normalize(row)
		rows[i] = row
	}

	return &TermMatrix{Vocabulary: vocab, Rows: rows}
}

// tokenize lowercases the input and emits runs of letters and digits at
// least two runes long, minus stop words.
func (v *Vectorizer) tokenize(s string) []string {
	var terms []string
	var current []rune

	flush := func() {
		if len(current) >= 2 {
			term := string(current)
			if _, stop := v.stopWords[term]; !stop {
				terms = append(terms, term)
			}
		}
		current = current[:0]
	}

	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current = append(current, r)
		} else {
			flush()
		}
	}
	flush()

	return terms
}

func l2Normalize(row []float64) {
	var sum float64
	for _, w := range row {
		sum += w * w
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range row {
		row[i] /= norm
	}
}
