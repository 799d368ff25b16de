package similarity

import (
	"math"
	"strings"
	"unicode/utf8"
)

// terms lowercases words and drops those shorter than two runes.
func terms(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) < 2 {
			continue
		}
		out = append(out, strings.ToLower(w))
	}
	return out
}

// vocabulary assigns column indexes to the distinct terms of both documents.
func vocabulary(docs ...[]string) map[string]int {
	vocab := make(map[string]int)
	for _, doc := range docs {
		for _, t := range doc {
			if _, ok := vocab[t]; !ok {
				vocab[t] = len(vocab)
			}
		}
	}
	return vocab
}

func counts(doc []string, vocab map[string]int) []float64 {
	v := make([]float64, len(vocab))
	for _, t := range doc {
		v[vocab[t]]++
	}
	return v
}

// CosineTF returns the cosine between the term count vectors of a and b. A
// document without terms has similarity 0 with anything.
func CosineTF(a, b []string) float64 {
	ta, tb := terms(a), terms(b)
	vocab := vocabulary(ta, tb)
	return cosine(counts(ta, vocab), counts(tb, vocab))
}

// CosineTFIDF returns the cosine between the tf-idf vectors of a and b, with
// the two documents as the corpus. Idf is smoothed, ln((1+n)/(1+df))+1.
func CosineTFIDF(a, b []string) float64 {
	ta, tb := terms(a), terms(b)
	vocab := vocabulary(ta, tb)
	va, vb := counts(ta, vocab), counts(tb, vocab)

	const n = 2.0
	for i := range va {
		df := 0.0
		if va[i] > 0 {
			df++
		}
		if vb[i] > 0 {
			df++
		}
		idf := math.Log((1+n)/(1+df)) + 1
		va[i] *= idf
		vb[i] *= idf
	}
	return cosine(va, vb)
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func cosine32(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
