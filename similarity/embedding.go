package similarity

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// Embedder maps a word to a dense vector. A nil vector means the word is out
// of vocabulary.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

const (
	softCosineThreshold = 0.0
	softCosineExponent  = 2.0
	softCosineNonzero   = 100
)

// vectors embeds every distinct word once, skipping words without a vector.
func vectors(ctx context.Context, e Embedder, words ...[]string) (map[string][]float32, error) {
	if e == nil {
		return nil, ErrNilEmbedder
	}
	vecs := make(map[string][]float32)
	seen := make(map[string]bool)
	for _, ws := range words {
		for _, w := range ws {
			if seen[w] {
				continue
			}
			seen[w] = true
			v, err := e.Embed(ctx, w)
			if err != nil {
				return nil, fmt.Errorf("word vector: %w", err)
			}
			if len(v) > 0 {
				vecs[w] = v
			}
		}
	}
	return vecs, nil
}

// SoftCosine returns the soft cosine measure of a and b. Term similarity is
// max(0, cos)^2 between word vectors, each term keeps at most 100 non-zero
// neighbours, and a term is always fully similar to itself. Words are
// compared as given, without lowercasing.
func SoftCosine(ctx context.Context, a, b []string, e Embedder) (float64, error) {
	vecs, err := vectors(ctx, e, a, b)
	if err != nil {
		return 0, err
	}

	vocab := vocabulary(a, b)
	dict := make([]string, len(vocab))
	for w, i := range vocab {
		dict[i] = w
	}
	sim := termSimilarity(dict, vecs)

	va, vb := counts(a, vocab), counts(b, vocab)
	ab := quadratic(va, vb, sim)
	aa := quadratic(va, va, sim)
	bb := quadratic(vb, vb, sim)
	if aa <= 0 || bb <= 0 {
		return 0, nil
	}
	return ab / math.Sqrt(aa*bb), nil
}

// termSimilarity builds the symmetric term similarity matrix over dict.
func termSimilarity(dict []string, vecs map[string][]float32) [][]float64 {
	n := len(dict)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
		sim[i][i] = 1
	}

	type neighbour struct {
		j int
		s float64
	}
	for i := 0; i < n; i++ {
		vi, ok := vecs[dict[i]]
		if !ok {
			continue
		}
		var ns []neighbour
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			vj, ok := vecs[dict[j]]
			if !ok {
				continue
			}
			if s := cosine32(vi, vj); s > softCosineThreshold {
				ns = append(ns, neighbour{j, math.Pow(s, softCosineExponent)})
			}
		}
		sort.SliceStable(ns, func(x, y int) bool { return ns[x].s > ns[y].s })
		if len(ns) > softCosineNonzero {
			ns = ns[:softCosineNonzero]
		}
		for _, nb := range ns {
			if nb.s > sim[i][nb.j] {
				sim[i][nb.j] = nb.s
				sim[nb.j][i] = nb.s
			}
		}
	}
	return sim
}

func quadratic(x, y []float64, m [][]float64) float64 {
	var sum float64
	for i := range x {
		if x[i] == 0 {
			continue
		}
		for j := range y {
			if y[j] == 0 {
				continue
			}
			sum += x[i] * m[i][j] * y[j]
		}
	}
	return sum
}

// EmbeddingSimilarity returns the cosine between the mean word vectors of a
// and b. ok is false when either side has no word with a vector.
func EmbeddingSimilarity(ctx context.Context, a, b []string, e Embedder) (score float64, ok bool, err error) {
	vecs, err := vectors(ctx, e, a, b)
	if err != nil {
		return 0, false, err
	}

	ma, mb := mean(a, vecs), mean(b, vecs)
	if ma == nil || mb == nil {
		return 0, false, nil
	}
	return cosine32(ma, mb), true, nil
}

func mean(words []string, vecs map[string][]float32) []float32 {
	var sum []float32
	n := 0
	for _, w := range words {
		v, ok := vecs[w]
		if !ok {
			continue
		}
		if sum == nil {
			sum = make([]float32, len(v))
		}
		if len(v) != len(sum) {
			continue
		}
		for i, x := range v {
			sum[i] += x
		}
		n++
	}
	if n == 0 {
		return nil
	}
	for i := range sum {
		sum[i] /= float32(n)
	}
	return sum
}
