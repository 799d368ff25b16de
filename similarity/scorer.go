package similarity

import (
	"context"

	"github.com/jamesainslie/wikiedits/tokenizer"
)

// Scores holds the four metrics for one pair of passages. Embedding is only
// meaningful when HasEmbedding is true.
type Scores struct {
	TF           float64
	TFIDF        float64
	SoftCosine   float64
	Embedding    float64
	HasEmbedding bool
}

// Scorer computes Scores for passages of one language.
type Scorer struct {
	embedder Embedder
	stop     tokenizer.Stopwords
}

// NewScorer returns a Scorer using e for word vectors and dropping the given
// stopwords. stop may be nil.
func NewScorer(e Embedder, stop tokenizer.Stopwords) *Scorer {
	return &Scorer{embedder: e, stop: stop}
}

// Score tokenizes both passages and computes all metrics.
func (s *Scorer) Score(ctx context.Context, a, b string) (Scores, error) {
	wa := tokenizer.Words(a, s.stop)
	wb := tokenizer.Words(b, s.stop)

	soft, err := SoftCosine(ctx, wa, wb, s.embedder)
	if err != nil {
		return Scores{}, err
	}
	emb, ok, err := EmbeddingSimilarity(ctx, wa, wb, s.embedder)
	if err != nil {
		return Scores{}, err
	}

	return Scores{
		TF:           CosineTF(wa, wb),
		TFIDF:        CosineTFIDF(wa, wb),
		SoftCosine:   soft,
		Embedding:    emb,
		HasEmbedding: ok,
	}, nil
}
