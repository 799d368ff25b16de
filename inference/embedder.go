package inference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jamesainslie/wikiedits/tokenizer"
)

// Embedder maps text to dense vectors with a multilingual sentence-embedding
// model. It is safe for concurrent use.
type Embedder struct {
	tokenizer *tokenizer.Tokenizer
	pool      *Pool
	cache     *lru.Cache[string, []float32]
	maxSeqLen int
	logger    *slog.Logger
}

// NewEmbedder creates an Embedder from an ONNX model and its SentencePiece
// tokenizer model.
func NewEmbedder(modelPath, tokenizerPath string, opts ...Option) (*Embedder, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, err := os.Stat(modelPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
		}
		return nil, fmt.Errorf("checking model file: %w", err)
	}

	tok, err := tokenizer.New(tokenizerPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTokenizerFailed, tokenizerPath)
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenizerFailed, err)
	}

	var cache *lru.Cache[string, []float32]
	if cfg.cacheSize > 0 {
		cache, err = lru.New[string, []float32](cfg.cacheSize)
		if err != nil {
			_ = tok.Close()
			return nil, fmt.Errorf("creating cache: %w", err)
		}
	}

	pool, err := NewPool(SessionConfig{ModelPath: modelPath, OutputName: cfg.outputName}, cfg.poolSize)
	if err != nil {
		_ = tok.Close()
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	cfg.logger.Debug("embedder ready",
		"model", modelPath,
		"vocab", tok.VocabSize(),
		"pool", pool.Size(),
	)

	return &Embedder{
		tokenizer: tok,
		pool:      pool,
		cache:     cache,
		maxSeqLen: cfg.maxSeqLen,
		logger:    cfg.logger,
	}, nil
}

// Embed returns the embedding of text. Text that produces no tokens yields a
// nil vector and no error.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.cache != nil {
		if vec, ok := e.cache.Get(text); ok {
			return vec, nil
		}
	}

	ids := e.tokenizer.EncodeSequence(text, e.maxSeqLen)
	if len(ids) <= 2 {
		return nil, nil
	}

	vec, err := e.pool.Embed(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("embedding %q: %w", text, err)
	}

	if e.cache != nil {
		e.cache.Add(text, vec)
	}
	return vec, nil
}

// Close releases all resources.
func (e *Embedder) Close() error {
	var errs []error

	if e.pool != nil {
		if err := e.pool.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if e.tokenizer != nil {
		if err := e.tokenizer.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
