package inference

import (
	"log/slog"
	"runtime"
)

// Option configures an Embedder.
type Option func(*config)

type config struct {
	poolSize   int
	cacheSize  int
	maxSeqLen  int
	outputName string
	logger     *slog.Logger
}

func defaultConfig() config {
	return config{
		poolSize:  runtime.NumCPU(),
		cacheSize: 50000,
		maxSeqLen: 128,
		logger:    slog.Default(),
	}
}

// WithPoolSize sets the ONNX session pool size (default: runtime.NumCPU()).
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithCacheSize sets how many embeddings are kept in memory (default: 50000).
// Zero disables caching.
func WithCacheSize(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.cacheSize = n
		}
	}
}

// WithMaxSeqLen caps the model input length including <s> and </s>
// (default: 128).
func WithMaxSeqLen(n int) Option {
	return func(c *config) {
		if n >= 3 {
			c.maxSeqLen = n
		}
	}
}

// WithOutputName selects the graph output to pool (default:
// last_hidden_state). Models exporting a pooled sentence embedding name it
// here, e.g. "sentence_embedding".
func WithOutputName(name string) Option {
	return func(c *config) {
		c.outputName = name
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
