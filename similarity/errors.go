package similarity

import "errors"

// ErrNilEmbedder is returned by embedding metrics called without an Embedder.
var ErrNilEmbedder = errors.New("similarity: nil embedder")
