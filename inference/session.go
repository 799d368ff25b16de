// Package inference runs multilingual sentence-embedding models through ONNX
// Runtime.
package inference

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	ortEnvOnce sync.Once
	ortEnvErr  error
)

// SetLibraryPath points ONNX Runtime at its shared library. It must be
// called before the first session is created.
func SetLibraryPath(path string) {
	if path != "" {
		ort.SetSharedLibraryPath(path)
	}
}

// initORT initializes ONNX Runtime environment once.
func initORT() error {
	ortEnvOnce.Do(func() {
		ortEnvErr = ort.InitializeEnvironment()
	})
	return ortEnvErr
}

// SessionConfig names the model file and the graph inputs and output.
type SessionConfig struct {
	ModelPath  string
	InputNames []string // default: input_ids, attention_mask
	OutputName string   // default: last_hidden_state
}

func (c SessionConfig) withDefaults() SessionConfig {
	if len(c.InputNames) == 0 {
		c.InputNames = []string{"input_ids", "attention_mask"}
	}
	if c.OutputName == "" {
		c.OutputName = "last_hidden_state"
	}
	return c
}

// Session wraps an ONNX Runtime session producing one embedding per input
// sequence.
type Session struct {
	session    *ort.DynamicAdvancedSession
	inputNames []string
	mu         sync.Mutex
	closed     bool
}

// NewSession creates a new ONNX session from a model file.
func NewSession(cfg SessionConfig) (*Session, error) {
	cfg = cfg.withDefaults()

	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	if err := initORT(); err != nil {
		return nil, fmt.Errorf("initializing ONNX runtime: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("creating session options: %w", err)
	}
	defer func() { _ = options.Destroy() }()

	session, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath,
		cfg.InputNames,
		[]string{cfg.OutputName},
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &Session{session: session, inputNames: slices.Clone(cfg.InputNames)}, nil
}

// Embed runs the model on one tokenized sequence and returns its embedding.
// Token-level outputs are mean pooled; sentence-level outputs are returned
// as is.
func (s *Session) Embed(ctx context.Context, inputIDs []int64) ([]float32, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}

	seqLen := int64(len(inputIDs))
	if seqLen == 0 {
		return nil, fmt.Errorf("empty input sequence")
	}
	shape := ort.NewShape(1, seqLen)

	inputs := make([]ort.Value, 0, len(s.inputNames))
	defer func() {
		for _, v := range inputs {
			_ = v.Destroy()
		}
	}()

	for _, name := range s.inputNames {
		data := make([]int64, seqLen)
		switch name {
		case "input_ids":
			copy(data, inputIDs)
		case "attention_mask":
			for i := range data {
				data[i] = 1
			}
		}
		// token_type_ids and anything else stay zero.

		tensor, err := ort.NewTensor(shape, data)
		if err != nil {
			return nil, fmt.Errorf("creating %s tensor: %w", name, err)
		}
		inputs = append(inputs, tensor)
	}

	outputs := []ort.Value{nil}
	if err := s.session.Run(inputs, outputs); err != nil {
		return nil, fmt.Errorf("running inference: %w", err)
	}
	if outputs[0] == nil {
		return nil, fmt.Errorf("no output produced")
	}
	defer func() { _ = outputs[0].Destroy() }()

	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type")
	}

	return pool(out.GetShape(), out.GetData())
}

// pool reduces a [1, seq, hidden] output to its mean over the sequence. A
// [1, hidden] output is copied unchanged.
func pool(shape ort.Shape, data []float32) ([]float32, error) {
	switch len(shape) {
	case 2:
		return slices.Clone(data[:shape[1]]), nil
	case 3:
		seq, hidden := int(shape[1]), int(shape[2])
		if seq == 0 {
			return nil, fmt.Errorf("empty output sequence")
		}
		vec := make([]float32, hidden)
		for t := 0; t < seq; t++ {
			row := data[t*hidden : (t+1)*hidden]
			for i, v := range row {
				vec[i] += v
			}
		}
		for i := range vec {
			vec[i] /= float32(seq)
		}
		return vec, nil
	default:
		return nil, fmt.Errorf("unexpected output shape %v", shape)
	}
}

// Close releases ONNX resources.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if s.session != nil {
		return s.session.Destroy()
	}
	return nil
}
