package inference

import "errors"

var (
	// ErrPoolClosed is returned when acquiring from a closed pool.
	ErrPoolClosed = errors.New("inference: pool closed")

	// ErrSessionClosed is returned when running a closed session.
	ErrSessionClosed = errors.New("inference: session closed")

	// ErrModelNotFound indicates the ONNX model file does not exist.
	ErrModelNotFound = errors.New("inference: model file not found")

	// ErrInvalidModel indicates the ONNX model could not be loaded.
	ErrInvalidModel = errors.New("inference: invalid model")

	// ErrTokenizerFailed indicates the tokenizer model could not be loaded.
	ErrTokenizerFailed = errors.New("inference: tokenizer load failed")
)
