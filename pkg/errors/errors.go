package errors

import "errors"

var (
	// Registry errors
	ErrUnknownBackend = errors.New("unknown embedding backend")

	// Factory errors
	ErrModelConstruction = errors.New("failed to construct embedding model")

	// Prediction errors
	ErrMissingColumns    = errors.New("input columns not found")
	ErrBatchEmbedding    = errors.New("batch embedding failed")
	ErrDocumentEmbedding = errors.New("failed to generate embedding for document")

	// Handler errors
	ErrModelNotFound = errors.New("model not found")
	ErrNotSupported  = errors.New("not supported")
)
