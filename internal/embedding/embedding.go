package embedding

import "context"

// Provider is the interface all embedding backends implement. The
// returned slice must have one vector per input document, in input
// order.
type Provider interface {
	EmbedDocuments(ctx context.Context, docs []string) ([][]float64, error)
}

// BatchSizer is implemented by providers that advertise a preferred
// batch size. Providers without it are driven with the caller's
// default.
type BatchSizer interface {
	BatchSize() int
}

// Constructor builds a provider from its constructor fields. Field
// validation (credentials, endpoints) is the backend's own
// responsibility.
type Constructor func(fields map[string]any) (Provider, error)

// Spec describes one registered backend.
type Spec struct {
	// Identifier is the canonical class-style name, e.g. "OpenAIEmbeddings".
	Identifier string

	// Fields enumerates the constructor keys the backend accepts.
	// Anything else is dropped before construction.
	Fields []string

	New Constructor
}

// Accepts reports whether the spec declares the given constructor field.
func (s Spec) Accepts(field string) bool {
	for _, f := range s.Fields {
		if f == field {
			return true
		}
	}
	return false
}
