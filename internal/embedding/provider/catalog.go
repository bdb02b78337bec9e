package provider

import (
	"fmt"
	"strings"

	"embedpipe/internal/embedding"
)

// classSuffix is stripped from a backend identifier to derive its
// user-facing alias, e.g. OpenAIEmbeddings -> OpenAI.
const classSuffix = "Embeddings"

// firstParty backends ship with this service.
var firstParty = []embedding.Spec{
	{
		Identifier: "VLLMEmbeddings",
		Fields:     []string{"base_url", "model", "batch_size"},
		New:        newVLLMProvider,
	},
	{
		Identifier: "FastAPIEmbeddings",
		Fields:     []string{"base_url", "api_key", "model", "batch_size"},
		New:        newFastAPIProvider,
	},
}

// catalog lists the external provider backends this build knows how to
// construct. Registration is explicit at process start.
var catalog = []embedding.Spec{
	{
		Identifier: "OpenAIEmbeddings",
		Fields:     []string{"api_key", "base_url", "model", "batch_size"},
		New:        newOpenAIProvider,
	},
	{
		Identifier: "GeminiEmbeddings",
		Fields:     []string{"api_key", "model", "batch_size"},
		New:        newGeminiProvider,
	},
	{
		Identifier: "OllamaEmbeddings",
		Fields:     []string{"base_url", "model"},
		New:        newOllamaProvider,
	},
	{
		Identifier: "HuggingFaceEmbeddings",
		Fields:     []string{"api_key", "base_url", "model"},
		New:        newHuggingFaceProvider,
	},
}

// NewRegistry builds the backend registry with every known provider
// registered under its identifier plus a friendly alias in natural and
// lower case. An empty or conflicting catalog is an error: the
// registry cannot operate in a degraded mode, its whole purpose is
// backend dispatch.
func NewRegistry() (*embedding.Registry, error) {
	if len(catalog) == 0 {
		return nil, fmt.Errorf("no embedding backends available")
	}

	r := embedding.NewRegistry()
	for _, specs := range [][]embedding.Spec{firstParty, catalog} {
		for _, spec := range specs {
			friendly := strings.TrimSuffix(spec.Identifier, classSuffix)
			if err := r.Register(spec, friendly); err != nil {
				return nil, fmt.Errorf("failed to register backend %s: %w", spec.Identifier, err)
			}
		}
	}
	return r, nil
}
