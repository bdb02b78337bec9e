package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"embedpipe/internal/embedding"
	"embedpipe/pkg/utils"
)

// VLLMProvider targets a self-hosted vLLM server, which exposes an
// OpenAI-compatible embeddings endpoint.
type VLLMProvider struct {
	apiURL    string
	model     string
	batchSize int
}

func newVLLMProvider(fields map[string]any) (embedding.Provider, error) {
	baseURL := utils.StringField(fields, "base_url", "")
	if baseURL == "" {
		return nil, errors.New("base_url is required for a vLLM backend")
	}
	return &VLLMProvider{
		apiURL:    strings.TrimSuffix(baseURL, "/") + "/v1/embeddings",
		model:     utils.StringField(fields, "model", ""),
		batchSize: utils.IntField(fields, "batch_size", 0),
	}, nil
}

func (e *VLLMProvider) EmbedDocuments(ctx context.Context, docs []string) ([][]float64, error) {
	req := &openAIRequest{
		Model: e.model,
		Input: docs,
	}

	var resp openAIResponse
	if err := postJSON(ctx, e.apiURL, "", req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Data) != len(docs) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(docs), len(resp.Data))
	}

	embeddings := make([][]float64, len(resp.Data))
	for i, item := range resp.Data {
		embeddings[i] = item.Embedding
	}
	return embeddings, nil
}

func (e *VLLMProvider) BatchSize() int {
	return e.batchSize
}
