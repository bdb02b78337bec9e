package provider

import (
	"context"
	"errors"
	"fmt"
	"os"

	"embedpipe/internal/embedding"
	"embedpipe/pkg/utils"
)

const (
	openAIModel  = "text-embedding-3-small"
	openAIAPIURL = "https://api.openai.com/v1/embeddings"
)

// openAIRequest is the OpenAI-compatible embeddings request body, also
// used by the vLLM backend.
type openAIRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type openAIResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// OpenAIProvider calls the OpenAI embeddings API.
type OpenAIProvider struct {
	apiKey    string
	apiURL    string
	model     string
	batchSize int
}

func newOpenAIProvider(fields map[string]any) (embedding.Provider, error) {
	apiKey := utils.StringField(fields, "api_key", os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("api_key not provided and OPENAI_API_KEY not set")
	}
	return &OpenAIProvider{
		apiKey:    apiKey,
		apiURL:    utils.StringField(fields, "base_url", openAIAPIURL),
		model:     utils.StringField(fields, "model", openAIModel),
		batchSize: utils.IntField(fields, "batch_size", 0),
	}, nil
}

func (e *OpenAIProvider) EmbedDocuments(ctx context.Context, docs []string) ([][]float64, error) {
	req := &openAIRequest{
		Model: e.model,
		Input: docs,
	}

	var resp openAIResponse
	if err := postJSON(ctx, e.apiURL, e.apiKey, req, &resp); err != nil {
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

func (e *OpenAIProvider) BatchSize() int {
	return e.batchSize
}
