package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"embedpipe/internal/embedding"
	"embedpipe/pkg/utils"
)

type fastAPIRequest struct {
	Texts []string `json:"texts"`
	Model string   `json:"model,omitempty"`
}

type fastAPIResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

// FastAPIProvider calls a plain HTTP embedding gateway that accepts a
// list of texts and returns a list of vectors.
type FastAPIProvider struct {
	apiURL    string
	apiKey    string
	model     string
	batchSize int
}

func newFastAPIProvider(fields map[string]any) (embedding.Provider, error) {
	baseURL := utils.StringField(fields, "base_url", "")
	if baseURL == "" {
		return nil, errors.New("base_url is required for a FastAPI backend")
	}
	return &FastAPIProvider{
		apiURL:    strings.TrimSuffix(baseURL, "/") + "/embeddings",
		apiKey:    utils.StringField(fields, "api_key", ""),
		model:     utils.StringField(fields, "model", ""),
		batchSize: utils.IntField(fields, "batch_size", 0),
	}, nil
}

func (e *FastAPIProvider) EmbedDocuments(ctx context.Context, docs []string) ([][]float64, error) {
	req := &fastAPIRequest{
		Texts: docs,
		Model: e.model,
	}

	var resp fastAPIResponse
	if err := postJSON(ctx, e.apiURL, e.apiKey, req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Embeddings) != len(docs) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(docs), len(resp.Embeddings))
	}
	return resp.Embeddings, nil
}

func (e *FastAPIProvider) BatchSize() int {
	return e.batchSize
}
