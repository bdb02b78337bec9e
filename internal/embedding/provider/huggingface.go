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
	hfModel   = "sentence-transformers/all-MiniLM-L6-v2"
	hfBaseURL = "https://api-inference.huggingface.co/pipeline/feature-extraction"
)

type hfRequest struct {
	Inputs []string `json:"inputs"`
}

// HuggingFaceProvider calls the Hugging Face inference API
// feature-extraction pipeline.
type HuggingFaceProvider struct {
	apiURL string
	apiKey string
}

func newHuggingFaceProvider(fields map[string]any) (embedding.Provider, error) {
	apiKey := utils.StringField(fields, "api_key", os.Getenv("HUGGINGFACE_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("api_key not provided and HUGGINGFACE_API_KEY not set")
	}
	baseURL := utils.StringField(fields, "base_url", hfBaseURL)
	model := utils.StringField(fields, "model", hfModel)
	return &HuggingFaceProvider{
		apiURL: fmt.Sprintf("%s/%s", baseURL, model),
		apiKey: apiKey,
	}, nil
}

func (e *HuggingFaceProvider) EmbedDocuments(ctx context.Context, docs []string) ([][]float64, error) {
	var resp [][]float64
	if err := postJSON(ctx, e.apiURL, e.apiKey, &hfRequest{Inputs: docs}, &resp); err != nil {
		return nil, err
	}

	if len(resp) != len(docs) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(docs), len(resp))
	}
	return resp, nil
}
