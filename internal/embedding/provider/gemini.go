package provider

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/genai"

	"embedpipe/internal/embedding"
	"embedpipe/pkg/utils"
)

const geminiModel = "gemini-embedding-001"

// GeminiProvider calls the Gemini embeddings API through the genai SDK.
type GeminiProvider struct {
	client    *genai.Client
	model     string
	batchSize int
}

func newGeminiProvider(fields map[string]any) (embedding.Provider, error) {
	apiKey := utils.StringField(fields, "api_key", os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("api_key not provided and GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &GeminiProvider{
		client:    client,
		model:     utils.StringField(fields, "model", geminiModel),
		batchSize: utils.IntField(fields, "batch_size", 0),
	}, nil
}

func (e *GeminiProvider) EmbedDocuments(ctx context.Context, docs []string) ([][]float64, error) {
	contents := make([]*genai.Content, 0, len(docs))
	for _, doc := range docs {
		contents = append(contents, genai.NewContentFromText(doc, genai.RoleUser))
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, err
	}

	if len(result.Embeddings) != len(docs) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(docs), len(result.Embeddings))
	}

	embeddings := make([][]float64, len(result.Embeddings))
	for i, item := range result.Embeddings {
		vector := make([]float64, len(item.Values))
		for j, v := range item.Values {
			vector[j] = float64(v)
		}
		embeddings[i] = vector
	}
	return embeddings, nil
}

func (e *GeminiProvider) BatchSize() int {
	return e.batchSize
}
