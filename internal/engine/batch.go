package engine

import (
	"context"
	"fmt"

	"embedpipe/internal/embedding"
	apperrors "embedpipe/pkg/errors"
	"embedpipe/pkg/logger"
)

// embedAll drives the model over docs in contiguous batches, strictly
// in input order. A failing batch falls back to per-document calls; a
// document that fails even in isolation aborts the whole run, since
// the correct output shape for that row cannot be known. On success
// the result has exactly one vector per document, in document order.
func (h *Handler) embedAll(ctx context.Context, model embedding.Provider, class string, docs []string) ([][]float64, error) {
	batchSize := h.opts.DefaultBatchSize
	if sizer, ok := model.(embedding.BatchSizer); ok && sizer.BatchSize() > 0 {
		batchSize = sizer.BatchSize()
	}
	logger.Info("Processing embeddings", "documents", len(docs), "batch_size", batchSize)

	all := make([][]float64, 0, len(docs))
	for start := 0; start < len(docs); start += batchSize {
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		vectors, err := h.embedDocs(ctx, model, class, batch)
		if err != nil {
			logger.Warn("Batch processing failed, falling back to individual documents",
				"batch_start", start,
				"error", fmt.Errorf("%w: %v", apperrors.ErrBatchEmbedding, err))

			vectors = vectors[:0]
			for i, doc := range batch {
				single, docErr := h.embedDocs(ctx, model, class, []string{doc})
				if docErr != nil {
					return nil, fmt.Errorf("%w at row %d: %w", apperrors.ErrDocumentEmbedding, start+i, docErr)
				}
				vectors = append(vectors, single[0])
			}
		}
		all = append(all, vectors...)
	}

	logger.Info("Completed embedding generation", "embeddings", len(all))
	return all, nil
}

// embedDocs embeds one batch, serving documents from the cache when it
// is enabled and issuing a backend call only for the misses. A backend
// response of the wrong length is an error, same as a failed call.
func (h *Handler) embedDocs(ctx context.Context, model embedding.Provider, class string, batch []string) ([][]float64, error) {
	if h.cache == nil {
		vectors, err := model.EmbedDocuments(ctx, batch)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("expected %d vectors, got %d", len(batch), len(vectors))
		}
		return vectors, nil
	}

	result := make([][]float64, len(batch))
	var missDocs []string
	var missIdx []int
	for i, doc := range batch {
		if vector, ok := h.cache.get(class, doc); ok {
			result[i] = vector
			continue
		}
		missDocs = append(missDocs, doc)
		missIdx = append(missIdx, i)
	}

	if len(missDocs) > 0 {
		vectors, err := model.EmbedDocuments(ctx, missDocs)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(missDocs) {
			return nil, fmt.Errorf("expected %d vectors, got %d", len(missDocs), len(vectors))
		}
		for i, vector := range vectors {
			result[missIdx[i]] = vector
			h.cache.add(class, missDocs[i], vector)
		}
	}
	return result, nil
}
