package server

import "embedpipe/internal/dataframe"

// CreateModelRequest represents the request body for creating a model
type CreateModelRequest struct {
	Name   string               `json:"name" binding:"required"`
	Target string               `json:"target"`
	Using  map[string]any       `json:"using"`
	Train  *dataframe.DataFrame `json:"dataframe,omitempty"`
}

// PredictRequest represents the request body for a prediction
type PredictRequest struct {
	Columns []string `json:"columns" binding:"required"`
	Rows    [][]any  `json:"rows" binding:"required"`
}

// PredictResponse represents the response body for a prediction
type PredictResponse struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}
