package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"embedpipe/internal/dataframe"
	apperrors "embedpipe/pkg/errors"
)

func (s *Server) handleHealthCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func (s *Server) handleCreateModel() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateModelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		h, err := s.handlerFor(req.Name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := h.Create(c.Request.Context(), req.Target, req.Train, req.Using); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, apperrors.ErrUnknownBackend) || errors.Is(err, apperrors.ErrModelConstruction) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"name": req.Name})
	}
}

func (s *Server) handlePredict() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		var req PredictRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		h, err := s.handlerFor(name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		df := &dataframe.DataFrame{Columns: req.Columns, Rows: req.Rows}
		out, err := h.Predict(c.Request.Context(), df)
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, apperrors.ErrModelNotFound):
				status = http.StatusNotFound
			case errors.Is(err, apperrors.ErrMissingColumns),
				errors.Is(err, apperrors.ErrUnknownBackend),
				errors.Is(err, apperrors.ErrModelConstruction):
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, PredictResponse{Columns: out.Columns, Rows: out.Rows})
	}
}

func (s *Server) handleDescribe() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		attribute := c.Query("attribute")

		h, err := s.handlerFor(name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		out, err := h.Describe(c.Request.Context(), attribute)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, apperrors.ErrModelNotFound) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, PredictResponse{Columns: out.Columns, Rows: out.Rows})
	}
}

func (s *Server) handleFinetune() gin.HandlerFunc {
	return func(c *gin.Context) {
		h, err := s.handlerFor(c.Param("name"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		err = h.Finetune(c.Request.Context())
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	}
}
