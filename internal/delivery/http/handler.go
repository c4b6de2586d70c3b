package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shoplens/backend/internal/domain"
)

// ProductSearcher is the slice of the search service the handlers need
type ProductSearcher interface {
	SearchAll(ctx context.Context, query string, maxResults int) ([]domain.RankedResult, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searcher      ProductSearcher
	searchTimeout time.Duration
	logger        *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(searcher ProductSearcher, searchTimeout time.Duration, logger *zap.Logger) *Handler {
	if searchTimeout <= 0 {
		searchTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		searcher:      searcher,
		searchTimeout: searchTimeout,
		logger:        logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shoplens-backend",
		"version": "1.0.0",
	})
}

// SearchProducts handles product search requests
func (h *Handler) SearchProducts(c *gin.Context) {
	if h.searcher == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "product search not configured",
		})
		return
	}

	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "query is required; max_results must be between 1 and 50",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.searchTimeout)
	defer cancel()

	results, err := h.searcher.SearchAll(ctx, req.Query, req.MaxResults)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			h.logger.Warn("search timed out", zap.String("query", req.Query))
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "search timed out; try a smaller max_results value",
			})
		default:
			h.logger.Error("search failed", zap.String("query", req.Query), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed due to an internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, domain.SearchResponse{
		Query:        req.Query,
		TotalResults: len(results),
		Products:     results,
	})
}
