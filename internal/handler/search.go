package handler

import (
	"errors"
	"net/http"

	"carbot/internal/service"

	"github.com/gin-gonic/gin"
)

// SearchRequest represents a search request on the HTTP surface
type SearchRequest struct {
	Amount *int   `json:"amount" binding:"required"`
	Query  string `json:"query,omitempty"`
}

// SearchHandler exposes the car-finding pipeline over HTTP for development
// and operations; the bot itself does not depend on it.
type SearchHandler struct {
	finder Finder
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(finder Finder) *SearchHandler {
	return &SearchHandler{
		finder: finder,
	}
}

// Search handles POST /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if *req.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a non-negative integer"})
		return
	}

	result, err := h.finder.Find(c.Request.Context(), *req.Amount, req.Query)
	if err != nil {
		var upstreamErr *service.UpstreamError
		switch {
		case errors.Is(err, service.ErrTimeout):
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Listings API timed out"})
		case errors.As(err, &upstreamErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Listings API failed: " + upstreamErr.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
