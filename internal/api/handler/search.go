package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timmy/pixgallery/internal/pixabay"
)

// SearchHandler exposes the image search client without any session state.
type SearchHandler struct {
	searcher pixabay.Searcher
}

// NewSearchHandler creates a new search handler.
// Parameters:
//   - searcher: image search client.
// Returns:
//   - *SearchHandler: initialized handler.
func NewSearchHandler(searcher pixabay.Searcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

// SearchImages handles GET /api/v1/images?q=&page=.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *SearchHandler) SearchImages(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'q' is required",
		})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'page' must be a positive integer",
		})
		return
	}

	result, err := h.searcher.FetchImages(c.Request.Context(), query, page)
	if err != nil {
		c.JSON(statusForSearchError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// statusForSearchError maps search client errors onto HTTP status codes.
func statusForSearchError(err error) int {
	switch {
	case pixabay.IsNoResults(err):
		return http.StatusNotFound
	case pixabay.IsNetworkFailure(err):
		return http.StatusBadGateway
	case errors.Is(err, pixabay.ErrInvalidPage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
