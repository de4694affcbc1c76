package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timmy/pixgallery/internal/domain"
)

// HistoryReader reads persisted search attempts.
type HistoryReader interface {
	ListRecent(ctx context.Context, limit int) ([]domain.SearchRecord, error)
	ListBySession(ctx context.Context, sessionID string) ([]domain.SearchRecord, error)
	CountByOutcome(ctx context.Context) (map[domain.SearchOutcome]int64, error)
}

// HistoryHandler handles search history endpoints.
type HistoryHandler struct {
	history  HistoryReader
	maxLimit int
}

// NewHistoryHandler creates a new history handler.
// Parameters:
//   - history: search record reader.
//   - maxLimit: upper bound for the limit query parameter.
// Returns:
//   - *HistoryHandler: initialized handler.
func NewHistoryHandler(history HistoryReader, maxLimit int) *HistoryHandler {
	if maxLimit <= 0 {
		maxLimit = 50
	}
	return &HistoryHandler{history: history, maxLimit: maxLimit}
}

// ListHistory handles GET /api/v1/history.
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > h.maxLimit {
		limit = h.maxLimit
	}

	records, err := h.history.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list history: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   len(records),
	})
}

// ListSessionHistory handles GET /api/v1/sessions/:id/history.
// Records outlive their session, so the id is not checked against live sessions.
func (h *HistoryHandler) ListSessionHistory(c *gin.Context) {
	records, err := h.history.ListBySession(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list session history: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   len(records),
	})
}

// GetStats handles GET /api/v1/stats.
func (h *HistoryHandler) GetStats(c *gin.Context) {
	counts, err := h.history.CountByOutcome(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get stats: " + err.Error(),
		})
		return
	}

	var total int64
	for _, n := range counts {
		total += n
	}
	c.JSON(http.StatusOK, gin.H{
		"outcomes": counts,
		"total":    total,
	})
}
