package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/pixgallery/internal/api/middleware"
	"github.com/timmy/pixgallery/internal/logger"
	"github.com/timmy/pixgallery/internal/service"
)

// GalleryHandler serves the gallery page and its session endpoints.
type GalleryHandler struct {
	gallery  *service.GalleryService
	sessions *service.SessionStore
	apiBase  string
}

// NewGalleryHandler creates a new gallery handler.
// Parameters:
//   - gallery: gallery flow service.
//   - sessions: session store.
//   - apiBase: path prefix the page calls back into.
// Returns:
//   - *GalleryHandler: initialized handler.
func NewGalleryHandler(gallery *service.GalleryService, sessions *service.SessionStore, apiBase string) *GalleryHandler {
	return &GalleryHandler{
		gallery:  gallery,
		sessions: sessions,
		apiBase:  apiBase,
	}
}

// GallerySearchRequest is the body of a session search.
type GallerySearchRequest struct {
	Query string `json:"query"`
}

// Index handles GET /.
func (h *GalleryHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":   "Image search",
		"APIBase": h.apiBase,
	})
}

// CreateSession handles POST /api/v1/sessions.
func (h *GalleryHandler) CreateSession(c *gin.Context) {
	sess := h.sessions.Create()
	middleware.GetLogger(c).WithField(logger.FieldSessionID, sess.ID).Info("Gallery session created")
	c.JSON(http.StatusCreated, gin.H{
		"session_id": sess.ID,
	})
}

// DeleteSession handles DELETE /api/v1/sessions/:id.
func (h *GalleryHandler) DeleteSession(c *gin.Context) {
	if !h.sessions.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Session not found",
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// Search handles POST /api/v1/sessions/:id/search.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes the view snapshot as JSON).
func (h *GalleryHandler) Search(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req GallerySearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	ctx := logger.SetSessionID(c.Request.Context(), sess.ID)
	_, err := h.gallery.Search(ctx, sess, req.Query)
	if errors.Is(err, service.ErrEmptySearchTerm) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": service.EmptyTermMessage,
		})
		return
	}
	h.writeSnapshot(c, sess)
}

// LoadMore handles POST /api/v1/sessions/:id/more.
func (h *GalleryHandler) LoadMore(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	ctx := logger.SetSessionID(c.Request.Context(), sess.ID)
	_, err := h.gallery.LoadMore(ctx, sess)
	if errors.Is(err, service.ErrNoActiveSearch) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Start a search before loading more images",
		})
		return
	}
	h.writeSnapshot(c, sess)
}

// session resolves the :id parameter, writing 404 when unknown.
func (h *GalleryHandler) session(c *gin.Context) (*service.Session, bool) {
	sess, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Session not found",
		})
		return nil, false
	}
	return sess, true
}

// writeSnapshot responds with the view state. Search failures are part of
// the state (notices) so the page can render them.
func (h *GalleryHandler) writeSnapshot(c *gin.Context, sess *service.Session) {
	snap, ok := sess.Snapshot()
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Session has no page view",
		})
		return
	}
	c.JSON(http.StatusOK, snap)
}
