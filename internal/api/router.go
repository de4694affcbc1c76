package api

import (
	"github.com/gin-gonic/gin"
	"github.com/timmy/pixgallery/internal/api/handler"
	"github.com/timmy/pixgallery/internal/api/middleware"
	"github.com/timmy/pixgallery/internal/logger"
	"github.com/timmy/pixgallery/internal/pixabay"
	"github.com/timmy/pixgallery/internal/service"
	"github.com/timmy/pixgallery/internal/view"
)

const apiBase = "/api/v1"

// Dependencies groups what the router wires into handlers.
type Dependencies struct {
	Searcher     pixabay.Searcher
	Gallery      *service.GalleryService
	Sessions     *service.SessionStore
	History      handler.HistoryReader // nil disables the history routes
	HistoryLimit int
	Logger       *logger.Logger
}

// RouterOptions holds the server level settings of the router.
type RouterOptions struct {
	Mode string
	CORS middleware.CORSConfig
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(deps *Dependencies, opts RouterOptions) *gin.Engine {
	switch opts.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	log := deps.Logger
	if log == nil {
		log = logger.GetDefault()
	}

	r := gin.New()
	r.SetHTMLTemplate(view.Templates())

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(opts.CORS))

	healthHandler := handler.NewHealthHandler(deps.Sessions)
	searchHandler := handler.NewSearchHandler(deps.Searcher)
	galleryHandler := handler.NewGalleryHandler(deps.Gallery, deps.Sessions, apiBase)

	r.GET("/health", healthHandler.Health)
	r.GET("/", galleryHandler.Index)

	v1 := r.Group(apiBase)
	{
		// Stateless search
		v1.GET("/images", searchHandler.SearchImages)

		// Gallery sessions
		v1.POST("/sessions", galleryHandler.CreateSession)
		v1.DELETE("/sessions/:id", galleryHandler.DeleteSession)
		v1.POST("/sessions/:id/search", galleryHandler.Search)
		v1.POST("/sessions/:id/more", galleryHandler.LoadMore)

		if deps.History != nil {
			historyHandler := handler.NewHistoryHandler(deps.History, deps.HistoryLimit)
			v1.GET("/history", historyHandler.ListHistory)
			v1.GET("/sessions/:id/history", historyHandler.ListSessionHistory)
			v1.GET("/stats", historyHandler.GetStats)
		}
	}

	return r
}
