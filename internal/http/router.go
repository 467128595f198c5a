package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/minimarks/minimarks/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"subtract": func(a, b int) int {
			return a - b
		},
	}

	tmpl := template.Must(template.New("").Funcs(funcMap).ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	// Auth routes
	if cfg.AuthService != nil && cfg.SessionManager != nil {
		authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager)
		authController.RegisterRoutes(router)
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	bookmarksController := NewBookmarksController(cfg.Bookmarks, cfg.PerPage)
	importController := NewNetscapeImportController(cfg.Importer, cfg.Bookmarks, cfg.MaxUploadSize)
	exportController := NewExportController(cfg.Bookmarks)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Bookmark pages
	router.GET("/", bookmarksController.ListPage)
	router.GET("/add", bookmarksController.AddPage)
	router.POST("/add", bookmarksController.Add)
	router.GET("/edit/:id", bookmarksController.EditPage)
	router.POST("/edit/:id", bookmarksController.Edit)
	router.POST("/delete", bookmarksController.Delete)

	// Import and export
	router.GET("/import", importController.ImportPage)
	router.POST("/import", importController.Import)
	router.GET("/export/bookmarks.html", exportController.Export)

	return router
}
