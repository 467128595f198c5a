package http

import (
	"github.com/minimarks/minimarks/internal/auth"
	"github.com/minimarks/minimarks/internal/database"
	"github.com/minimarks/minimarks/internal/importers"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces a long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Bookmarks Store
	Importer  *importers.Importer
	Database  *database.Database

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	CSRFSecret     []byte
	SecureCookies  bool

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Listing
	PerPage int

	// Upload limit for import files, in bytes
	MaxUploadSize int64

	// Application info
	Version string
}

// Store is the full set of bookmark operations the router's controllers need.
type Store interface {
	BookmarkStore
	ImportRunRecorder
}
