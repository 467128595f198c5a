package http

import (
	"github.com/minimarks/minimarks/internal/entities"
	"github.com/minimarks/minimarks/internal/services"
)

// This file consolidates the store interface definitions used by HTTP
// controllers. Each controller depends only on the methods it actually uses.

// BookmarkReader provides read access to a user's bookmarks.
type BookmarkReader interface {
	List(userID uint, opts services.ListOptions) (services.Listing, error)
	All(userID uint) ([]entities.Bookmark, error)
	Get(searchID int64, userID uint) (*entities.Bookmark, error)
}

// BookmarkWriter provides write access to a user's bookmarks.
type BookmarkWriter interface {
	Insert(userID uint, title, href string, pubDate int64) (int64, error)
	Update(searchID int64, userID uint, title, href string, pubDate int64) error
	Remove(searchID int64, userID uint) error
}

// BookmarkStore combines read and write access for controllers that need both.
type BookmarkStore interface {
	BookmarkReader
	BookmarkWriter
}

// ImportRunRecorder persists the outcome of an import pass.
type ImportRunRecorder interface {
	RecordImportRun(userID uint, inserted, updated, skipped, conflicted int) error
}
