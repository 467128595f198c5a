// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, migrations, FTS index creation
//	└── bookmarks/       # Bookmark + search-index operations
//
// database.go owns schema setup: the regular tables are migrated with GORM's
// AutoMigrate, while the bookmark_search FTS5 virtual table is created with
// raw SQL because virtual tables are outside GORM's migration model.
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./minimarks.db")
//	repo := bookmarks.NewRepository(db.DB)
//	listing, err := repo.List(userID, services.ListOptions{PerPage: 50})
//
// User rows are managed by the auth service directly against db.DB; they have
// no repository sub-package of their own.
package database
