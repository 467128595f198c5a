package database

import (
	"fmt"
	"log"

	// The bookmark_search table needs FTS5, which this driver only compiles
	// in when built with the sqlite_fts5 tag.
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/minimarks/minimarks/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Bookmark{},
		&entities.ImportRun{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// The search index is an FTS5 virtual table, which GORM cannot migrate.
	// Rows in it are managed exclusively by the bookmarks repository so that
	// every bookmarks row keeps exactly one matching bookmark_search row.
	err = db.Exec(`CREATE VIRTUAL TABLE IF NOT EXISTS bookmark_search USING fts5(title, href)`).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
