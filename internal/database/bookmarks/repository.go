// Package bookmarks provides database operations for bookmark management.
//
// A logical bookmark is stored as two rows: an ownership-scoped row in the
// bookmarks table and a full-text-indexed row in the bookmark_search FTS5
// table. The pair is an invariant of this package: every operation here
// creates, mutates or deletes both rows inside one transaction, and callers
// never see the halves as independently mutable objects.
//
// # Interface Implementation
//
//	var _ services.TxBookmarkStore = (*Repository)(nil)
package bookmarks

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/minimarks/minimarks/internal/entities"
	"github.com/minimarks/minimarks/internal/services"
)

var (
	// ErrNotFound is returned when a mutation targets a bookmark that does
	// not exist or is not owned by the caller.
	ErrNotFound = errors.New("bookmark not found")

	// ErrInvalidPage is returned for page numbers below 1.
	ErrInvalidPage = errors.New("page number must be 1 or greater")
)

// Repository handles all bookmark database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new bookmarks repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ services.TxBookmarkStore = (*Repository)(nil)

// Transact runs fn against a repository bound to a single transaction.
// Used by the import orchestrator so a whole batch commits or rolls back as
// one unit. Calls nest safely: GORM turns inner transactions into savepoints.
func (r *Repository) Transact(fn func(services.BookmarkStore) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// Insert stores a new bookmark pair and returns its search rowid, which is
// the bookmark's public identifier from here on. The search row is created
// first so the scoped row can reference its identity.
func (r *Repository) Insert(userID uint, title, href string, pubDate int64) (int64, error) {
	var searchID int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`INSERT INTO bookmark_search (title, href) VALUES (?, ?)`, title, href).Error; err != nil {
			return fmt.Errorf("failed to insert search row: %w", err)
		}
		if err := tx.Raw(`SELECT last_insert_rowid()`).Scan(&searchID).Error; err != nil {
			return fmt.Errorf("failed to read search rowid: %w", err)
		}

		bookmark := &entities.Bookmark{
			UserID:   userID,
			SearchID: searchID,
			Title:    title,
			Href:     href,
			PubDate:  pubDate,
		}
		if err := tx.Create(bookmark).Error; err != nil {
			return fmt.Errorf("failed to insert bookmark: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return searchID, nil
}

// Update rewrites a bookmark pair's title, href and pub date.
// Returns ErrNotFound unless exactly one scoped row matched (searchID, userID);
// ownership is enforced here, not by the caller.
func (r *Repository) Update(searchID int64, userID uint, title, href string, pubDate int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Bookmark{}).
			Where("user_id = ? AND search_id = ?", userID, searchID).
			Updates(map[string]any{
				"title":    title,
				"href":     href,
				"pub_date": pubDate,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update bookmark: %w", result.Error)
		}
		if result.RowsAffected != 1 {
			return ErrNotFound
		}

		// Mirror the change into the search index.
		err := tx.Exec(`UPDATE bookmark_search SET title = ?, href = ? WHERE rowid = ?`, title, href, searchID).Error
		if err != nil {
			return fmt.Errorf("failed to update search row: %w", err)
		}
		return nil
	})
}

// Remove deletes a bookmark pair.
// Returns ErrNotFound unless exactly one scoped row matched (searchID, userID).
func (r *Repository) Remove(searchID int64, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND search_id = ?", userID, searchID).
			Delete(&entities.Bookmark{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete bookmark: %w", result.Error)
		}
		if result.RowsAffected != 1 {
			return ErrNotFound
		}

		err := tx.Exec(`DELETE FROM bookmark_search WHERE rowid = ?`, searchID).Error
		if err != nil {
			return fmt.Errorf("failed to delete search row: %w", err)
		}
		return nil
	})
}

// LookupByHref returns all of a user's bookmarks with exactly this href.
// More than one result means the per-user uniqueness invariant was already
// violated by earlier data; the import reconciler treats that as a conflict.
func (r *Repository) LookupByHref(userID uint, href string) ([]entities.Bookmark, error) {
	var marks []entities.Bookmark
	err := r.db.Where("user_id = ? AND href = ?", userID, href).Find(&marks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up bookmarks by href: %w", err)
	}
	return marks, nil
}

// Get retrieves a single bookmark by its search rowid, scoped to the owner.
func (r *Repository) Get(searchID int64, userID uint) (*entities.Bookmark, error) {
	var mark entities.Bookmark
	err := r.db.Where("user_id = ? AND search_id = ?", userID, searchID).First(&mark).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &mark, nil
}

// List returns one page of a user's bookmarks, newest first, optionally
// filtered by a full-text match against title and href. A zero PerPage
// returns everything on a single page.
func (r *Repository) List(userID uint, opts services.ListOptions) (services.Listing, error) {
	page := opts.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return services.Listing{}, ErrInvalidPage
	}

	where := `bookmarks.user_id = ? AND bookmarks.search_id = bookmark_search.rowid`
	args := []any{userID}
	if opts.Search != "" {
		where += ` AND bookmark_search MATCH ?`
		args = append(args, opts.Search)
	}

	var count int
	err := r.db.Raw(
		`SELECT count(*) FROM bookmarks, bookmark_search WHERE `+where, args...,
	).Scan(&count).Error
	if err != nil {
		return services.Listing{}, fmt.Errorf("failed to count bookmarks: %w", err)
	}

	query := `SELECT bookmark_search.rowid AS search_id, bookmarks.user_id,
		bookmarks.title, bookmarks.href, bookmarks.pub_date
		FROM bookmarks, bookmark_search
		WHERE ` + where + `
		ORDER BY bookmarks.pub_date DESC`

	pages := 1
	if opts.PerPage > 0 {
		pages = count / opts.PerPage
		if count%opts.PerPage != 0 {
			pages++
		}
		query += ` LIMIT ? OFFSET ?`
		args = append(args, opts.PerPage, (page-1)*opts.PerPage)
	}

	var marks []entities.Bookmark
	if err := r.db.Raw(query, args...).Scan(&marks).Error; err != nil {
		return services.Listing{}, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	return services.Listing{
		Bookmarks: marks,
		Count:     count,
		Page:      page,
		Pages:     pages,
	}, nil
}

// All returns every bookmark a user owns, newest first. Used by the export
// endpoint, which re-serializes the full collection without pagination.
func (r *Repository) All(userID uint) ([]entities.Bookmark, error) {
	listing, err := r.List(userID, services.ListOptions{})
	if err != nil {
		return nil, err
	}
	return listing.Bookmarks, nil
}

// RecordImportRun stores the tally of one completed import for audit purposes.
func (r *Repository) RecordImportRun(userID uint, inserted, updated, skipped, conflicted int) error {
	run := &entities.ImportRun{
		UserID:     userID,
		Inserted:   inserted,
		Updated:    updated,
		Skipped:    skipped,
		Conflicted: conflicted,
	}
	return r.db.Create(run).Error
}
