package services

import "github.com/minimarks/minimarks/internal/entities"

// BookmarkStore is the mutation and lookup surface the import reconciler
// works against. All three operations keep the scoped bookmark row and its
// search-index row consistent as a single unit of work.
//
// The identifier accepted by Update is the bookmark's search rowid, the same
// value LookupByHref returns in Bookmark.SearchID.
type BookmarkStore interface {
	LookupByHref(userID uint, href string) ([]entities.Bookmark, error)
	Insert(userID uint, title, href string, pubDate int64) (int64, error)
	Update(searchID int64, userID uint, title, href string, pubDate int64) error
}

// TxBookmarkStore runs a function against a BookmarkStore bound to a single
// database transaction. Nothing the function does is visible to other
// connections until it returns nil; any error rolls the whole batch back.
type TxBookmarkStore interface {
	BookmarkStore
	Transact(fn func(BookmarkStore) error) error
}

// ListOptions selects and paginates a bookmark listing.
// A zero PerPage disables pagination; an empty Search disables filtering.
type ListOptions struct {
	Search  string
	Page    int
	PerPage int
}

// Listing is one page of a user's bookmarks plus the pagination math the
// templates need.
type Listing struct {
	Bookmarks []entities.Bookmark
	Count     int
	Page      int
	Pages     int
}
