package entities

import "time"

// Bookmark is the ownership-scoped half of a stored bookmark. Every row is
// paired with exactly one row in the bookmark_search FTS table; SearchID holds
// that row's rowid and doubles as the bookmark's public identifier. The pair
// is only ever created, mutated and deleted together.
type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"index" json:"-"`
	SearchID  int64     `gorm:"index;column:search_id" json:"id"`
	Title     string    `gorm:"size:512" json:"title"`
	Href      string    `gorm:"index;size:2048" json:"href"`
	PubDate   int64     `gorm:"index" json:"pub_date"` // unix seconds
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

// ImportRun records the outcome of one bookmark file import.
type ImportRun struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index" json:"user_id"`
	Inserted   int       `json:"inserted"`
	Updated    int       `json:"updated"`
	Skipped    int       `json:"skipped"`
	Conflicted int       `json:"conflicted"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ImportRun) TableName() string {
	return "import_runs"
}
