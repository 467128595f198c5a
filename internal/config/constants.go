package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./minimarks.db"

	// DefaultPerPage is the default number of bookmarks shown per listing page
	DefaultPerPage = 50

	// DefaultMaxUploadSize caps bookmark file uploads at 10 MB
	DefaultMaxUploadSize = 10 * 1024 * 1024
)
