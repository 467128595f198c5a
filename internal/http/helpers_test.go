package http

import (
	"html/template"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/minimarks/minimarks/internal/auth"
	"github.com/minimarks/minimarks/internal/database"
	"github.com/minimarks/minimarks/internal/database/bookmarks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testTemplates provides minimal stand-ins for the real page templates so
// handlers can render without the templates directory.
func testTemplates() *template.Template {
	return template.Must(template.New("").Parse(`
{{ define "bookmarks.html" }}LIST q={{ .Query }} page={{ .Page }}/{{ .Pages }} count={{ .Count }}{{ range .Bookmarks }} [{{ .Title }}]{{ end }}{{ if .Error }} ERROR: {{ .Error }}{{ end }}{{ end }}
{{ define "add.html" }}ADD{{ if .Error }} ERROR: {{ .Error }}{{ end }}{{ end }}
{{ define "edit.html" }}EDIT [{{ .Bookmark.Title }}]{{ end }}
{{ define "import.html" }}IMPORT{{ if .Summary }} {{ .Summary }}{{ end }}{{ if .Error }} ERROR: {{ .Error }}{{ end }}{{ end }}
{{ define "close_window.html" }}CLOSE{{ end }}
`))
}

// fakeUser injects an authenticated user the way the auth middleware would.
func fakeUser(userID uint, username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, userID)
		c.Set(auth.ContextKeyUsername, username)
		c.Next()
	}
}

func setupBookmarksTest(t *testing.T) (*database.Database, *bookmarks.Repository, func()) {
	t.Helper()

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := bookmarks.NewRepository(db.DB)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, repo, cleanup
}
