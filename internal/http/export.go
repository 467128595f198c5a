package http

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minimarks/minimarks/internal/auth"
	"github.com/minimarks/minimarks/internal/netscape"
)

// ExportController serves the user's bookmarks as a Netscape bookmark file
// that browsers and other managers can import back.
type ExportController struct {
	reader BookmarkReader
}

func NewExportController(reader BookmarkReader) *ExportController {
	return &ExportController{
		reader: reader,
	}
}

func (controller *ExportController) Export(c *gin.Context) {
	userID := auth.GetUserID(c)

	all, err := controller.reader.All(userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading bookmarks: %s", err.Error())
		return
	}

	marks := make([]netscape.Mark, 0, len(all))
	for _, bookmark := range all {
		marks = append(marks, netscape.Mark{
			Title:   bookmark.Title,
			Href:    bookmark.Href,
			PubDate: bookmark.PubDate,
		})
	}

	var buf bytes.Buffer
	if err := netscape.Write(&buf, marks); err != nil {
		c.String(http.StatusInternalServerError, "Error writing export: %s", err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bookmarks.html"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
