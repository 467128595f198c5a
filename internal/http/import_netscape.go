package http

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/minimarks/minimarks/internal/auth"
	"github.com/minimarks/minimarks/internal/importers"
)

// NetscapeImportController handles uploads of Netscape bookmark files, the
// format every mainstream browser exports.
type NetscapeImportController struct {
	importer      *importers.Importer
	recorder      ImportRunRecorder
	maxUploadSize int64
}

func NewNetscapeImportController(importer *importers.Importer, recorder ImportRunRecorder, maxUploadSize int64) *NetscapeImportController {
	return &NetscapeImportController{
		importer:      importer,
		recorder:      recorder,
		maxUploadSize: maxUploadSize,
	}
}

// ImportPage renders the upload form.
func (controller *NetscapeImportController) ImportPage(c *gin.Context) {
	c.HTML(http.StatusOK, "import.html", gin.H{
		"Title":     "Import bookmarks",
		"Username":  auth.GetUsername(c),
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

// Import reads the uploaded bookmark file and reconciles every record in it
// against the user's existing bookmarks in a single transaction.
func (controller *NetscapeImportController) Import(c *gin.Context) {
	userID := auth.GetUserID(c)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, controller.maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		controller.fail(c, http.StatusBadRequest, "No bookmark file uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		controller.fail(c, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	tally, err := controller.importer.Import(file, userID)
	if err != nil {
		log.Printf("netscape import failed for user %d: %v", userID, err)
		controller.fail(c, http.StatusInternalServerError, "Import failed: "+err.Error())
		return
	}

	if err := controller.recorder.RecordImportRun(userID, tally.Inserted, tally.Updated, tally.Skipped, tally.Conflicted); err != nil {
		log.Printf("failed to record import run for user %d: %v", userID, err)
	}

	log.Printf("netscape import for user %d: %d inserted, %d updated, %d skipped, %d conflicted",
		userID, tally.Inserted, tally.Updated, tally.Skipped, tally.Conflicted)

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"file":   fileHeader.Filename,
			"tally":  tally,
		})
		return
	}

	c.HTML(http.StatusOK, "import.html", gin.H{
		"Title":     "Import bookmarks",
		"Username":  auth.GetUsername(c),
		"CSRFToken": auth.GetCSRFToken(c),
		"Summary": fmt.Sprintf("Imported %s: %d added, %d updated, %d skipped, %d conflicted",
			fileHeader.Filename, tally.Inserted, tally.Updated, tally.Skipped, tally.Conflicted),
		"Tally": tally,
	})
}

func (controller *NetscapeImportController) fail(c *gin.Context, status int, message string) {
	if wantsJSON(c) {
		c.JSON(status, gin.H{"error": message})
		return
	}
	c.HTML(status, "import.html", gin.H{
		"Title":     "Import bookmarks",
		"Username":  auth.GetUsername(c),
		"CSRFToken": auth.GetCSRFToken(c),
		"Error":     message,
	})
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
