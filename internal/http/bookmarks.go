package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minimarks/minimarks/internal/auth"
	"github.com/minimarks/minimarks/internal/database/bookmarks"
	"github.com/minimarks/minimarks/internal/services"
)

type BookmarksController struct {
	store   BookmarkStore
	perPage int
}

func NewBookmarksController(store BookmarkStore, perPage int) *BookmarksController {
	return &BookmarksController{
		store:   store,
		perPage: perPage,
	}
}

// listPath rebuilds the listing URL for a given page, preserving the search
// query.
func listPath(query string, page int) string {
	values := url.Values{}
	if query != "" {
		values.Set("q", query)
	}
	if page > 1 {
		values.Set("page", strconv.Itoa(page))
	}
	if encoded := values.Encode(); encoded != "" {
		return "/?" + encoded
	}
	return "/"
}

// ListPage renders the paginated bookmark listing, optionally filtered by a
// full-text search query.
func (controller *BookmarksController) ListPage(c *gin.Context) {
	userID := auth.GetUserID(c)
	query := c.Query("q")

	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		parsed, err := strconv.Atoi(pageStr)
		if err != nil || parsed < 1 {
			c.Redirect(http.StatusFound, listPath(query, 1))
			return
		}
		page = parsed
	}

	listing, err := controller.store.List(userID, services.ListOptions{
		Search:  query,
		Page:    page,
		PerPage: controller.perPage,
	})
	if err != nil {
		if query != "" {
			// FTS5 rejects malformed match expressions; show an empty
			// listing with the error rather than a 500.
			c.HTML(http.StatusOK, "bookmarks.html", gin.H{
				"Title":     "Bookmarks",
				"Username":  auth.GetUsername(c),
				"Query":     query,
				"Error":     fmt.Sprintf("Invalid search query: %s", query),
				"Count":     0,
				"Page":      1,
				"Pages":     0,
				"HasPrev":   false,
				"HasNext":   false,
				"CSRFToken": auth.GetCSRFToken(c),
			})
			return
		}
		c.String(http.StatusInternalServerError, "Error loading bookmarks: %s", err.Error())
		return
	}

	// Clamp out-of-range pages to the last available one.
	if listing.Pages > 0 && page > listing.Pages {
		c.Redirect(http.StatusFound, listPath(query, listing.Pages))
		return
	}

	c.HTML(http.StatusOK, "bookmarks.html", gin.H{
		"Title":     "Bookmarks",
		"Username":  auth.GetUsername(c),
		"Query":     query,
		"Bookmarks": listing.Bookmarks,
		"Count":     listing.Count,
		"Page":      listing.Page,
		"Pages":     listing.Pages,
		"HasPrev":   listing.Page > 1,
		"HasNext":   listing.Page < listing.Pages,
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

// AddPage renders the bookmark creation form. The title and href query
// parameters prefill the form, which is how the bookmarklet popup passes
// the page being bookmarked.
func (controller *BookmarksController) AddPage(c *gin.Context) {
	c.HTML(http.StatusOK, "add.html", gin.H{
		"Title":     "Add bookmark",
		"Username":  auth.GetUsername(c),
		"FormTitle": c.Query("title"),
		"FormHref":  c.Query("href"),
		"Popup":     c.Query("popup") != "",
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

func (controller *BookmarksController) Add(c *gin.Context) {
	userID := auth.GetUserID(c)
	title := c.PostForm("title")
	href := c.PostForm("href")

	if title == "" || href == "" {
		c.HTML(http.StatusBadRequest, "add.html", gin.H{
			"Title":     "Add bookmark",
			"Username":  auth.GetUsername(c),
			"FormTitle": title,
			"FormHref":  href,
			"Popup":     c.PostForm("popup") != "",
			"Error":     "Both a title and a URL are required",
			"CSRFToken": auth.GetCSRFToken(c),
		})
		return
	}

	if _, err := controller.store.Insert(userID, title, href, time.Now().Unix()); err != nil {
		c.String(http.StatusInternalServerError, "Error saving bookmark: %s", err.Error())
		return
	}

	// The bookmarklet opens the form in a popup window that should close
	// itself after saving.
	if c.PostForm("popup") != "" {
		c.HTML(http.StatusOK, "close_window.html", nil)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// EditPage renders the edit form for a single bookmark.
func (controller *BookmarksController) EditPage(c *gin.Context) {
	userID := auth.GetUserID(c)

	searchID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid bookmark ID")
		return
	}

	bookmark, err := controller.store.Get(searchID, userID)
	if err != nil {
		if errors.Is(err, bookmarks.ErrNotFound) {
			c.String(http.StatusNotFound, "Bookmark not found")
			return
		}
		c.String(http.StatusInternalServerError, "Error loading bookmark: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "edit.html", gin.H{
		"Title":     "Edit bookmark",
		"Username":  auth.GetUsername(c),
		"Bookmark":  bookmark,
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

func (controller *BookmarksController) Edit(c *gin.Context) {
	userID := auth.GetUserID(c)

	searchID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid bookmark ID")
		return
	}

	title := c.PostForm("title")
	href := c.PostForm("href")
	if title == "" || href == "" {
		c.String(http.StatusBadRequest, "Both a title and a URL are required")
		return
	}

	bookmark, err := controller.store.Get(searchID, userID)
	if err != nil {
		if errors.Is(err, bookmarks.ErrNotFound) {
			c.String(http.StatusNotFound, "Bookmark not found")
			return
		}
		c.String(http.StatusInternalServerError, "Error loading bookmark: %s", err.Error())
		return
	}

	// Editing keeps the original bookmarking date.
	if err := controller.store.Update(searchID, userID, title, href, bookmark.PubDate); err != nil {
		c.String(http.StatusInternalServerError, "Error saving bookmark: %s", err.Error())
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Delete removes the bookmarks selected in the listing form. Missing rows
// are ignored so a stale form submission does not fail the whole batch.
func (controller *BookmarksController) Delete(c *gin.Context) {
	userID := auth.GetUserID(c)

	for _, idStr := range c.PostFormArray("selected") {
		searchID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		if err := controller.store.Remove(searchID, userID); err != nil && !errors.Is(err, bookmarks.ErrNotFound) {
			c.String(http.StatusInternalServerError, "Error deleting bookmark: %s", err.Error())
			return
		}
	}

	page := 1
	if parsed, err := strconv.Atoi(c.PostForm("page")); err == nil && parsed > 0 {
		page = parsed
	}
	c.Redirect(http.StatusFound, listPath(c.PostForm("q"), page))
}
