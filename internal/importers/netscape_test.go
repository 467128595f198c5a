package importers

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minimarks/minimarks/internal/database"
	"github.com/minimarks/minimarks/internal/database/bookmarks"
	"github.com/minimarks/minimarks/internal/services"
)

const testUserID = uint(1)

func setupImportTest(t *testing.T) (*bookmarks.Repository, func()) {
	dbPath := "./test_import_" + t.Name() + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := bookmarks.NewRepository(db.DB)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func bookmarkFile(entries ...string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n<DL><p>\n")
	for _, e := range entries {
		b.WriteString("    <DT>" + e + "\n")
	}
	b.WriteString("</DL><p>\n")
	return b.String()
}

func TestImporter_Import_InsertsNewBookmarks(t *testing.T) {
	repo, cleanup := setupImportTest(t)
	defer cleanup()

	file := bookmarkFile(
		`<A HREF="https://example.com/" ADD_DATE="1700000000">Example</A>`,
		`<A HREF="https://go.dev/" ADD_DATE="1700000100">Go</A>`,
	)

	importer := NewImporter(repo)
	tally, err := importer.Import(strings.NewReader(file), testUserID)
	require.NoError(t, err)

	assert.Equal(t, Tally{Inserted: 2}, tally)

	marks, err := repo.LookupByHref(testUserID, "https://example.com/")
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, "Example", marks[0].Title)
	assert.Equal(t, int64(1700000000), marks[0].PubDate)
}

func TestImporter_Import_SecondImportIsAllSkips(t *testing.T) {
	repo, cleanup := setupImportTest(t)
	defer cleanup()

	file := bookmarkFile(
		`<A HREF="https://example.com/" ADD_DATE="1700000000">Example</A>`,
		`<A HREF="https://go.dev/" ADD_DATE="1700000100">Go</A>`,
	)

	importer := NewImporter(repo)
	_, err := importer.Import(strings.NewReader(file), testUserID)
	require.NoError(t, err)

	tally, err := importer.Import(strings.NewReader(file), testUserID)
	require.NoError(t, err)
	assert.Equal(t, Tally{Skipped: 2}, tally)

	listing, err := repo.List(testUserID, services.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, listing.Bookmarks, 2)
}

func TestImporter_Import_UpdatesOnNewerDate(t *testing.T) {
	repo, cleanup := setupImportTest(t)
	defer cleanup()

	searchID, err := repo.Insert(testUserID, "Stale title", "https://example.com/", 1000)
	require.NoError(t, err)

	file := bookmarkFile(`<A HREF="https://example.com/" ADD_DATE="2000">Fresh title</A>`)

	importer := NewImporter(repo)
	tally, err := importer.Import(strings.NewReader(file), testUserID)
	require.NoError(t, err)
	assert.Equal(t, Tally{Updated: 1}, tally)

	mark, err := repo.Get(searchID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, "Fresh title", mark.Title)
	assert.Equal(t, int64(2000), mark.PubDate)
}

func TestImporter_Import_SkipsEqualOrOlderDate(t *testing.T) {
	repo, cleanup := setupImportTest(t)
	defer cleanup()

	searchID, err := repo.Insert(testUserID, "Current", "https://example.com/", 2000)
	require.NoError(t, err)

	file := bookmarkFile(
		`<A HREF="https://example.com/" ADD_DATE="2000">Same age</A>`,
	)

	importer := NewImporter(repo)
	tally, err := importer.Import(strings.NewReader(file), testUserID)
	require.NoError(t, err)
	assert.Equal(t, Tally{Skipped: 1}, tally)

	mark, err := repo.Get(searchID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, "Current", mark.Title)
}

func TestImporter_Import_ReportsConflicts(t *testing.T) {
	repo, cleanup := setupImportTest(t)
	defer cleanup()

	// Two rows for the same href violate the per-user uniqueness the
	// reconciler relies on; it must report them without touching either.
	_, err := repo.Insert(testUserID, "First copy", "https://dup.test/", 100)
	require.NoError(t, err)
	_, err = repo.Insert(testUserID, "Second copy", "https://dup.test/", 200)
	require.NoError(t, err)

	file := bookmarkFile(`<A HREF="https://dup.test/" ADD_DATE="9999999999">Newer</A>`)

	importer := NewImporter(repo)
	tally, err := importer.Import(strings.NewReader(file), testUserID)
	require.NoError(t, err)
	assert.Equal(t, Tally{Conflicted: 1}, tally)

	marks, err := repo.LookupByHref(testUserID, "https://dup.test/")
	require.NoError(t, err)
	require.Len(t, marks, 2)
	titles := []string{marks[0].Title, marks[1].Title}
	assert.ElementsMatch(t, []string{"First copy", "Second copy"}, titles)
}

func TestImporter_Import_ScopedToUser(t *testing.T) {
	repo, cleanup := setupImportTest(t)
	defer cleanup()

	_, err := repo.Insert(uint(2), "Other user's", "https://example.com/", 9000)
	require.NoError(t, err)

	file := bookmarkFile(`<A HREF="https://example.com/" ADD_DATE="100">Mine</A>`)

	importer := NewImporter(repo)
	tally, err := importer.Import(strings.NewReader(file), testUserID)
	require.NoError(t, err)

	// The other user's newer bookmark does not shadow this user's insert.
	assert.Equal(t, Tally{Inserted: 1}, tally)
}

func TestImporter_Import_MillisecondPrecisionDates(t *testing.T) {
	repo, cleanup := setupImportTest(t)
	defer cleanup()

	file := bookmarkFile(`<A HREF="https://example.com/" ADD_DATE="1700000000123">Example</A>`)

	importer := NewImporter(repo)
	tally, err := importer.Import(strings.NewReader(file), testUserID)
	require.NoError(t, err)
	assert.Equal(t, Tally{Inserted: 1}, tally)

	marks, err := repo.LookupByHref(testUserID, "https://example.com/")
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, int64(1700000000), marks[0].PubDate)
}

func TestImporter_Import_MissingDateUsesNow(t *testing.T) {
	repo, cleanup := setupImportTest(t)
	defer cleanup()

	now := time.Unix(1800000000, 0)
	importer := NewImporter(repo)
	importer.now = func() time.Time { return now }

	file := bookmarkFile(`<A HREF="https://example.com/">Example</A>`)

	tally, err := importer.Import(strings.NewReader(file), testUserID)
	require.NoError(t, err)
	assert.Equal(t, Tally{Inserted: 1}, tally)

	marks, err := repo.LookupByHref(testUserID, "https://example.com/")
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, now.Unix(), marks[0].PubDate)
}

func TestImporter_Import_MalformedDateFallsBackToNow(t *testing.T) {
	repo, cleanup := setupImportTest(t)
	defer cleanup()

	now := time.Unix(1800000000, 0)
	importer := NewImporter(repo)
	importer.now = func() time.Time { return now }

	file := bookmarkFile(`<A HREF="https://example.com/" ADD_DATE="notadate">Example</A>`)

	tally, err := importer.Import(strings.NewReader(file), testUserID)
	require.NoError(t, err)
	assert.Equal(t, Tally{Inserted: 1}, tally)

	marks, err := repo.LookupByHref(testUserID, "https://example.com/")
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, now.Unix(), marks[0].PubDate)
}

func TestImporter_Import_MalformedDateSkippedWhenStrict(t *testing.T) {
	repo, cleanup := setupImportTest(t)
	defer cleanup()

	importer := NewImporter(repo)
	importer.SetFallbackToNow(false)

	file := bookmarkFile(
		`<A HREF="https://bad.test/" ADD_DATE="notadate">Bad date</A>`,
		`<A HREF="https://good.test/" ADD_DATE="1700000000">Good date</A>`,
	)

	tally, err := importer.Import(strings.NewReader(file), testUserID)
	require.NoError(t, err)
	assert.Equal(t, Tally{Inserted: 1, Skipped: 1}, tally)

	marks, err := repo.LookupByHref(testUserID, "https://bad.test/")
	require.NoError(t, err)
	assert.Empty(t, marks)
}

func TestImporter_Import_EmptyFile(t *testing.T) {
	repo, cleanup := setupImportTest(t)
	defer cleanup()

	importer := NewImporter(repo)
	tally, err := importer.Import(strings.NewReader(""), testUserID)
	require.NoError(t, err)
	assert.Equal(t, Tally{}, tally)
	assert.Equal(t, 0, tally.Total())
}
