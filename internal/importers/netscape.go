package importers

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/minimarks/minimarks/internal/netscape"
	"github.com/minimarks/minimarks/internal/services"
)

// Importer drives a whole bookmark-file import: stream records out of the
// file, reconcile each one against the user's existing bookmarks, and commit
// everything as a single transaction. A failed batch leaves the store exactly
// as it was.
type Importer struct {
	store         services.TxBookmarkStore
	fallbackToNow bool
	now           func() time.Time
}

func NewImporter(store services.TxBookmarkStore) *Importer {
	return &Importer{
		store:         store,
		fallbackToNow: true,
		now:           time.Now,
	}
}

// SetFallbackToNow controls what happens to records whose add_date is present
// but unparseable: stamp them with the current time (the default) or skip
// them. Records with no add_date at all always get the current time.
func (imp *Importer) SetFallbackToNow(v bool) {
	imp.fallbackToNow = v
}

// Import reads a bookmark export file and merges it into userID's bookmarks.
// A file with no recognizable bookmarks yields an all-zero tally, not an
// error. Records are processed strictly in document order.
func (imp *Importer) Import(r io.Reader, userID uint) (Tally, error) {
	var tally Tally

	err := imp.store.Transact(func(store services.BookmarkStore) error {
		extractor := netscape.NewExtractor(r)
		for {
			rec, err := extractor.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read bookmark file: %w", err)
			}

			pubDate, ok := imp.pubDate(rec.AddDate)
			if !ok {
				tally.count(ActionSkip)
				continue
			}

			action, err := Reconcile(store, userID, rec.Title, rec.Href, pubDate)
			if err != nil {
				return err
			}
			tally.count(action)
		}
	})
	if err != nil {
		return Tally{}, err
	}

	return tally, nil
}

// pubDate turns a raw add_date attribute into unix seconds. Only the first
// ten characters are parsed: some exporters write millisecond-precision
// epochs and the extra digits would otherwise shift the date by millennia.
func (imp *Importer) pubDate(raw string) (int64, bool) {
	if raw == "" {
		return imp.now().Unix(), true
	}

	s := raw
	if len(s) > 10 {
		s = s[:10]
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}

	if imp.fallbackToNow {
		return imp.now().Unix(), true
	}
	return 0, false
}
