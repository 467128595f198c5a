package importers

import (
	"fmt"

	"github.com/minimarks/minimarks/internal/services"
)

// Action is the decision the reconciler takes for one imported record.
type Action int

const (
	ActionInsert Action = iota
	ActionUpdate
	ActionSkip
	ActionConflict
)

func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionUpdate:
		return "update"
	case ActionSkip:
		return "skip"
	case ActionConflict:
		return "conflict"
	}
	return "unknown"
}

// Tally counts the actions taken during one import run.
type Tally struct {
	Inserted   int `json:"inserted"`
	Updated    int `json:"updated"`
	Skipped    int `json:"skipped"`
	Conflicted int `json:"conflicted"`
}

func (t *Tally) count(a Action) {
	switch a {
	case ActionInsert:
		t.Inserted++
	case ActionUpdate:
		t.Updated++
	case ActionSkip:
		t.Skipped++
	case ActionConflict:
		t.Conflicted++
	}
}

// Total returns the number of records the tally accounts for.
func (t Tally) Total() int {
	return t.Inserted + t.Updated + t.Skipped + t.Conflicted
}

// Reconcile merges one imported record into a user's bookmarks and reports
// what it did. The decision depends only on this record and the store state
// for its href, never on other records in the same batch:
//
//   - no existing bookmark for the href: insert a new one
//   - exactly one, strictly older than the imported timestamp: update it
//   - exactly one, as new or newer: skip, the imported data is discarded
//   - more than one: the per-user uniqueness invariant was already broken
//     before this import; report a conflict and leave the rows untouched
func Reconcile(store services.BookmarkStore, userID uint, title, href string, pubDate int64) (Action, error) {
	existing, err := store.LookupByHref(userID, href)
	if err != nil {
		return 0, fmt.Errorf("failed to look up %q: %w", href, err)
	}

	switch len(existing) {
	case 0:
		if _, err := store.Insert(userID, title, href, pubDate); err != nil {
			return 0, fmt.Errorf("failed to insert %q: %w", href, err)
		}
		return ActionInsert, nil

	case 1:
		current := existing[0]
		if pubDate > current.PubDate {
			if err := store.Update(current.SearchID, userID, title, href, pubDate); err != nil {
				return 0, fmt.Errorf("failed to update %q: %w", href, err)
			}
			return ActionUpdate, nil
		}
		return ActionSkip, nil

	default:
		return ActionConflict, nil
	}
}
