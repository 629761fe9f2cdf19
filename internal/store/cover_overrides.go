package store

import (
	"github.com/readquest/readquest-server/internal/domain"
	"github.com/readquest/readquest-server/internal/errors"
)

// overridePrefix versions the cover override keyspace, independent of the
// recommendation cache prefix.
const overridePrefix = "cover_override:v1:"

// CoverOverrides persists user-supplied replacement covers keyed by book ID.
// An override lives until the user replaces or removes it; a repeated upload
// for the same book simply overwrites (last write wins).
type CoverOverrides struct {
	store *Store
}

// Get returns the override for a book.
func (c *CoverOverrides) Get(bookID string) (*domain.CoverOverride, error) {
	key := []byte(overridePrefix + bookID)

	var override domain.CoverOverride
	err := c.store.get(key, &override)
	if isNotFound(err) {
		return nil, errors.NotFoundf("no cover override for book %s", bookID)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "load cover override")
	}

	return &override, nil
}

// Put stores or replaces the override for a book.
func (c *CoverOverrides) Put(override *domain.CoverOverride) error {
	if override.BookID == "" {
		return errors.Validation("cover override requires a book id")
	}
	return c.store.set([]byte(overridePrefix+override.BookID), override)
}

// Delete removes the override for a book. Deleting a missing override is not
// an error.
func (c *CoverOverrides) Delete(bookID string) error {
	return c.store.delete([]byte(overridePrefix + bookID))
}
