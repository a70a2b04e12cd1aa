package postgres

import (
	"github.com/chirper-app/chirper/internal/domain/pagination"
)

// Keyset pagination helpers shared by the repositories.
//
// A cursor names a row; the page never contains the cursor row itself.
// "after" walks forward in the query order, "before" collects the rows
// immediately preceding the cursor by running the reversed order and
// flipping the result back.

// cursorID returns the active cursor id and whether paging runs backwards.
func cursorID(p pagination.Cursor) (id string, backwards bool) {
	if p.After != "" {
		return p.After, false
	}
	if p.Before != "" {
		return p.Before, true
	}
	return "", false
}

// reverseInPlace restores forward order after a reversed "before" query.
func reverseInPlace[T any](rows []T) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
