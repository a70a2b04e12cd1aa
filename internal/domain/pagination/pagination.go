// Package pagination holds the two paging schemes the repositories accept.
package pagination

// Cursor pages relative to a row id. After and Before are row ids; the
// cursor row itself is never included in the result. Before means "the
// Limit rows immediately preceding the cursor", returned in ascending order.
type Cursor struct {
	Limit  int
	After  string
	Before string
}

// Offset is classic limit/skip paging, ordered by id ascending.
type Offset struct {
	Limit int
	Skip  int
}

// Normalize clamps the limit to [1, max], substituting def when unset.
// The backing store is never asked for an unbounded page.
func (c Cursor) Normalize(def, max int) Cursor {
	c.Limit = clamp(c.Limit, def, max)
	return c
}

func (o Offset) Normalize(def, max int) Offset {
	o.Limit = clamp(o.Limit, def, max)
	if o.Skip < 0 {
		o.Skip = 0
	}
	return o
}

func clamp(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
