package application

import "github.com/chirper-app/chirper/internal/domain/pagination"

// PageLimits bounds every paginated query. An omitted limit falls back to
// Default rather than returning the whole table.
type PageLimits struct {
	Default int
	Max     int
}

func (l PageLimits) cursor(p pagination.Cursor) pagination.Cursor {
	return p.Normalize(l.orDefaults())
}

func (l PageLimits) offset(p pagination.Offset) pagination.Offset {
	return p.Normalize(l.orDefaults())
}

func (l PageLimits) orDefaults() (int, int) {
	def, max := l.Default, l.Max
	if def <= 0 {
		def = 50
	}
	if max <= 0 {
		max = 100
	}
	return def, max
}
