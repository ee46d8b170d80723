package repository

// Page represents a simple limit/offset window for listing operations.
// I keep it intentionally small; advanced filtering belongs to higher layers.
type Page struct {
	Limit  int
	Offset int
}

// DefaultPageLimit applies when a caller asks for a non-positive limit.
const DefaultPageLimit = 50

// Normalize clamps limit and offset to sane values.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// PageResult carries a slice of items and the total count matching the query.
// I return the total so clients can compute pagination without an extra round trip.
type PageResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
