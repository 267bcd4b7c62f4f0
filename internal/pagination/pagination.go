// Package pagination turns a total entity count and a requested page number
// into a bounded page window with navigation metadata.
package pagination

import "strconv"

// Paginator splits Total items into fixed-size pages.
type Paginator struct {
	Total   int64
	PerPage int
}

// Page is a resolved window over the collection plus the metadata feeds
// serialize for "has next/previous page" rendering.
type Page struct {
	Number      int   `json:"number"`
	NumPages    int   `json:"num_pages"`
	Total       int64 `json:"total"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`

	Offset int `json:"-"`
	Limit  int `json:"-"`
}

// New returns a Paginator over total items with the given page size.
func New(total int64, perPage int) Paginator {
	if perPage <= 0 {
		perPage = 1
	}
	return Paginator{Total: total, PerPage: perPage}
}

// NumPages returns the number of pages. An empty collection still has one
// (empty) page so page 1 is always addressable.
func (p Paginator) NumPages() int {
	if p.Total <= 0 {
		return 1
	}
	n := int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
	if n < 1 {
		n = 1
	}
	return n
}

// ResolvePage maps an untrusted page query parameter onto a valid page
// number. A missing or non-numeric value degrades to the first page; a value
// below 1 or past the end degrades to the last page. Never an error.
func (p Paginator) ResolvePage(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	last := p.NumPages()
	if n < 1 || n > last {
		return last
	}
	return n
}

// Page returns the window for page n. n is clamped into the valid range, so
// callers that went through ResolvePage never observe clamping.
func (p Paginator) Page(n int) Page {
	last := p.NumPages()
	if n < 1 {
		n = 1
	}
	if n > last {
		n = last
	}

	offset := (n - 1) * p.PerPage
	limit := p.PerPage
	if remaining := p.Total - int64(offset); remaining < int64(limit) {
		if remaining < 0 {
			remaining = 0
		}
		limit = int(remaining)
	}

	return Page{
		Number:      n,
		NumPages:    last,
		Total:       p.Total,
		HasNext:     n < last,
		HasPrevious: n > 1,
		Offset:      offset,
		Limit:       limit,
	}
}

// Resolve combines ResolvePage and Page for the common handler path.
func (p Paginator) Resolve(raw string) Page {
	return p.Page(p.ResolvePage(raw))
}
