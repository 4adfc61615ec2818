package pagination

import (
	"net/http"
	"strconv"
)

// Params holds pagination parameters extracted from query strings.
// Page/PerPage drive offset pagination; LastID/LastPrice carry an
// optional keyset cursor that, when present, takes precedence over Page.
type Params struct {
	Page      int    `json:"page"`
	PerPage   int    `json:"per_page"`
	Offset    int    `json:"-"`
	LastID    string `json:"-"`
	LastPrice int64  `json:"-"`
	HasCursor bool   `json:"-"`
}

// DefaultParams returns sensible pagination defaults.
func DefaultParams() Params {
	return Params{
		Page:    1,
		PerPage: 20,
		Offset:  0,
	}
}

// FromRequest extracts pagination parameters from an HTTP request.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()
	q := r.URL.Query()

	if page := q.Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if perPage := q.Get("per_page"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= 100 {
			p.PerPage = v
		}
	}

	if lastID := q.Get("last_id"); lastID != "" {
		p.LastID = lastID
		p.HasCursor = true
		if lastPrice := q.Get("last_price"); lastPrice != "" {
			if v, err := strconv.ParseInt(lastPrice, 10, 64); err == nil && v >= 0 {
				p.LastPrice = v
			}
		}
	}

	p.Offset = (p.Page - 1) * p.PerPage
	return p
}

// Result wraps an offset-paginated response.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewResult creates an offset-paginated result.
func NewResult[T any](data []T, totalCount int, params Params) Result[T] {
	totalPages := totalCount / params.PerPage
	if totalCount%params.PerPage > 0 {
		totalPages++
	}

	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}

// Cursor identifies the last item of a page for keyset continuation.
type Cursor struct {
	LastID    string `json:"last_id"`
	LastPrice int64  `json:"last_price,omitempty"`
}

// CursorResult wraps a keyset-paginated response. Totals are omitted
// on purpose: counting defeats the point of keyset pagination.
type CursorResult[T any] struct {
	Data    []T     `json:"data"`
	PerPage int     `json:"per_page"`
	HasMore bool    `json:"has_more"`
	Next    *Cursor `json:"next_cursor,omitempty"`
}

// NewCursorResult creates a keyset-paginated result. A full page is
// treated as having more results; the next cursor points at the last
// returned item.
func NewCursorResult[T any](data []T, params Params, cursorOf func(T) Cursor) CursorResult[T] {
	res := CursorResult[T]{
		Data:    data,
		PerPage: params.PerPage,
		HasMore: len(data) == params.PerPage,
	}
	if res.HasMore && len(data) > 0 {
		c := cursorOf(data[len(data)-1])
		res.Next = &c
	}
	return res
}
