package models

import (
	"net/url"
	"strconv"
)

// Sortable list fields accepted by the server.
const (
	SortByID         = "id"
	SortByName       = "name"
	SortByEmail      = "email"
	SortByCreateDate = "createDate"
)

// Sort orders.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListQuery is the query state driving the employee list fetch: current page,
// page size, free-text search and sort field/order.
type ListQuery struct {
	Page      int
	Limit     int
	Search    string
	SortField string
	SortOrder string
}

// DefaultListQuery returns the initial query state: first page, empty search,
// sorted by name ascending.
func DefaultListQuery(pageSize int) ListQuery {
	return ListQuery{
		Page:      1,
		Limit:     pageSize,
		SortField: SortByName,
		SortOrder: OrderAsc,
	}
}

// Values encodes the query state as URL query parameters.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("search", q.Search)
	v.Set("sort", q.SortField)
	v.Set("order", q.SortOrder)
	return v
}
