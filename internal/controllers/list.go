package controllers

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/empdesk/empdesk-console/internal/models"
	"github.com/empdesk/empdesk-console/internal/nav"
	"github.com/empdesk/empdesk-console/pkg/errors"
	"github.com/empdesk/empdesk-console/pkg/logger"
)

// ListController owns the employee list view's query state (page, search,
// sort) and the page of records it produced. Every query-state change
// triggers a refresh; overlapping refreshes are resolved by a generation
// counter so the last-issued request always wins and a late response to an
// older query is discarded.
type ListController struct {
	mu       sync.Mutex
	api      EmployeeAPI
	sessions SessionStore
	nav      nav.Navigator
	confirm  ConfirmFunc

	query     models.ListQuery
	employees []models.Employee
	total     int
	pages     int
	lastErr   string

	seq uint64 // generation of the most recently issued fetch
}

// ListState is a consistent snapshot of the list view for rendering.
type ListState struct {
	Query     models.ListQuery
	Employees []models.Employee
	Total     int
	Pages     int
	Err       string
}

// HasPrev reports whether a previous page exists.
func (s ListState) HasPrev() bool {
	return s.Query.Page > 1
}

// HasNext reports whether a next page exists.
func (s ListState) HasNext() bool {
	return s.Query.Page < s.Pages
}

// NewListController creates a list controller with the default query state.
func NewListController(api EmployeeAPI, sessions SessionStore, navigator nav.Navigator, confirm ConfirmFunc, pageSize int) *ListController {
	return &ListController{
		api:      api,
		sessions: sessions,
		nav:      navigator,
		confirm:  confirm,
		query:    models.DefaultListQuery(pageSize),
	}
}

// State returns a snapshot of the current list state.
func (c *ListController) State() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	employees := make([]models.Employee, len(c.employees))
	copy(employees, c.employees)
	return ListState{
		Query:     c.query,
		Employees: employees,
		Total:     c.total,
		Pages:     c.pages,
		Err:       c.lastErr,
	}
}

// Refresh fetches the page described by the current query state. Safe to
// call from concurrent goroutines: each call bumps the generation counter
// and only the newest generation may commit its response.
func (c *ListController) Refresh(ctx context.Context) {
	c.mu.Lock()
	if _, ok := c.sessions.Get(); !ok {
		c.mu.Unlock()
		c.nav.NavigateTo(nav.RouteLogin)
		return
	}
	c.seq++
	gen := c.seq
	query := c.query
	c.mu.Unlock()

	page, err := c.api.ListEmployees(ctx, query)

	c.mu.Lock()
	if gen != c.seq {
		// A newer fetch was issued while this one was in flight.
		c.mu.Unlock()
		logger.Debug("Discarding stale list response", zap.Uint64("generation", gen))
		return
	}
	if err != nil {
		c.lastErr = errors.MessageFor(err)
		c.mu.Unlock()
		c.redirectOnAuthError(err)
		return
	}
	c.employees = page.Employees
	c.total = page.Total
	c.pages = page.Pages
	c.lastErr = ""
	c.mu.Unlock()
}

// SetSearch replaces the search text and refreshes. The page resets to 1 so
// a shrinking result set cannot leave the view stranded past the last page.
func (c *ListController) SetSearch(ctx context.Context, text string) {
	c.mu.Lock()
	if c.query.Search == text {
		c.mu.Unlock()
		return
	}
	c.query.Search = text
	c.query.Page = 1
	c.mu.Unlock()
	c.Refresh(ctx)
}

// SortBy adopts field as the sort key. Sorting by the current field flips
// the order; a new field starts ascending. The page resets to 1 and the list
// refreshes. This is the single toggle point for sort order.
func (c *ListController) SortBy(ctx context.Context, field string) {
	c.mu.Lock()
	if c.query.SortField == field {
		if c.query.SortOrder == models.OrderAsc {
			c.query.SortOrder = models.OrderDesc
		} else {
			c.query.SortOrder = models.OrderAsc
		}
	} else {
		c.query.SortField = field
		c.query.SortOrder = models.OrderAsc
	}
	c.query.Page = 1
	c.mu.Unlock()
	c.Refresh(ctx)
}

// SetPage moves to page p when it lies within [1, pages]; out-of-range
// requests are ignored here, at the navigation boundary. Before the first
// successful fetch, and on an empty result set, pages is 0 and only page 1
// is reachable.
func (c *ListController) SetPage(ctx context.Context, p int) {
	c.mu.Lock()
	last := c.pages
	if last < 1 {
		last = 1
	}
	if p < 1 || p > last || p == c.query.Page {
		c.mu.Unlock()
		return
	}
	c.query.Page = p
	c.mu.Unlock()
	c.Refresh(ctx)
}

// NextPage advances one page when a next page exists.
func (c *ListController) NextPage(ctx context.Context) {
	c.mu.Lock()
	p := c.query.Page + 1
	c.mu.Unlock()
	c.SetPage(ctx, p)
}

// PrevPage steps back one page when a previous page exists.
func (c *ListController) PrevPage(ctx context.Context) {
	c.mu.Lock()
	p := c.query.Page - 1
	c.mu.Unlock()
	c.SetPage(ctx, p)
}

// Delete removes an employee after explicit confirmation. A declined
// confirmation issues no network call. A successful delete always re-fetches
// rather than decrementing counts locally, because removing the last row of
// a page can shift the total page count.
func (c *ListController) Delete(ctx context.Context, id string) {
	if !c.confirm("Are you sure you want to delete this employee?") {
		return
	}

	c.mu.Lock()
	if _, ok := c.sessions.Get(); !ok {
		c.mu.Unlock()
		c.nav.NavigateTo(nav.RouteLogin)
		return
	}
	c.mu.Unlock()

	if err := c.api.DeleteEmployee(ctx, id); err != nil {
		c.mu.Lock()
		c.lastErr = errors.MessageFor(err)
		c.mu.Unlock()
		c.redirectOnAuthError(err)
		return
	}

	c.mu.Lock()
	c.lastErr = ""
	c.mu.Unlock()
	c.Refresh(ctx)
}

// redirectOnAuthError implements the cross-cutting 401 contract: clear the
// session and go to login.
func (c *ListController) redirectOnAuthError(err error) {
	if errors.Is(err, errors.ErrUnauthorized) {
		c.sessions.Clear()
		c.nav.NavigateTo(nav.RouteLogin)
	}
}
