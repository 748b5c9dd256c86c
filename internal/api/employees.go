package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/empdesk/empdesk-console/internal/models"
)

// ListEmployees fetches one page of employees for the given query state.
func (c *Client) ListEmployees(ctx context.Context, q models.ListQuery) (*models.EmployeePage, error) {
	var page models.EmployeePage
	if err := c.Get(ctx, "/employees", q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetEmployee fetches a single employee by id.
func (c *Client) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	var emp models.Employee
	err := c.doJSON(ctx, http.MethodGet, "/employees/"+url.PathEscape(id), "/employees/:id", nil, nil, &emp)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// CreateEmployee submits a new employee as a multipart form. The image part
// is mandatory on create; the caller validates that before getting here.
func (c *Client) CreateEmployee(ctx context.Context, form models.EmployeeForm) (*models.Employee, error) {
	body, contentType, err := encodeEmployeeForm(form)
	if err != nil {
		return nil, err
	}

	var emp models.Employee
	data, _, err := c.do(ctx, http.MethodPost, "/employees", "/employees", nil, contentType, body)
	if err != nil {
		return nil, err
	}
	if err := decodeInto(data, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

// UpdateEmployee replaces an existing employee's fields. When form.Image is
// nil no image part is sent, which tells the server to keep the stored one.
func (c *Client) UpdateEmployee(ctx context.Context, id string, form models.EmployeeForm) (*models.Employee, error) {
	body, contentType, err := encodeEmployeeForm(form)
	if err != nil {
		return nil, err
	}

	var emp models.Employee
	data, _, err := c.do(ctx, http.MethodPut, "/employees/"+url.PathEscape(id), "/employees/:id", nil, contentType, body)
	if err != nil {
		return nil, err
	}
	if err := decodeInto(data, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

// DeleteEmployee deletes an employee by id.
func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/employees/"+url.PathEscape(id), "/employees/:id", nil, nil, nil)
}

// FetchUpload retrieves a stored image by file name, returning the raw bytes
// and the content type the server reported.
func (c *Client) FetchUpload(ctx context.Context, name string) ([]byte, string, error) {
	return c.do(ctx, http.MethodGet, "/uploads/"+url.PathEscape(name), "/uploads/:name", nil, "", nil)
}
