package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

var errMissingID = errors.New("api: identifier is required")

// Employees lists every employee with embedded schedule summaries. An empty
// roster comes back as an empty slice, never nil-with-error.
func (c *Client) Employees(ctx context.Context, token Token) ([]Employee, error) {
	var out struct {
		envelope
		Employees []Employee `json:"employees"`
	}
	if err := c.do(ctx, http.MethodGet, "/employee/getemployees", token, nil, &out, false); err != nil {
		return nil, err
	}
	if out.Employees == nil {
		return []Employee{}, nil
	}
	return out.Employees, nil
}

// RegisterEmployee creates a payee record.
func (c *Client) RegisterEmployee(ctx context.Context, token Token, input EmployeeInput) (Employee, error) {
	var out struct {
		envelope
		Employee Employee `json:"employee"`
	}
	if err := c.do(ctx, http.MethodPost, "/employee/register", token, input, &out, false); err != nil {
		return Employee{}, err
	}
	return out.Employee, nil
}

// UpdateEmployee edits an existing payee record.
func (c *Client) UpdateEmployee(ctx context.Context, token Token, id string, input EmployeeInput) error {
	if strings.TrimSpace(id) == "" {
		return errMissingID
	}
	return c.do(ctx, http.MethodPut, "/employee/update/"+url.PathEscape(id), token, input, nil, false)
}

// DeleteEmployee removes a payee record.
func (c *Client) DeleteEmployee(ctx context.Context, token Token, id string) error {
	if strings.TrimSpace(id) == "" {
		return errMissingID
	}
	return c.do(ctx, http.MethodDelete, "/employee/delete/"+url.PathEscape(id), token, nil, nil, false)
}

// DeleteScheduledTransaction cancels a one-off or recurring schedule. When
// the backend has already executed or removed it, the server's error message
// is surfaced through the returned *APIError.
func (c *Client) DeleteScheduledTransaction(ctx context.Context, token Token, id string) error {
	if strings.TrimSpace(id) == "" {
		return errMissingID
	}
	return c.do(ctx, http.MethodDelete, "/employee/scheduledtransaction/"+url.PathEscape(id), token, nil, nil, false)
}
