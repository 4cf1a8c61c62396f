// Package apiclient is a typed HTTP client for the employee registry API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Skotchmaster/employee_registry/internal/models"
	"github.com/Skotchmaster/employee_registry/internal/transport"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// WithToken returns a copy of c that sends token as the bearer credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// APIError is a non-2xx response decoded from the {"error": ...} body.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb struct {
			Error  string       `json:"error"`
			Fields []FieldError `json:"fields"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			apiErr.Message = eb.Error
			apiErr.Fields = eb.Fields
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, req transport.RegisterRequest) (*transport.AuthResponse, error) {
	var out transport.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*transport.AuthResponse, error) {
	var out transport.AuthResponse
	req := transport.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	if err := c.do(ctx, http.MethodGet, "/api/employees", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchEmployees(ctx context.Context, query string) ([]models.Employee, error) {
	var out []models.Employee
	path := "/api/employees/search?query=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	var out models.Employee
	if err := c.do(ctx, http.MethodGet, "/api/employees/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateEmployee(ctx context.Context, req transport.EmployeeRequest) (*models.Employee, error) {
	var out models.Employee
	if err := c.do(ctx, http.MethodPost, "/api/employees", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, id string, req transport.EmployeeRequest) (*models.Employee, error) {
	var out models.Employee
	if err := c.do(ctx, http.MethodPut, "/api/employees/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/employees/"+url.PathEscape(id), nil, nil)
}
