// Package api is a typed client for the taskboard HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/netx"
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New returns a client for the server at baseURL, e.g.
// "http://127.0.0.1:5000".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Register(ctx context.Context, email, username, fullName, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "username": username, "fullname": fullName, "password": password}
	var res AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var res AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var res struct {
		User User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &res); err != nil {
		return nil, err
	}
	return &res.User, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var res []Category
	if err := c.doJSON(ctx, http.MethodGet, "/api/categories", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// CreateCategory creates a category. An empty color lets the server pick
// its default.
func (c *Client) CreateCategory(ctx context.Context, name, color string) (*Category, error) {
	body := map[string]string{"name": name}
	if color != "" {
		body["color"] = color
	}
	var res Category
	if err := c.doJSON(ctx, http.MethodPost, "/api/categories", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/categories/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) ListTasks(ctx context.Context, f TaskFilter) ([]Task, error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.CategoryID > 0 {
		q.Set("categoryId", strconv.FormatInt(f.CategoryID, 10))
	}

	path := "/api/tasks"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var res []Task
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) CreateTask(ctx context.Context, categoryID int64, title string) (*Task, error) {
	body := map[string]any{"title": title, "categoryId": categoryID}
	var res Task
	if err := c.doJSON(ctx, http.MethodPost, "/api/tasks", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateTask sends the non-nil fields of u. Setting CategoryID moves the
// task to another category.
func (c *Client) UpdateTask(ctx context.Context, id int64, u TaskUpdate) (*Task, error) {
	var res Task
	if err := c.doJSON(ctx, http.MethodPut, "/api/tasks/"+strconv.FormatInt(id, 10), u, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) SetCompleted(ctx context.Context, id int64, completed bool) (*Task, error) {
	return c.UpdateTask(ctx, id, TaskUpdate{Completed: &completed})
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/tasks/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var res Stats
	if err := c.doJSON(ctx, http.MethodGet, "/api/tasks/stats", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Export returns the raw export document.
func (c *Client) Export(ctx context.Context) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/export", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// Import uploads a document in the format produced by Export.
func (c *Client) Import(ctx context.Context, doc []byte) (*ImportResult, error) {
	if !json.Valid(doc) {
		return nil, errors.New("import file is not valid JSON")
	}
	var res ImportResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/import", json.RawMessage(doc), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateSnapshot asks the server to store an export in object storage.
func (c *Client) CreateSnapshot(ctx context.Context) (*Snapshot, error) {
	var res Snapshot
	if err := c.doJSON(ctx, http.MethodPost, "/api/export/snapshot", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DownloadSnapshot fetches a snapshot through its presigned URL.
func (c *Client) DownloadSnapshot(ctx context.Context, s *Snapshot) ([]byte, error) {
	return netx.DownloadFromPresignedURL(ctx, c.http, s.URL)
}

// doJSON sends in (when non-nil) as JSON and decodes the response into out
// (when non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do performs the request and turns transport failures into ErrUnavailable
// and non-2xx answers into *Error. On success the caller owns resp.Body.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	apiErr := &Error{Status: resp.StatusCode}
	var payload struct {
		Message string       `json:"message"`
		Errors  []FieldIssue `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Message = payload.Message
		apiErr.Issues = payload.Errors
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return nil, apiErr
}
