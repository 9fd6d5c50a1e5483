// Package client talks to the rippl API over HTTP.
package client

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

	"github.com/google/uuid"

	"rippl-backend/internal/notifications"
	"rippl-backend/internal/tasks"
	"rippl-backend/internal/users"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type Session struct {
	Token    string `json:"token"`
	Subject  string `json:"subject"`
	UserType string `json:"user_type"`
}

func (c *Client) Session(ctx context.Context, userType string) (Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/auth/session", nil, map[string]string{"user_type": userType}, &s)
	return s, err
}

// ListOptions mirrors the discovery filters.
type ListOptions struct {
	Category string
	Search   string
	Statuses []string
	Sort     string
}

func (c *Client) ListTasks(ctx context.Context, o ListOptions) ([]tasks.Task, error) {
	q := url.Values{}
	if o.Category != "" {
		q.Set("category", o.Category)
	}
	if o.Search != "" {
		q.Set("q", o.Search)
	}
	for _, s := range o.Statuses {
		q.Add("status", s)
	}
	if o.Sort != "" {
		q.Set("sort", o.Sort)
	}

	var out []tasks.Task
	err := c.do(ctx, http.MethodGet, "/tasks", q, nil, &out)
	return out, err
}

func (c *Client) GetTask(ctx context.Context, id string) (tasks.Task, error) {
	var t tasks.Task
	err := c.do(ctx, http.MethodGet, "/task", url.Values{"id": {id}}, nil, &t)
	return t, err
}

func (c *Client) CreateTask(ctx context.Context, req tasks.CreateRequest) (tasks.Task, error) {
	var t tasks.Task
	err := c.do(ctx, http.MethodPost, "/tasks", nil, req, &t)
	return t, err
}

func (c *Client) Apply(ctx context.Context, req tasks.ApplyRequest) (tasks.Task, error) {
	var t tasks.Task
	err := c.do(ctx, http.MethodPost, "/task/apply", nil, req, &t)
	return t, err
}

func (c *Client) Review(ctx context.Context, id string, approved bool) (tasks.Task, error) {
	var t tasks.Task
	err := c.do(ctx, http.MethodPost, "/task/review", nil, tasks.ReviewRequest{TaskID: id, Approved: &approved}, &t)
	return t, err
}

func (c *Client) SubmitEvidence(ctx context.Context, req tasks.EvidenceRequest) (tasks.Task, error) {
	var t tasks.Task
	err := c.do(ctx, http.MethodPost, "/task/evidence", nil, req, &t)
	return t, err
}

func (c *Client) Verify(ctx context.Context, id string) (tasks.Task, error) {
	var t tasks.Task
	err := c.do(ctx, http.MethodPost, "/task/verify", nil, tasks.TaskRef{TaskID: id}, &t)
	return t, err
}

func (c *Client) Reject(ctx context.Context, id string) (tasks.Task, error) {
	var t tasks.Task
	err := c.do(ctx, http.MethodPost, "/task/reject", nil, tasks.TaskRef{TaskID: id}, &t)
	return t, err
}

func (c *Client) Notifications(ctx context.Context) ([]notifications.Notification, error) {
	var out []notifications.Notification
	err := c.do(ctx, http.MethodGet, "/notifications", nil, nil, &out)
	return out, err
}

func (c *Client) Me(ctx context.Context) (users.Profile, error) {
	var out struct {
		Profile users.Profile `json:"profile"`
	}
	err := c.do(ctx, http.MethodGet, "/me", nil, nil, &out)
	return out.Profile, err
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("X-Platform", "cli")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(b, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(b))
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
