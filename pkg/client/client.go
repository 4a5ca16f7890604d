// Package client is a typed Go client for the taskhub REST API.
//
// Every call unwraps the server's {statusCode, success, message, data}
// envelope. Failures come back as *APIError carrying the server message.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/go-querystring/query"
)

const defaultTimeout = 30 * time.Second

// APIError is returned for any non-2xx or success:false response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("taskhub: %d %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an *APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Session holds the bearer token and the signed-in user. It is set by
// Register/Login, cleared by Logout, and read on every outbound request.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *User
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Set(token string, user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

func (s *Session) Clear() {
	s.Set("", nil)
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Client talks to one taskhub server.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	session    *Session

	Users         *UserService
	Projects      *ProjectService
	Tasks         *TaskService
	Stories       *StoryService
	Labels        *LabelService
	Categories    *CategoryService
	Notifications *NotificationService
	Messages      *MessageService
	Analytics     *AnalyticsService
}

type Option func(*Client)

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSession shares an existing session, e.g. one restored from disk.
func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:8080/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultTimeout},
		session:    NewSession(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Users = &UserService{client: c}
	c.Projects = &ProjectService{client: c}
	c.Tasks = &TaskService{client: c}
	c.Stories = &StoryService{client: c}
	c.Labels = &LabelService{client: c}
	c.Categories = &CategoryService{client: c}
	c.Notifications = &NotificationService{client: c}
	c.Messages = &MessageService{client: c}
	c.Analytics = &AnalyticsService{client: c}
	return c, nil
}

func (c *Client) Session() *Session {
	return c.session
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

// do performs one request. opts, when non-nil, is encoded into the query
// string; body, when non-nil, is sent as JSON; out receives the envelope data.
func (c *Client) do(ctx context.Context, method, path string, opts, body, out interface{}) error {
	u, err := c.baseURL.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return err
	}
	if opts != nil {
		values, err := query.Values(opts)
		if err != nil {
			return fmt.Errorf("encode query: %w", err)
		}
		u.RawQuery = values.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)
	if resp.StatusCode < 200 || resp.StatusCode > 299 || decodeErr != nil || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// list fetches one page and fails closed: on error the caller still gets an
// empty, well-formed page.
func list[T any](ctx context.Context, c *Client, path string, opts interface{}) (*Page[T], error) {
	var page Page[T]
	if err := c.do(ctx, http.MethodGet, path, opts, nil, &page); err != nil {
		return emptyPage[T](), err
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return &page, nil
}

func emptyPage[T any]() *Page[T] {
	return &Page[T]{Items: []T{}, Pagination: Pagination{Page: 1, Pages: 1}}
}

type count struct {
	Count int64 `json:"count"`
}
