package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"profilehub/internal/client/models"
	"profilehub/internal/logging"
)

const defaultTimeout = 15 * time.Second

// HTTPClient implements Client over the service's JSON REST API.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger

	mu    sync.RWMutex
	token string
}

type Option func(*HTTPClient)

// WithTimeout bounds every request; expirations surface as ErrUnavailable.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.hc.Timeout = d }
}

func WithLogger(log logging.Logger) Option {
	return func(c *HTTPClient) { c.log = log }
}

// WithHTTPClient replaces the underlying transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.hc = hc }
}

// NewHTTPClient creates a client for the API rooted at baseURL
// (e.g. "http://127.0.0.1:5000/api").
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: defaultTimeout},
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}

	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, false, &res, "Login failed"); err != nil {
		return nil, err
	}
	c.SetToken(res.Token)
	return &res, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, false, &res, "Registration failed"); err != nil {
		return nil, err
	}
	c.SetToken(res.Token)
	return &res, nil
}

func (c *HTTPClient) VerifyToken(ctx context.Context) (*models.User, error) {
	if c.Token() == "" {
		return nil, &Error{Status: http.StatusUnauthorized, Msg: "No token", Kind: ErrUnauthorized}
	}

	var res struct {
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/verify", nil, nil, true, &res, "Token verification failed"); err != nil {
		return nil, err
	}
	return &res.User, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context, q ListQuery) (*UserPage, error) {
	query := url.Values{}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(q.PerPage))
	}

	var res UserPage
	if err := c.do(ctx, http.MethodGet, "/users", query, nil, false, &res, "Failed to fetch users"); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var res models.User
	path := fmt.Sprintf("/users/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, true, &res, "Failed to fetch user"); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, upd ProfileUpdate) (*models.User, error) {
	var res models.User
	path := fmt.Sprintf("/users/%d", id)
	if err := c.do(ctx, http.MethodPut, path, nil, upd, true, &res, "Failed to update profile"); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) CurrentProfile(ctx context.Context) (*models.User, error) {
	var res models.User
	if err := c.do(ctx, http.MethodGet, "/profile", nil, nil, true, &res, "Failed to fetch profile"); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/users/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, true, nil, "Failed to delete account")
}

// do performs one request/response round-trip. A non-2xx response or a
// transport failure becomes an *Error whose Msg is the server's "error"
// field when present, fallback otherwise.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, auth bool, out any, fallback string) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		if token := c.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)

	c.log.Debug(ctx, "api request", "method", method, "path", path, "request_id", reqID)

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "api transport failure", "path", path, "request_id", reqID, "error", err)
		return &Error{Msg: fallback, Kind: ErrUnavailable}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.decodeError(resp, fallback)
		c.log.Debug(ctx, "api error response", "path", path, "request_id", reqID, "status", resp.StatusCode, "message", apiErr.Msg)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeError reads the server's {"error": "..."} body and classifies the
// status into a sentinel category.
func (c *HTTPClient) decodeError(resp *http.Response, fallback string) *Error {
	msg := fallback

	var body struct {
		Error string `json:"error"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && json.Unmarshal(raw, &body) == nil && body.Error != "" {
		msg = body.Error
	}

	return &Error{
		Status: resp.StatusCode,
		Msg:    msg,
		Kind:   kindForStatus(resp.StatusCode),
	}
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ErrValidation
	case status >= 500:
		return ErrUnavailable
	}
	return nil
}
