// Package apiclient talks to the triage server over HTTP.
package apiclient

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

	"github.com/nhle/email-triage/internal/model"
)

// ErrUnauthorized is returned for any 401 response.
var ErrUnauthorized = errors.New("unauthorized")

// StatusError is a non-2xx response other than 401.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Client is a thin JSON client for the triage API. Transport failures come
// back wrapping *url.Error.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	maxRetries int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default 30s-timeout client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	return c.token
}

// Session is the result of a successful login.
type Session struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// VerifiedUser is the claim set echoed back by verify.
type VerifiedUser struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Iat    int64  `json:"iat"`
	Exp    int64  `json:"exp"`
}

// Login exchanges credentials for a token and remembers it.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &s); err != nil {
		return nil, err
	}
	c.token = s.Token
	return &s, nil
}

// Verify checks the current token. An invalid token yields ErrUnauthorized.
func (c *Client) Verify(ctx context.Context) (*VerifiedUser, error) {
	var resp struct {
		Valid bool          `json:"valid"`
		User  *VerifiedUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/verify", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Valid || resp.User == nil {
		return nil, ErrUnauthorized
	}
	return resp.User, nil
}

// ListEmails fetches every email.
func (c *Client) ListEmails(ctx context.Context) ([]model.EmailRecord, error) {
	var records []model.EmailRecord
	if err := c.do(ctx, http.MethodGet, "/emails", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SetImportance writes an importance patch.
func (c *Client) SetImportance(ctx context.Context, id string, patch model.ImportancePatch) error {
	return c.do(ctx, http.MethodPatch, "/emails/"+url.PathEscape(id)+"/importance", patch, nil)
}

// SetRead writes the read flag.
func (c *Client) SetRead(ctx context.Context, id string, read bool) error {
	body := map[string]bool{"isRead": read}
	return c.do(ctx, http.MethodPatch, "/emails/"+url.PathEscape(id)+"/read", body, nil)
}

// DeleteEmail removes one email.
func (c *Client) DeleteEmail(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/emails/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body any,
	result any,
) error {
	var data []byte
	if body != nil {
		var err error
		if data, err = json.Marshal(body); err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
	}

	for attempt := 0; ; attempt++ {
		var bodyReader io.Reader
		if data != nil {
			bodyReader = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		if data != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("executing request %s %s: %w", method, path, err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("reading response body: %w", readErr)
		}

		// Only reads are retried; mutations are sent exactly once.
		if resp.StatusCode == http.StatusTooManyRequests && method == http.MethodGet && attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryAfterDuration(resp, attempt)):
				continue
			}
		}

		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			se := &StatusError{Code: resp.StatusCode}
			var msg struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(respBody, &msg) == nil {
				se.Message = msg.Message
			}
			return fmt.Errorf("%s %s: %w", method, path, se)
		}

		if result == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshaling response from %s %s: %w", method, path, err)
		}
		return nil
	}
}

// retryAfterDuration honours Retry-After, else backs off 1s, 2s, 4s.
func retryAfterDuration(resp *http.Response, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return min(time.Duration(1<<uint(attempt))*time.Second, 30*time.Second)
}
