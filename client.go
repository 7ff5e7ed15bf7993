package sessions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Client is the shared HTTP plumbing under the resource gateways: base URL
// handling, JSON mapping, bearer token injection and the status-to-taxonomy
// translation. It carries no retry or caching; every call is one request and
// one response.
type Client struct {
	base   *url.URL
	http   *http.Client
	tokens TokenSource
	logger Logger
}

// ClientOption customizes client construction.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTokenSource sets the bearer credential source, usually the
// IdentityStore itself.
func WithTokenSource(src TokenSource) ClientOption {
	return func(c *Client) {
		if src != nil {
			c.tokens = src
		}
	}
}

// WithClientLogger overrides the default logger.
func WithClientLogger(logger Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient returns a client rooted at baseURL, e.g. "https://host/api".
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, wrapKind(ErrTransport, err, map[string]any{"base_url": baseURL})
	}

	c := &Client{
		base:   base,
		http:   http.DefaultClient,
		tokens: TokenSourceFunc(func() string { return "" }),
		logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c, nil
}

// Auth returns the auth resource gateway.
func (c *Client) Auth() *AuthGateway {
	return &AuthGateway{client: c}
}

// Sessions returns the session resource gateway.
func (c *Client) Sessions() *SessionGateway {
	return &SessionGateway{client: c}
}

// Teachers returns the teacher resource gateway.
func (c *Client) Teachers() *TeacherGateway {
	return &TeacherGateway{client: c}
}

// Profiles returns the user resource gateway.
func (c *Client) Profiles() *ProfileGateway {
	return &ProfileGateway{client: c}
}

// do issues a single request and decodes the response body into out when out
// is non-nil. Non-2xx statuses come back mapped onto the error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return wrapKind(ErrTransport, err, map[string]any{
				"method": method,
				"path":   path,
			})
		}
		payload = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, payload)
	if err != nil {
		return wrapKind(ErrTransport, err, map[string]any{
			"method": method,
			"path":   path,
		})
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("%s %s rid=%s", method, path, requestID)

	res, err := c.http.Do(req)
	if err != nil {
		return wrapKind(ErrTransport, err, map[string]any{
			"method":     method,
			"path":       path,
			"request_id": requestID,
		})
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return c.statusError(method, path, requestID, res)
	}

	if out == nil {
		// drain so the transport can reuse the connection
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return wrapKind(ErrTransport, err, map[string]any{
			"method":     method,
			"path":       path,
			"request_id": requestID,
		})
	}

	return nil
}

func (c *Client) statusError(method, path, requestID string, res *http.Response) error {
	meta := map[string]any{
		"method":     method,
		"path":       path,
		"status":     res.StatusCode,
		"request_id": requestID,
	}

	c.logger.Debug("%s %s rid=%s status=%d", method, path, requestID, res.StatusCode)

	switch res.StatusCode {
	case http.StatusUnauthorized:
		return wrapKind(ErrUnauthenticated, nil, meta)
	case http.StatusForbidden:
		return wrapKind(ErrForbidden, nil, meta)
	case http.StatusNotFound:
		return wrapKind(ErrNotFound, nil, meta)
	case http.StatusConflict:
		return wrapKind(ErrConflict, nil, meta)
	default:
		return wrapKind(ErrTransport, fmt.Errorf("unexpected status %d", res.StatusCode), meta)
	}
}
