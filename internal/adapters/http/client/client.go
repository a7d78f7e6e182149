// Package client adapts the remote CRUD endpoints of the entity API to typed
// local values.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/paragon/pkg/logger"
	"github.com/okian/paragon/pkg/metrics"
)

// Default transport settings.
const (
	defaultTimeout = 30 * time.Second

	contentTypeJSON       = "application/json"
	contentTypeMergePatch = "application/merge-patch+json"

	headerRequestID  = "X-Request-ID"
	headerTotalCount = "X-Total-Count"
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the shared transport for every entity service. It holds no
// mutable state and is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    Doer
	timeout time.Duration
	headers http.Header
	logger  logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets the underlying transport. It takes precedence over
// WithTimeout.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.http = d
		}
	}
}

// WithTimeout sets the timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHeader adds a header sent with every request, e.g. Authorization.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	c := &Client{
		baseURL: u,
		timeout: defaultTimeout,
		headers: make(http.Header),
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c, nil
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// request describes one call against the API.
type request struct {
	entity      string
	method      string
	path        string
	query       url.Values
	body        any
	contentType string
}

// response is a fully read 2xx reply.
type response struct {
	statusCode int
	header     http.Header
	body       []byte
}

// totalCount returns X-Total-Count, or -1 when missing or malformed.
func (r *response) totalCount() int64 {
	v := r.header.Get(headerTotalCount)
	if v == "" {
		return -1
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return -1
	}
	return n
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimPrefix(path, "/")
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends r and returns the response when the status is 2xx. Non-2xx
// replies become *StatusError; nothing is retried.
func (c *Client) do(ctx context.Context, r request) (*response, error) {
	target := c.resolve(r.path, r.query)

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			metrics.RecordClientError(r.entity, "encode")
			return nil, fmt.Errorf("%w: %w", ErrEncode, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrTransport, err)
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", contentTypeJSON)
	if body != nil {
		ct := r.contentType
		if ct == "" {
			ct = contentTypeJSON
		}
		req.Header.Set("Content-Type", ct)
	}
	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordClientError(r.entity, "transport")
		c.logger.Warn(ctx, "entity request failed",
			logger.String("entity", r.entity),
			logger.String("method", r.method),
			logger.String("url", target),
			logger.String("requestID", requestID),
			logger.Error(err))
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, r.method, target, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	metrics.RecordClientRequest(r.entity, r.method, strconv.Itoa(resp.StatusCode), float64(elapsed.Milliseconds()))
	if err != nil {
		metrics.RecordClientError(r.entity, "transport")
		return nil, fmt.Errorf("%w: read response: %w", ErrTransport, err)
	}

	c.logger.Debug(ctx, "entity request",
		logger.String("entity", r.entity),
		logger.String("method", r.method),
		logger.String("url", target),
		logger.Int("status", resp.StatusCode),
		logger.Duration("elapsed", elapsed),
		logger.String("requestID", requestID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordClientError(r.entity, "status")
		if len(respBody) > maxErrorBody {
			respBody = respBody[:maxErrorBody]
		}
		return nil, &StatusError{
			Method:     r.method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       respBody,
		}
	}

	return &response{statusCode: resp.StatusCode, header: resp.Header, body: respBody}, nil
}

// decode unmarshals a JSON body into out.
func decode(entity string, resp *response, out any) error {
	if len(bytes.TrimSpace(resp.body)) == 0 {
		metrics.RecordClientError(entity, "decode")
		return fmt.Errorf("%w: empty body", ErrDecode)
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		metrics.RecordClientError(entity, "decode")
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
