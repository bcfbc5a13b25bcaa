package box

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

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"
)

// APIVersion2025 is the box-version header value required by the Hubs,
// Doc Gen and AI agent endpoints.
const APIVersion2025 = "2025.0"

// Client issues authenticated requests against the Box API. It is safe
// for concurrent use and holds no per-call state.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     hclog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request tracing and retries.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the base HTTP client. Authentication is layered
// on top of its transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Box client. The token source supplies access tokens; see
// the auth helpers in this package for the supported grant types.
func New(cfg *Config, ts oauth2.TokenSource, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid box client config: %w", err)
	}
	if ts == nil {
		return nil, ErrNoTokenSource
	}

	c := &Client{
		config: cfg,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.httpClient
	if base == nil {
		base = cfg.NewHTTPClient()
	}
	c.httpClient = &http.Client{
		Timeout: base.Timeout,
		Jar:     base.Jar,
		Transport: &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(nil, ts),
			Base:   base.Transport,
		},
	}

	return c, nil
}

// Config returns the client configuration.
func (c *Client) Config() *Config {
	return c.config
}

// Logger returns the client logger.
func (c *Client) Logger() hclog.Logger {
	return c.logger
}

// Request describes a single Box API call.
type Request struct {
	Method string

	// Path is relative to the API base URL, or the upload base URL when
	// Upload is set. URL, when non-empty, is used verbatim instead.
	Path   string
	URL    string
	Upload bool

	Query  url.Values
	Header http.Header

	// Body is encoded as JSON, sent as ContentType when set. RawBody with
	// ContentType is sent as is.
	Body        any
	RawBody     []byte
	ContentType string

	// NoRedirect returns 3xx responses to the caller instead of following
	// them.
	NoRedirect bool
}

// Response is a completed Box API call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Get is shorthand for a GET request decoding JSON into result.
func (c *Client) Get(ctx context.Context, path string, query url.Values, result any) error {
	_, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query}, result)
	return err
}

// Post is shorthand for a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body, result any) error {
	_, err := c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Query: query, Body: body}, result)
	return err
}

// Put is shorthand for a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, query url.Values, body, result any) error {
	_, err := c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Query: query, Body: body}, result)
	return err
}

// Delete is shorthand for a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, query url.Values) error {
	_, err := c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Query: query}, nil)
	return err
}

// Do executes the request, retrying on transport errors, 429 and 5xx
// responses. Non-2xx responses are returned as *APIError. When result is
// non-nil and the response has a body it is decoded as JSON, and types
// embedding Raw keep the body.
func (c *Client) Do(ctx context.Context, req *Request, result any) (*Response, error) {
	endpoint, err := c.endpoint(req)
	if err != nil {
		return nil, err
	}

	payload := req.RawBody
	contentType := req.ContentType
	if req.Body != nil {
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		if contentType == "" {
			contentType = "application/json"
		}
	}

	logger := c.logger.With("method", req.Method, "path", logPath(req))

	policy := &retryAfterBackOff{
		BackOff: backoff.WithMaxRetries(c.newBackOff(), uint64(c.config.MaxRetries)),
	}

	var resp *Response
	operation := func() error {
		r, err := c.send(ctx, req, endpoint, payload, contentType)
		if err != nil {
			var tokenErr *oauth2.RetrieveError
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			if errors.As(err, &tokenErr) {
				return backoff.Permanent(err)
			}
			return err
		}

		if r.StatusCode >= 200 && r.StatusCode < 400 {
			resp = r
			return nil
		}

		apiErr := newAPIError(req.Method, logPath(req), r.StatusCode, r.Body)
		if apiErr.Retryable() {
			policy.next = retryAfter(r.Header)
			return apiErr
		}
		return backoff.Permanent(apiErr)
	}

	notify := func(err error, next time.Duration) {
		logger.Warn("retrying request", "error", err, "backoff", next)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(policy, ctx), notify); err != nil {
		logger.Debug("request failed", "error", err)
		return nil, err
	}

	logger.Trace("request complete", "status", resp.StatusCode)

	if result != nil && len(resp.Body) > 0 && resp.StatusCode != http.StatusNoContent {
		if err := json.Unmarshal(resp.Body, result); err != nil {
			return resp, fmt.Errorf("failed to decode response: %w", err)
		}
		if r, ok := result.(rawSetter); ok {
			r.setRaw(resp.Body)
		}
	}

	return resp, nil
}

// Download fetches an absolute URL with the client's credentials and
// returns the raw body. It is used for file content and representation
// assets.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, http.Header, error) {
	resp, err := c.Do(ctx, &Request{
		Method: http.MethodGet,
		URL:    rawURL,
		Header: http.Header{"Accept": {"*/*"}},
	}, nil)
	if err != nil {
		return nil, nil, err
	}
	return resp.Body, resp.Header, nil
}

func (c *Client) send(
	ctx context.Context, req *Request, endpoint string, payload []byte, contentType string,
) (*Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("User-Agent", c.config.UserAgent)

	hc := c.httpClient
	if req.NoRedirect {
		noRedirect := *c.httpClient
		noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
		hc = &noRedirect
	}

	httpResp, err := hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       respBody,
	}, nil
}

func (c *Client) endpoint(req *Request) (string, error) {
	raw := req.URL
	if raw == "" {
		base := c.config.BaseURL
		if req.Upload {
			base = c.config.UploadURL
		}
		raw = strings.TrimRight(base, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid request url %q: %w", raw, err)
	}
	if len(req.Query) > 0 {
		q := u.Query()
		for k, vs := range req.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func (c *Client) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.config.RetryDelay
	b.MaxElapsedTime = 0
	return b
}

func logPath(req *Request) string {
	if req.URL != "" {
		if u, err := url.Parse(req.URL); err == nil {
			return u.Path
		}
		return req.URL
	}
	return req.Path
}

// retryAfterBackOff substitutes a server-requested delay for the next
// computed interval.
type retryAfterBackOff struct {
	backoff.BackOff
	next time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	d := b.BackOff.NextBackOff()
	if d != backoff.Stop && b.next > 0 {
		d = b.next
		b.next = 0
	}
	return d
}

func retryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
