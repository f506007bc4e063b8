// Package transport implements the resilient request layer that sits between
// the typed resource accessors and the network.
//
// Requests flow through a chain of Doer decorators:
//
//	Recovery → Pipeline → Logging → Tracing → Metrics → RateLimit → HTTP
//
// The Pipeline injects the cache-busting marker, correlation IDs, and the
// active security token; the Recovery interceptor retries a mutating request
// exactly once after an authorization rejection. Every decorator treats the
// HTTP status code as data: only transport-level failures (network
// unreachable, timeout, context cancellation) surface as errors, so callers
// and interceptors branch on the response's failure kind instead of catching
// and re-raising.
package transport

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
)

// Request is an HTTP-shaped call against a backend-relative path. Paths are
// always relative (no absolute URLs) so a reverse proxy outside this layer
// can redirect /api/* per environment.
type Request struct {
	Method string
	Path   string // must begin with "/"
	Query  url.Values
	Header http.Header
	Body   any // JSON-marshaled when non-nil
}

// Response is the outcome of a delivered request. A non-2xx status is not an
// error at this layer; interceptors and accessors decide what to do with it.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Doer delivers a request and returns its response, or an error for
// transport-level failures only.
type Doer interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// DoerFunc adapts a function to the Doer interface.
type DoerFunc func(ctx context.Context, req *Request) (*Response, error)

// Do implements Doer.
func (f DoerFunc) Do(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// readOnlyMethods are the verbs that never mutate backend state. Everything
// else is treated as state-mutating for CSRF injection and recovery purposes.
var readOnlyMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodOptions: {},
}

// isMutating reports whether method is outside the read-only set.
func isMutating(method string) bool {
	_, readOnly := readOnlyMethods[strings.ToUpper(method)]
	return !readOnly
}

// HTTP is the base Doer: it resolves relative paths against a base URL and
// executes requests with a standard *http.Client. Timeouts are the client's
// responsibility and surface as ordinary transport failures.
type HTTP struct {
	baseURL string
	client  *http.Client
}

// NewHTTP returns the base transport for baseURL. A nil client gets a default
// with a 30 second timeout.
func NewHTTP(baseURL string, client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Do implements Doer.
func (t *HTTP) Do(ctx context.Context, req *Request) (*Response, error) {
	var bodyReader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	u := t.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, vv := range req.Header {
		for _, v := range vv {
			httpReq.Header.Add(k, v)
		}
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       respBody,
	}, nil
}
