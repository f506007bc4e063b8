// Package gateway provides the typed Go client for the Smart WMS backend.
//
// A Client owns the resilient transport chain (rate limiting, metrics,
// tracing, logging, security injection, authorization recovery) and exposes
// one service per backend resource plus the dashboard aggregator. All
// operations are context-aware; paths are relative to the configured base
// URL so the same client works behind any /api/* reverse proxy.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/jinacker/smart-wms-gateway/internal/token"
	"github.com/jinacker/smart-wms-gateway/internal/transport"
)

// Client is the top-level Smart WMS API client.
type Client struct {
	doer transport.Doer

	Companies *CompanyService
	Items     *ItemService
	Racks     *RackService
	Orders    *OrderService
	Inventory *InventoryService
	Schedules *ScheduleService
	Users     *UserService
	Dashboard *DashboardService
}

// options collects the configurable pieces of a Client.
type options struct {
	httpClient *http.Client
	mode       transport.SecurityMode
	bearer     transport.BearerSource
	rps        float64
	burst      int
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*options)

// WithHTTPClient sets a custom HTTP client (timeouts included; any timeout
// surfaces as an ordinary transport failure).
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithBearerAuth switches the client to the bearer security model, reading
// the token from src on every request.
func WithBearerAuth(src transport.BearerSource) Option {
	return func(o *options) {
		o.mode = transport.ModeBearer
		o.bearer = src
	}
}

// WithRateLimit throttles outbound requests to rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *options) {
		o.rps = rps
		o.burst = burst
	}
}

// WithLogger routes transport logs through lg instead of the global logger.
func WithLogger(lg zerolog.Logger) Option {
	return func(o *options) { o.logger = lg }
}

// New creates a client for the given base URL (e.g. "http://host:8080/api").
// The session security model is the default; pass WithBearerAuth for the
// bearer model.
func New(baseURL string, opts ...Option) *Client {
	o := options{
		mode:   transport.ModeSession,
		logger: zlog.Logger,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var d transport.Doer = transport.NewHTTP(baseURL, o.httpClient)
	d = transport.NewRateLimit(d, o.rps, o.burst)
	d = transport.NewMetrics(d)
	d = transport.NewTracing(d)
	d = transport.NewLogging(d, o.logger)
	pipeline := transport.NewPipeline(d, o.mode, o.bearer, token.NewStore())

	c := &Client{doer: transport.NewRecovery(pipeline)}
	c.Companies = &CompanyService{c: c}
	c.Items = &ItemService{c: c}
	c.Racks = &RackService{c: c}
	c.Orders = &OrderService{c: c}
	c.Inventory = &InventoryService{c: c}
	c.Schedules = &ScheduleService{c: c}
	c.Users = &UserService{c: c}
	c.Dashboard = &DashboardService{c: c}
	return c
}

// do delivers req and decodes the JSON response into result. Transport
// failures propagate unchanged; non-2xx responses become an *APIError.
func (c *Client) do(ctx context.Context, req *transport.Request, result any) error {
	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		return err
	}
	return decodeInto(resp, result)
}

// decodeInto converts a response into result or an *APIError.
func decodeInto(resp *transport.Response, result any) error {
	if resp.StatusCode >= 400 {
		return newAPIError(resp)
	}
	if result != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// get is a convenience wrapper for GET requests with query parameters.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	return c.do(ctx, &transport.Request{Method: http.MethodGet, Path: path, Query: query}, result)
}

// post is a convenience wrapper for POST requests.
func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	return c.do(ctx, &transport.Request{Method: http.MethodPost, Path: path, Body: body}, result)
}

// put is a convenience wrapper for PUT requests.
func (c *Client) put(ctx context.Context, path string, body any, result any) error {
	return c.do(ctx, &transport.Request{Method: http.MethodPut, Path: path, Body: body}, result)
}

// del is a convenience wrapper for DELETE requests.
func (c *Client) del(ctx context.Context, path string) error {
	return c.do(ctx, &transport.Request{Method: http.MethodDelete, Path: path}, nil)
}
