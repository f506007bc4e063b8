// Package transport – structured round-trip logging.
//
// The Logging decorator emits one zerolog event per round trip with
// request/response metadata (method, path, status, latency, sizes) and
// selects the log level by outcome. Credential-bearing headers
// are never logged in clear: Authorization, Cookie, and the CSRF token header
// are masked, and the query string is truncated to a capped length to avoid
// log bloat.
package transport

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// maxQueryLogLength caps the number of bytes of the raw query string logged.
	maxQueryLogLength = 2048
)

// maskedHeaders are fully replaced with "[REDACTED]" in logs (case-insensitive).
var maskedHeaders = map[string]struct{}{
	"authorization":   {},
	"cookie":          {},
	"set-cookie":      {},
	"x-csrf-token":    {},
	"idempotency-key": {},
}

// Logging wraps a Doer with structured zerolog access logs.
type Logging struct {
	next Doer
	log  zerolog.Logger
}

// NewLogging wraps next, emitting events through lg.
func NewLogging(next Doer, lg zerolog.Logger) *Logging {
	return &Logging{next: next, log: lg}
}

// Do implements Doer.
func (l *Logging) Do(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()

	resp, err := l.next.Do(ctx, req)
	latency := time.Since(start)

	ev := l.log.Info()
	switch {
	case err != nil:
		ev = l.log.Error().Err(err)
	case resp.StatusCode >= 500:
		ev = l.log.Error()
	case resp.StatusCode >= 400:
		ev = l.log.Warn()
	}

	ev = ev.
		Str("method", req.Method).
		Str("path", req.Path).
		Str("query", truncate(req.Query.Encode(), maxQueryLogLength)).
		Str("request_id", req.Header.Get(HeaderRequestID)).
		Dur("latency", latency).
		Interface("headers", safeHeaders(req))
	if resp != nil {
		ev = ev.Int("status", resp.StatusCode).Int("bytes", len(resp.Body))
	}
	ev.Msg("wms_request")

	return resp, err
}

// safeHeaders returns the request headers with sensitive values masked.
func safeHeaders(req *Request) map[string]string {
	out := make(map[string]string, len(req.Header))
	for k, vv := range req.Header {
		if _, masked := maskedHeaders[strings.ToLower(k)]; masked {
			out[k] = "[REDACTED]"
			continue
		}
		out[k] = strings.Join(vv, ", ")
	}
	return out
}

// truncate returns s unchanged when within max length, otherwise it truncates
// s to max bytes and appends an ellipsis. A max <= 0 disables truncation.
//
// Note: This operates on bytes (not runes) which is acceptable for logging.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
