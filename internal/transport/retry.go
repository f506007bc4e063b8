// Package transport – recovery interceptor.
//
// A mutating request whose session token has expired comes back with an
// authorization rejection. Recovery handles exactly that case: discard the
// cached token, acquire a fresh one, and re-issue the original request once.
// Everything else — transport failures, rejections of read-only requests,
// rejections under the bearer model, and a second rejection of the retried
// request — propagates to the caller unchanged.
package transport

import (
	"context"
	"net/http"
)

// authRejectedStatus is the status code treated as an authorization
// rejection. Server-side CSRF validation failures answer 403; a 401 under
// the bearer model is propagated untouched because this layer never
// refreshes bearer tokens.
const authRejectedStatus = http.StatusForbidden

// Recovery wraps the pipeline with at-most-one-retry semantics. Each logical
// request moves through two states, first-attempt and retried; the linear
// control flow below encodes them: the second pipeline call is the retried
// state, and its outcome is final.
type Recovery struct {
	pipeline *Pipeline
}

// NewRecovery wraps p.
func NewRecovery(p *Pipeline) *Recovery {
	return &Recovery{pipeline: p}
}

// Do implements Doer.
func (r *Recovery) Do(ctx context.Context, req *Request) (*Response, error) {
	resp, err := r.pipeline.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != authRejectedStatus ||
		!isMutating(req.Method) ||
		r.pipeline.Mode() != ModeSession {
		return resp, nil
	}

	// First-attempt rejection: invalidate, re-acquire, retry once. A failed
	// acquisition surfaces as ErrTokenUnavailable; a second rejection comes
	// back to the caller as-is.
	retries.Inc()
	if _, err := r.pipeline.Refresh(ctx); err != nil {
		return nil, err
	}
	return r.pipeline.Do(ctx, req)
}
