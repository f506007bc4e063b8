// Package transport – request pipeline.
//
// The Pipeline is the single injection point every outgoing request passes
// through before transmission. It stamps the cache-busting marker and
// correlation headers, then applies the configured security model:
//
//   - Bearer: a token read from persistent client storage is attached to
//     every request via the Authorization header. This layer never refreshes
//     bearer tokens.
//   - Session: a memory-only CSRF token is attached to state-mutating
//     requests. When no token is cached, the pipeline first performs a
//     blocking acquisition round trip; acquisition goes straight to the inner
//     Doer, so it is structurally exempt from CSRF injection and cannot
//     recurse.
//
// Acquisition tries the primary well-known path and then the secondary one,
// in fixed order, and never touches the resource path. Concurrent acquirers
// are single-flighted behind a mutex: whichever goroutine wins fetches the
// token, the rest reuse it.
package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jinacker/smart-wms-gateway/internal/token"
)

// SecurityMode selects which credential the pipeline injects.
type SecurityMode int

const (
	// ModeBearer attaches a persisted token to every request.
	ModeBearer SecurityMode = iota
	// ModeSession attaches a lazily acquired CSRF token to mutating requests.
	ModeSession
)

// Header and query parameter names used by the pipeline.
const (
	HeaderCSRFToken      = "X-CSRF-Token"
	HeaderRequestID      = "X-Request-ID"
	HeaderIdempotencyKey = "Idempotency-Key"
	cacheBustParam       = "_ts"
)

// Token acquisition endpoints, tried in order.
var tokenPaths = [2]string{"/auth/csrf", "/csrf"}

// BearerSource yields the persisted bearer token, or "" when none is stored.
type BearerSource interface {
	Token(ctx context.Context) (string, error)
}

// Pipeline decorates a Doer with cache busting, correlation headers, and
// security token injection. Construct it once per client.
type Pipeline struct {
	next   Doer
	mode   SecurityMode
	bearer BearerSource
	store  *token.Store

	// acquireMu single-flights token acquisition round trips.
	acquireMu sync.Mutex

	// Seams for tests.
	now   func() time.Time
	newID func() string
}

// NewPipeline builds a pipeline over next. store must be non-nil under
// ModeSession; bearer may be nil under ModeBearer (requests then go out
// unauthenticated, matching an empty persistent store).
func NewPipeline(next Doer, mode SecurityMode, bearer BearerSource, store *token.Store) *Pipeline {
	return &Pipeline{
		next:   next,
		mode:   mode,
		bearer: bearer,
		store:  store,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Do implements Doer.
func (p *Pipeline) Do(ctx context.Context, req *Request) (*Response, error) {
	// Cache busting: every request carries the current timestamp so the
	// transport and any intermediary cache treat it as unique.
	if req.Query == nil {
		req.Query = url.Values{}
	}
	req.Query.Set(cacheBustParam, strconv.FormatInt(p.now().UnixMilli(), 10))

	if req.Header == nil {
		req.Header = http.Header{}
	}
	if req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, p.newID())
	}
	if isMutating(req.Method) && req.Header.Get(HeaderIdempotencyKey) == "" {
		req.Header.Set(HeaderIdempotencyKey, p.newID())
	}

	switch p.mode {
	case ModeBearer:
		if p.bearer != nil {
			tok, err := p.bearer.Token(ctx)
			if err != nil {
				return nil, err
			}
			if tok != "" {
				req.Header.Set("Authorization", "Bearer "+tok)
			}
		}
	case ModeSession:
		if isMutating(req.Method) {
			tok, ok := p.store.Get()
			if !ok {
				var err error
				tok, err = p.Acquire(ctx)
				if err != nil {
					return nil, err
				}
			}
			req.Header.Set(HeaderCSRFToken, tok)
		}
	}

	return p.next.Do(ctx, req)
}

// Acquire returns the cached session token, fetching one when the store is
// empty. Concurrent callers serialize; the loser of the race reuses the
// winner's token instead of issuing a second round trip.
func (p *Pipeline) Acquire(ctx context.Context) (string, error) {
	p.acquireMu.Lock()
	defer p.acquireMu.Unlock()
	if tok, ok := p.store.Get(); ok {
		return tok, nil
	}
	return p.acquireLocked(ctx)
}

// Refresh discards the cached token and acquires a fresh one. Used by the
// recovery interceptor; invalidation happens before re-acquisition, under
// the same single-flight lock.
func (p *Pipeline) Refresh(ctx context.Context) (string, error) {
	p.acquireMu.Lock()
	defer p.acquireMu.Unlock()
	p.store.Invalidate()
	return p.acquireLocked(ctx)
}

// acquireLocked issues the token round trips. Caller holds acquireMu.
// Requests go straight to the inner Doer (no CSRF injection) but still carry
// the cache-busting marker and a correlation ID like any other request.
func (p *Pipeline) acquireLocked(ctx context.Context) (string, error) {
	tokenAcquisitions.Inc()
	for _, path := range tokenPaths[:] {
		req := &Request{
			Method: http.MethodGet,
			Path:   path,
			Query:  url.Values{cacheBustParam: []string{strconv.FormatInt(p.now().UnixMilli(), 10)}},
			Header: http.Header{HeaderRequestID: []string{p.newID()}},
		}
		resp, err := p.next.Do(ctx, req)
		if err != nil || resp.StatusCode != http.StatusOK {
			continue
		}
		var payload struct {
			Token     string `json:"token"`
			CSRFToken string `json:"csrfToken"`
		}
		if json.Unmarshal(resp.Body, &payload) != nil {
			continue
		}
		tok := payload.Token
		if tok == "" {
			tok = payload.CSRFToken
		}
		if tok != "" {
			p.store.Set(tok)
			return tok, nil
		}
	}
	return "", ErrTokenUnavailable
}

// Mode reports the configured security model.
func (p *Pipeline) Mode() SecurityMode { return p.mode }
