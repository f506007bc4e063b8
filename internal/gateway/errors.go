package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jinacker/smart-wms-gateway/internal/transport"
)

// errorEnvelope is the standard error body returned by the backend:
//
//	{ "request_id": "...", "code": "not_found", "message": "resource not found" }
//
// Older deployments return a bare {"message": "..."} without a code.
type errorEnvelope struct {
	RequestID string `json:"request_id"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// APIError is a non-2xx answer from the backend. The transport layer treats
// HTTP rejections as data; this is where they finally become an error, once
// every recovery strategy (token refresh, verb fallback) has run its course.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("wms: %s (%s, status %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("wms: %s (status %d)", e.Message, e.StatusCode)
}

// newAPIError builds an APIError from a rejected response, falling back to
// the status text when the body carries no usable envelope.
func newAPIError(resp *transport.Response) *APIError {
	ae := &APIError{StatusCode: resp.StatusCode}

	var env errorEnvelope
	if len(resp.Body) > 0 && json.Unmarshal(resp.Body, &env) == nil {
		ae.Code = env.Code
		ae.Message = env.Message
		ae.RequestID = env.RequestID
	}
	if ae.Message == "" {
		ae.Message = http.StatusText(resp.StatusCode)
	}
	if ae.RequestID == "" {
		ae.RequestID = resp.Header.Get(transport.HeaderRequestID)
	}
	return ae
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusNotFound
}

// IsMethodNotAllowed reports whether err is a 405, i.e. the endpoint shape
// the client tried is not the one this backend build exposes.
func IsMethodNotAllowed(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusMethodNotAllowed
}
