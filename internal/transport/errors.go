// Package transport – transport-level error values.
//
// The layer distinguishes failure kinds by value so interceptors and callers
// branch with errors.Is instead of string matching. HTTP rejections
// (authorization, method-not-allowed, and the rest) are not errors here; they
// travel as Response status codes.
package transport

import "errors"

// ErrTokenUnavailable is returned when neither token endpoint yields a usable
// security token. Distinct from an authorization rejection: the latter is a
// backend response, this one means no token could be obtained at all.
var ErrTokenUnavailable = errors.New("security token unavailable")
