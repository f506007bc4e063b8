// Package domain – composite order line references.
//
// UI code addresses a single line item within an order through a composite
// string of the form "<orderId>-<lineIndex>" (e.g. "482-3"). Every operation
// that accepts such a reference (cancel, status update, line update) must
// resolve it synchronously, before any network traffic, so that a malformed
// reference is reported as a validation failure rather than a connectivity
// one.
package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidLineRef is returned when a composite order line reference cannot
// be parsed. It is distinct from every network-level error so callers can
// branch on validation vs. connectivity.
var ErrInvalidLineRef = errors.New("invalid order line reference")

// LineRef is a resolved composite reference: the numeric order ID and the
// zero-based line index within that order.
type LineRef struct {
	OrderID int64
	Line    int
}

// ParseLineRef splits ref on the first "-" and parses both segments. The
// leading segment must be a positive integer that fits in an int64; values
// that merely look numeric but overflow, carry signs, or contain non-digit
// characters are rejected. The check is synchronous and never skipped.
func ParseLineRef(ref string) (LineRef, error) {
	head, tail, found := strings.Cut(ref, "-")
	if !found || head == "" || tail == "" {
		return LineRef{}, fmt.Errorf("%w: %q", ErrInvalidLineRef, ref)
	}
	orderID, err := strconv.ParseInt(head, 10, 64)
	if err != nil || orderID <= 0 || !digitsOnly(head) {
		return LineRef{}, fmt.Errorf("%w: %q", ErrInvalidLineRef, ref)
	}
	line, err := strconv.Atoi(tail)
	if err != nil || line < 0 || !digitsOnly(tail) {
		return LineRef{}, fmt.Errorf("%w: %q", ErrInvalidLineRef, ref)
	}
	return LineRef{OrderID: orderID, Line: line}, nil
}

// digitsOnly rejects segments that strconv would accept but the backend's ID
// grammar does not (a leading "+", for instance).
func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
