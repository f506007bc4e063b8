package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jinacker/smart-wms-gateway/internal/domain"
	"github.com/jinacker/smart-wms-gateway/internal/transport"
)

// OrderService operates on inbound and outbound orders. Mutating operations
// address an order through the UI's composite "<orderId>-<lineIndex>" ref; the
// numeric segment is validated before any network traffic happens.
type OrderService struct {
	c *Client
}

// List returns orders, optionally filtered by type ("INBOUND" or "OUTBOUND").
func (s *OrderService) List(ctx context.Context, orderType string) ([]domain.Order, error) {
	var q url.Values
	if orderType != "" {
		q = url.Values{"type": []string{orderType}}
	}
	var out []domain.Order
	if err := s.c.get(ctx, "/orders", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one order with its line items.
func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var out domain.Order
	if err := s.c.get(ctx, fmt.Sprintf("/orders/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrderCreate is the payload for registering an order.
type OrderCreate struct {
	Type       string             `json:"type"`
	CompanyID  int64              `json:"companyId"`
	ExpectedAt *time.Time         `json:"expectedAt,omitempty"`
	Items      []domain.OrderLine `json:"items"`
}

// Create registers a new order.
func (s *OrderService) Create(ctx context.Context, in OrderCreate) (*domain.Order, error) {
	var out domain.Order
	if err := s.c.post(ctx, "/orders", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel cancels the order addressed by the composite ref. The line index in
// the ref is only used for addressing; cancellation applies to the whole
// order.
func (s *OrderService) Cancel(ctx context.Context, ref string) error {
	lr, err := domain.ParseLineRef(ref)
	if err != nil {
		return err
	}
	return s.c.post(ctx, fmt.Sprintf("/orders/%d/cancel", lr.OrderID), nil, nil)
}

// statusUpdate is the body sent by every status-update candidate.
type statusUpdate struct {
	Status string `json:"status"`
}

// statusCandidates returns the ordered (verb, path) shapes probed when
// updating an order's status. Backend builds disagree on which one they
// expose, so the client walks the list until one answers with something other
// than method-not-allowed.
func statusCandidates(orderID int64) []struct{ method, path string } {
	return []struct{ method, path string }{
		{http.MethodPut, fmt.Sprintf("/orders/%d/status", orderID)},
		{http.MethodPatch, fmt.Sprintf("/orders/%d", orderID)},
		{http.MethodPut, fmt.Sprintf("/orders/%d", orderID)},
	}
}

// UpdateStatus sets the status of the order addressed by the composite ref,
// probing the candidate endpoint shapes in order. Any outcome other than
// method-not-allowed — success, a different rejection, a transport failure —
// stops the probe immediately.
func (s *OrderService) UpdateStatus(ctx context.Context, ref, status string) (*domain.Order, error) {
	lr, err := domain.ParseLineRef(ref)
	if err != nil {
		return nil, err
	}

	var last *transport.Response
	for _, cand := range statusCandidates(lr.OrderID) {
		resp, err := s.c.doer.Do(ctx, &transport.Request{
			Method: cand.method,
			Path:   cand.path,
			Body:   statusUpdate{Status: status},
		})
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusMethodNotAllowed {
			log.Debug().
				Str("method", cand.method).
				Str("path", cand.path).
				Msg("status endpoint shape rejected, probing next")
			last = resp
			continue
		}
		if resp.StatusCode >= 400 {
			return nil, newAPIError(resp)
		}
		var out domain.Order
		if len(resp.Body) > 0 {
			if err := json.Unmarshal(resp.Body, &out); err != nil {
				return nil, fmt.Errorf("decode response: %w", err)
			}
		}
		return &out, nil
	}

	// Every candidate shape answered method-not-allowed.
	return nil, newAPIError(last)
}

// LineUpdate is the payload for changing one line item.
type LineUpdate struct {
	Quantity int    `json:"quantity"`
	RackCode string `json:"rackCode,omitempty"`
}

// UpdateLine changes the line item addressed by the composite ref.
func (s *OrderService) UpdateLine(ctx context.Context, ref string, in LineUpdate) (*domain.Order, error) {
	lr, err := domain.ParseLineRef(ref)
	if err != nil {
		return nil, err
	}
	var out domain.Order
	if err := s.c.put(ctx, fmt.Sprintf("/orders/%d/items/%d", lr.OrderID, lr.Line), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
