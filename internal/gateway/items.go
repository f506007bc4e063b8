package gateway

import (
	"context"
	"fmt"

	"github.com/jinacker/smart-wms-gateway/internal/domain"
)

// ItemService operates on the warehouse item catalog.
type ItemService struct {
	c *Client
}

// List returns the full item catalog.
func (s *ItemService) List(ctx context.Context) ([]domain.Item, error) {
	var out []domain.Item
	if err := s.c.get(ctx, "/items", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single catalog item by ID.
func (s *ItemService) Get(ctx context.Context, id int64) (*domain.Item, error) {
	var out domain.Item
	if err := s.c.get(ctx, fmt.Sprintf("/items/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ItemCreate is the payload for adding a catalog item.
type ItemCreate struct {
	Code      string `json:"itemCode"`
	Name      string `json:"name"`
	Spec      string `json:"spec,omitempty"`
	Unit      string `json:"unit,omitempty"`
	UnitPrice int64  `json:"unitPrice"`
	CompanyID int64  `json:"companyId,omitempty"`
}

// Create adds an item to the catalog.
func (s *ItemService) Create(ctx context.Context, in ItemCreate) (*domain.Item, error) {
	var out domain.Item
	if err := s.c.post(ctx, "/items", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an item from the catalog.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	return s.c.del(ctx, fmt.Sprintf("/items/%d", id))
}

// Balances returns the stock balances of one item across racks, with the
// qualitative status label filled in.
func (s *ItemService) Balances(ctx context.Context, id int64) ([]domain.InventoryBalance, error) {
	var out []domain.InventoryBalance
	if err := s.c.get(ctx, fmt.Sprintf("/items/%d/inventory", id), nil, &out); err != nil {
		return nil, err
	}
	return labelBalances(out), nil
}
