package gateway

import (
	"context"
	"net/url"

	"github.com/jinacker/smart-wms-gateway/internal/domain"
)

// InventoryService reads current stock levels.
type InventoryService struct {
	c *Client
}

// List returns every stock balance, each carrying its derived status label.
// Pass a non-empty zone to restrict the listing to racks in that zone.
func (s *InventoryService) List(ctx context.Context, zone string) ([]domain.InventoryBalance, error) {
	var q url.Values
	if zone != "" {
		q = url.Values{"zone": []string{zone}}
	}
	var out []domain.InventoryBalance
	if err := s.c.get(ctx, "/inventory", q, &out); err != nil {
		return nil, err
	}
	return labelBalances(out), nil
}

// labelBalances fills in the qualitative status for each balance. The backend
// sends raw quantities only; the label is a client-side presentation concern.
func labelBalances(balances []domain.InventoryBalance) []domain.InventoryBalance {
	for i := range balances {
		balances[i].Status = domain.StockLabel(balances[i].Quantity)
	}
	return balances
}
