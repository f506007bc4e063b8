package gateway

import (
	"context"
	"fmt"

	"github.com/jinacker/smart-wms-gateway/internal/domain"
)

// RackService operates on storage rack locations.
type RackService struct {
	c *Client
}

// List returns every rack.
func (s *RackService) List(ctx context.Context) ([]domain.Rack, error) {
	var out []domain.Rack
	if err := s.c.get(ctx, "/racks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RackCreate is the payload for registering a rack.
type RackCreate struct {
	Code     string `json:"rackCode"`
	Zone     string `json:"zone,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
}

// Create registers a new rack.
func (s *RackService) Create(ctx context.Context, in RackCreate) (*domain.Rack, error) {
	var out domain.Rack
	if err := s.c.post(ctx, "/racks", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a rack.
func (s *RackService) Delete(ctx context.Context, id int64) error {
	return s.c.del(ctx, fmt.Sprintf("/racks/%d", id))
}
