package gateway

import (
	"context"
	"fmt"

	"github.com/jinacker/smart-wms-gateway/internal/domain"
)

// UserService reads operator accounts. Account lifecycle is managed elsewhere;
// the gateway only lists and resolves users for display.
type UserService struct {
	c *Client
}

// List returns every operator account.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := s.c.get(ctx, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single account by ID.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	var out domain.User
	if err := s.c.get(ctx, fmt.Sprintf("/users/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
