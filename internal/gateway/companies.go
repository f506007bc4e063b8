package gateway

import (
	"context"
	"fmt"

	"github.com/jinacker/smart-wms-gateway/internal/domain"
)

// CompanyService operates on supplier and customer companies.
type CompanyService struct {
	c *Client
}

// List returns every registered company.
func (s *CompanyService) List(ctx context.Context) ([]domain.Company, error) {
	var out []domain.Company
	if err := s.c.get(ctx, "/companies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single company by ID.
func (s *CompanyService) Get(ctx context.Context, id int64) (*domain.Company, error) {
	var out domain.Company
	if err := s.c.get(ctx, fmt.Sprintf("/companies/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompanyCreate is the payload for registering a company.
type CompanyCreate struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Contact string `json:"contact,omitempty"`
	Address string `json:"address,omitempty"`
}

// Create registers a new company.
func (s *CompanyService) Create(ctx context.Context, in CompanyCreate) (*domain.Company, error) {
	var out domain.Company
	if err := s.c.post(ctx, "/companies", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a company.
func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	return s.c.del(ctx, fmt.Sprintf("/companies/%d", id))
}
