package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/jinacker/smart-wms-gateway/internal/domain"
)

// ScheduleService operates on planned warehouse activities.
type ScheduleService struct {
	c *Client
}

// List returns every schedule entry.
func (s *ScheduleService) List(ctx context.Context) ([]domain.Schedule, error) {
	var out []domain.Schedule
	if err := s.c.get(ctx, "/schedules", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ScheduleCreate is the payload for planning an activity.
type ScheduleCreate struct {
	Title       string    `json:"title"`
	Type        string    `json:"type,omitempty"`
	ScheduledAt time.Time `json:"scheduledAt"`
	OrderID     *int64    `json:"orderId,omitempty"`
}

// Create plans a new activity.
func (s *ScheduleService) Create(ctx context.Context, in ScheduleCreate) (*domain.Schedule, error) {
	var out domain.Schedule
	if err := s.c.post(ctx, "/schedules", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a schedule entry.
func (s *ScheduleService) Delete(ctx context.Context, id int64) error {
	return s.c.del(ctx, fmt.Sprintf("/schedules/%d", id))
}
