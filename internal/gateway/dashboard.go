package gateway

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jinacker/smart-wms-gateway/internal/domain"
)

// DashboardService produces the aggregate dashboard view.
type DashboardService struct {
	c *Client
}

// Snapshot fetches the dashboard. It first tries the consolidated endpoint;
// if that fails for any reason it assembles an identical snapshot from five
// parallel per-resource reads. TotalLoadTime covers the whole production of
// the snapshot, consolidated attempt included.
func (s *DashboardService) Snapshot(ctx context.Context) (*domain.DashboardSnapshot, error) {
	start := time.Now()

	snap, err := s.consolidated(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("consolidated dashboard unavailable, assembling from resource reads")
		snap, err = s.assemble(ctx)
		if err != nil {
			return nil, err
		}
	}

	snap.TotalLoadTime = time.Since(start).Milliseconds()
	return snap, nil
}

// consolidated reads the single dashboard endpoint. Inventory labels are a
// client-side derivation, so they are applied here too; both paths must yield
// the same shape.
func (s *DashboardService) consolidated(ctx context.Context) (*domain.DashboardSnapshot, error) {
	var snap domain.DashboardSnapshot
	if err := s.c.get(ctx, "/dashboard", nil, &snap); err != nil {
		return nil, err
	}
	snap.Inventory = labelBalances(snap.Inventory)
	return &snap, nil
}

// assemble performs the five resource reads in parallel. Any single failure
// fails the whole aggregate; no partial snapshot surfaces.
func (s *DashboardService) assemble(ctx context.Context) (*domain.DashboardSnapshot, error) {
	var (
		items     []domain.Item
		users     []domain.User
		orders    []domain.Order
		inventory []domain.InventoryBalance
		schedules []domain.Schedule
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		items, err = s.c.Items.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.c.Users.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.c.Orders.List(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		inventory, err = s.c.Inventory.List(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		schedules, err = s.c.Schedules.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.DashboardSnapshot{
		Items:     items,
		Users:     users,
		Orders:    orders,
		Inventory: inventory,
		Schedules: schedules,
		Summary:   domain.BuildSummary(items, users, orders, inventory),
	}, nil
}
