// Package domain defines the wire-level shapes exchanged with the Smart WMS
// backend, together with the small amount of client-side derivation performed
// on them (stock status labels, dashboard summaries). The gateway treats the
// backend as authoritative for every resource lifecycle; these types exist to
// decode payloads and to present them in a display-ready form.
package domain

import "time"

// Company represents a trading partner (customer or supplier) registered in
// the WMS. Companies own catalog items and are referenced by orders.
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"` // "CUSTOMER" or "SUPPLIER"
	Contact   string    `json:"contact,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Item is a catalog entry: something the warehouse can receive, store, and
// ship. UnitPrice is expressed in the minor currency unit.
type Item struct {
	ID        int64  `json:"id"`
	Code      string `json:"itemCode"`
	Name      string `json:"name"`
	Spec      string `json:"spec,omitempty"`
	Unit      string `json:"unit,omitempty"`
	UnitPrice int64  `json:"unitPrice"`
	CompanyID int64  `json:"companyId,omitempty"`
}

// Rack is a physical storage location inside the warehouse.
type Rack struct {
	ID       int64  `json:"id"`
	Code     string `json:"rackCode"`
	Zone     string `json:"zone,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
}

// Order is an inbound (receiving) or outbound (shipping) order. Its lines
// address individual items; a line is referenced externally through a
// composite "<orderId>-<lineIndex>" string (see ParseLineRef).
type Order struct {
	ID          int64       `json:"id"`
	Type        string      `json:"type"` // "INBOUND" or "OUTBOUND"
	Status      string      `json:"status"`
	CompanyID   int64       `json:"companyId,omitempty"`
	CompanyName string      `json:"companyName,omitempty"`
	ExpectedAt  *time.Time  `json:"expectedAt,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	Items       []OrderLine `json:"items,omitempty"`
}

// Order status values observed from the backend. The gateway never infers
// transitions; it only relays them.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusApproved  = "APPROVED"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// OrderLine is a single item position within an order.
type OrderLine struct {
	Index    int    `json:"index"`
	ItemID   int64  `json:"itemId"`
	ItemName string `json:"itemName,omitempty"`
	Quantity int    `json:"quantity"`
	RackCode string `json:"rackCode,omitempty"`
}

// InventoryBalance is the current stock level of one item, optionally scoped
// to a rack. Status is not sent by the backend; the gateway derives it from
// Quantity via StockLabel so UI code can render a qualitative badge.
type InventoryBalance struct {
	ItemID   int64  `json:"itemId"`
	ItemCode string `json:"itemCode,omitempty"`
	ItemName string `json:"itemName,omitempty"`
	RackCode string `json:"rackCode,omitempty"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status,omitempty"`
}

// Qualitative stock labels derived from a balance quantity.
const (
	StockOut = "OUT_OF_STOCK"
	StockLow = "LOW"
	StockOK  = "OK"
)

// lowStockThreshold is the quantity below which a balance is labeled LOW.
const lowStockThreshold = 10

// StockLabel maps a balance quantity to its qualitative status label.
func StockLabel(quantity int) string {
	switch {
	case quantity <= 0:
		return StockOut
	case quantity < lowStockThreshold:
		return StockLow
	default:
		return StockOK
	}
}

// Schedule is a planned warehouse activity (e.g. an expected receiving slot),
// optionally linked to an order.
type Schedule struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type,omitempty"`
	ScheduledAt time.Time `json:"scheduledAt"`
	OrderID     *int64    `json:"orderId,omitempty"`
}

// User is a WMS operator account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
	Email    string `json:"email,omitempty"`
}

// DashboardSnapshot is the aggregate read-only view shown on the dashboard.
// It has no persistent identity: it is reconstructed on every fetch, either
// from the consolidated endpoint or assembled from five per-resource reads.
// Both paths must produce the same shape, field for field, so callers cannot
// observe which one was taken. TotalLoadTime is the measured wall-clock
// duration of producing the snapshot, in milliseconds.
type DashboardSnapshot struct {
	Items         []Item             `json:"items"`
	Users         []User             `json:"users"`
	Orders        []Order            `json:"orders"`
	Inventory     []InventoryBalance `json:"inventory"`
	Schedules     []Schedule         `json:"schedules"`
	Summary       DashboardSummary   `json:"summary"`
	TotalLoadTime int64              `json:"totalLoadTime"`
}

// DashboardSummary carries the headline counts rendered above the dashboard
// collections.
type DashboardSummary struct {
	TotalItems    int `json:"totalItems"`
	TotalUsers    int `json:"totalUsers"`
	TotalOrders   int `json:"totalOrders"`
	PendingOrders int `json:"pendingOrders"`
	LowStockCount int `json:"lowStockCount"`
}

// BuildSummary computes the dashboard summary from its source collections.
// The fallback aggregation path uses it to produce a summary identical to the
// one the consolidated endpoint would have returned for the same data.
func BuildSummary(items []Item, users []User, orders []Order, inventory []InventoryBalance) DashboardSummary {
	s := DashboardSummary{
		TotalItems:  len(items),
		TotalUsers:  len(users),
		TotalOrders: len(orders),
	}
	for _, o := range orders {
		if o.Status == OrderStatusPending {
			s.PendingOrders++
		}
	}
	for _, b := range inventory {
		if b.Quantity < lowStockThreshold {
			s.LowStockCount++
		}
	}
	return s
}
