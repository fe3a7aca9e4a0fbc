// Package catalog holds the product, category, and order collaborators the
// session subsystem fronts. Orders carry an owning user reference consumed
// by the ownership policy; the policy reads it, never mutates it.
package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Category is a flat product grouping.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"category,notnull" json:"category,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Product is a sellable catalog item. UserID records the admin who created
// it; ImageURLs point at uploaded files.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:prd"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title         string     `bun:"title,notnull" json:"title,omitempty"`
	Description   string     `bun:"description,notnull" json:"description,omitempty"`
	Category      string     `bun:"category,notnull" json:"category,omitempty"`
	Price         float64    `bun:"price,notnull" json:"price"`
	Quantity      int        `bun:"quantity,notnull" json:"quantity"`
	UserID        uuid.UUID  `bun:"user_id,nullzero,type:uuid" json:"user_id,omitempty"`
	ImageURLs     []string   `bun:"image_url" json:"image_url,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// OrderStatus is the order's fulfillment state.
type OrderStatus = string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderItem is one line of an order; Total is the line total at the price
// captured when the order was placed.
type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Total     float64   `json:"total"`
}

// Order is a mutable catalog resource owned by the user who placed it. The
// ownership policy reads UserID to decide owner-or-admin access.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:ord"`
	ID            uuid.UUID   `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID   `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	Items         []OrderItem `bun:"products,notnull" json:"products"`
	Total         float64     `bun:"total,notnull" json:"total"`
	Status        OrderStatus `bun:"status,notnull,default:'pending'" json:"status,omitempty"`
	CreatedAt     *time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// EnsureDefaults fills ids and the initial status for new records.
func (o *Order) EnsureDefaults() *Order {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return o
}
