package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Order statuses. New orders always start as pending; later transitions are
// driven by the status update endpoint.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus reports whether s is a known order lifecycle status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents a purchase order stored in the relational database.
// Monetary fields are snapshots taken at creation time; they are never
// re-derived from the live product catalog.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID             int64           `bun:",pk,autoincrement"`
	UserID         int64           `bun:"user_id"`
	Number         string          `bun:"number"`
	Status         string          `bun:"status"`
	Subtotal       decimal.Decimal `bun:"subtotal"`
	DeliveryCharge decimal.Decimal `bun:"delivery_charge"`
	TaxPercent     decimal.Decimal `bun:"tax_percent"`
	TaxAmount      decimal.Decimal `bun:"tax_amount"`
	TotalPrice     decimal.Decimal `bun:"total_price"`
	CreatedAt      time.Time       `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time       `bun:"updated_at,nullzero"`
	Active         bool            `bun:"active_flag"`
	Inactive       bool            `bun:"is_inactive"`

	Items []OrderItem `bun:"rel:has-many,join:id=order_id"`
	User  *User       `bun:"rel:belongs-to,join:user_id=id"`
}

// OrderItem is a single product line within an order. Name and unit price are
// captured from the product at order time so the order stays immutable history.
type OrderItem struct {
	bun.BaseModel `bun:"table:order_items"`

	ID          int64           `bun:",pk,autoincrement"`
	OrderID     int64           `bun:"order_id"`
	ProductID   int64           `bun:"product_id"`
	ProductName string          `bun:"product_name"`
	Quantity    int             `bun:"quantity"`
	UnitPrice   decimal.Decimal `bun:"unit_price"`
	TotalPrice  decimal.Decimal `bun:"total_price"`
	CreatedAt   time.Time       `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}
