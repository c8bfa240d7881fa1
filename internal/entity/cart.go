package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// CartItem is a product a user has placed in their cart. Product name, image
// and unit price are denormalized so the cart renders without extra lookups;
// they are refreshed whenever the quantity changes.
type CartItem struct {
	bun.BaseModel `bun:"table:cart_items"`

	ID              int64           `bun:",pk,autoincrement"`
	UserID          int64           `bun:"user_id"`
	ProductID       int64           `bun:"product_id"`
	ProductName     string          `bun:"product_name"`
	ProductImageURL string          `bun:"product_image_url"`
	UnitPrice       decimal.Decimal `bun:"unit_price"`
	Quantity        int             `bun:"quantity"`
	TotalPrice      decimal.Decimal `bun:"total_price"`
	CreatedAt       time.Time       `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time       `bun:"updated_at,nullzero"`
	Active          bool            `bun:"active_flag"`
	Inactive        bool            `bun:"is_inactive"`
}
