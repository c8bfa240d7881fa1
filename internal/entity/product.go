package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Product represents a catalog item available for purchase. Price is a
// fixed-point decimal to keep monetary math exact.
type Product struct {
	bun.BaseModel `bun:"table:products"`

	ID          int64           `bun:",pk,autoincrement"`
	Name        string          `bun:"name"`
	Description string          `bun:"description"`
	Price       decimal.Decimal `bun:"price"`
	ImageURL    string          `bun:"image_url"`
	CreatedAt   time.Time       `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time       `bun:"updated_at,nullzero"`
	Active      bool            `bun:"active_flag"`
	Inactive    bool            `bun:"is_inactive"`
}
