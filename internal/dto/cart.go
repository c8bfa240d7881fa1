package dto

import (
	"github.com/shopspring/decimal"

	"github.com/zeras-code/shopcart/internal/entity"
)

// CartItemResponse represents a cart line as exposed via transport layers.
type CartItemResponse struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductImageURL string          `json:"product_image_url"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int             `json:"quantity"`
	TotalPrice      decimal.Decimal `json:"total_price"`
}

// CartResponse is a user's cart with its combined total.
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// NewCartItemResponse maps a cart item entity to its transport shape.
func NewCartItemResponse(item *entity.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:              item.ID,
		ProductID:       item.ProductID,
		ProductName:     item.ProductName,
		ProductImageURL: item.ProductImageURL,
		UnitPrice:       item.UnitPrice,
		Quantity:        item.Quantity,
		TotalPrice:      item.TotalPrice,
	}
}

// NewCartResponse maps a cart with its total.
func NewCartResponse(items []entity.CartItem, total decimal.Decimal) CartResponse {
	out := make([]CartItemResponse, 0, len(items))
	for i := range items {
		out = append(out, NewCartItemResponse(&items[i]))
	}
	return CartResponse{Items: out, Total: total}
}
