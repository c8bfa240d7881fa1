package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zeras-code/shopcart/internal/entity"
)

// OrderItemResponse is one line of an order with its product snapshot.
type OrderItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// OrderResponse represents an order as exposed via transport layers.
type OrderResponse struct {
	ID             int64               `json:"id"`
	Number         string              `json:"number"`
	Status         string              `json:"status"`
	UserID         int64               `json:"user_id"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DeliveryCharge decimal.Decimal     `json:"delivery_charge"`
	TaxPercent     decimal.Decimal     `json:"tax_percent"`
	TaxAmount      decimal.Decimal     `json:"tax_amount"`
	TotalPrice     decimal.Decimal     `json:"total_price"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// NewOrderResponse maps an order entity to its transport shape.
func NewOrderResponse(order *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			TotalPrice:  item.TotalPrice,
		})
	}
	return OrderResponse{
		ID:             order.ID,
		Number:         order.Number,
		Status:         order.Status,
		UserID:         order.UserID,
		Subtotal:       order.Subtotal,
		DeliveryCharge: order.DeliveryCharge,
		TaxPercent:     order.TaxPercent,
		TaxAmount:      order.TaxAmount,
		TotalPrice:     order.TotalPrice,
		Items:          items,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}
