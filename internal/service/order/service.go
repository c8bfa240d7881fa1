package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/zeras-code/shopcart/internal/cache"
	"github.com/zeras-code/shopcart/internal/config"
	"github.com/zeras-code/shopcart/internal/entity"
	"github.com/zeras-code/shopcart/internal/messaging"
	orderrepo "github.com/zeras-code/shopcart/internal/repository/order"
	productrepo "github.com/zeras-code/shopcart/internal/repository/product"
	userrepo "github.com/zeras-code/shopcart/internal/repository/user"
	"github.com/zeras-code/shopcart/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/zeras-code/shopcart/service/order")

// CheckoutItem is one requested product/quantity pair.
type CheckoutItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CheckoutRequest is the input for placing an order.
type CheckoutRequest struct {
	UserID int64
	Items  []CheckoutItem
}

// SearchRequest filters the order listing.
type SearchRequest struct {
	Query  string
	Status string
}

// Service encapsulates order business logic: checkout (validation, totals,
// order number allocation, persistence) and the later lifecycle operations.
type Service struct {
	users     UserStore
	products  ProductStore
	orders    OrderStore
	calc      Calculator
	cache     cache.Store
	cacheTTL  time.Duration
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
}

// messagingConfig contains messaging specific knobs we care about.
type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Users     *userrepo.Repository
	Products  *productrepo.Repository
	Orders    *orderrepo.Repository
	Cache     cache.Store
	Config    config.Config
	Logger    *zap.Logger
	Publisher messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return newService(p.Users, p.Products, p.Orders, Calculator{
		DeliveryCharge: p.Config.Pricing.DeliveryCharge,
		TaxPercent:     p.Config.Pricing.TaxPercent,
	}, p.Cache, p.Config.Cache.DefaultTTL, p.Logger, p.Publisher, messagingConfig{
		enabled: p.Config.Messaging.Enabled,
		topic:   p.Config.Messaging.Kafka.Topic,
	})
}

func newService(
	users UserStore,
	products ProductStore,
	orders OrderStore,
	calc Calculator,
	cacheStore cache.Store,
	cacheTTL time.Duration,
	logger *zap.Logger,
	publisher messaging.Client,
	msg messagingConfig,
) *Service {
	return &Service{
		users:     users,
		products:  products,
		orders:    orders,
		calc:      calc,
		cache:     cacheStore,
		cacheTTL:  cacheTTL,
		logger:    logger,
		publisher: publisher,
		messaging: msg,
	}
}

// Checkout validates the owning user and every line item, computes totals,
// allocates the next order number and persists the order in pending state.
// Validation stops at the first failure; nothing is written before the final
// insert.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Checkout", trace.WithAttributes(attribute.Int64("user.id", req.UserID)))
	defer span.End()

	if req.UserID <= 0 {
		return nil, &InvalidReferenceError{Field: "user"}
	}
	if len(req.Items) == 0 {
		return nil, ErrMissingItems
	}

	user, err := s.users.FindActiveByID(ctx, req.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "user lookup failed")
		return nil, &StorageError{Op: "find user", Err: err}
	}
	if user == nil {
		return nil, &UserNotFoundError{UserID: req.UserID}
	}

	items, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	totals := s.calc.Compute(items)

	number, err := s.allocateOrderNumber(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "allocation failed")
		return nil, err
	}
	span.SetAttributes(attribute.String("order.number", number))

	now := time.Now().UTC()
	order := &entity.Order{
		UserID:         user.ID,
		Number:         number,
		Status:         entity.OrderStatusPending,
		Subtotal:       totals.Subtotal,
		DeliveryCharge: totals.DeliveryCharge,
		TaxPercent:     totals.TaxPercent,
		TaxAmount:      totals.TaxAmount,
		TotalPrice:     totals.Total,
		CreatedAt:      now,
		UpdatedAt:      now,
		Active:         true,
		Inactive:       false,
		Items:          items,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return nil, &StorageError{Op: "create order", Err: err}
	}

	if err := s.storeInCache(ctx, order); err != nil {
		if s.logger != nil {
			s.logger.Warn("orders cache write failed", zap.Int64("id", order.ID), zap.Error(err))
		}
	}

	s.publishOrderCreated(ctx, order)
	return order, nil
}

// resolveItems validates each requested line in request order and snapshots
// the product name and current price into the line item. First failure wins.
func (s *Service) resolveItems(ctx context.Context, reqs []CheckoutItem) ([]entity.OrderItem, error) {
	items := make([]entity.OrderItem, 0, len(reqs))
	for _, req := range reqs {
		if req.ProductID <= 0 {
			return nil, &InvalidReferenceError{Field: "product"}
		}
		if req.Quantity < 1 {
			return nil, &InvalidQuantityError{ProductID: req.ProductID, Quantity: req.Quantity}
		}

		product, err := s.products.FindActiveByID(ctx, req.ProductID)
		if err != nil {
			return nil, &StorageError{Op: "find product", Err: err}
		}
		if product == nil {
			return nil, &ProductNotFoundError{ProductID: req.ProductID}
		}

		quantity := decimal.NewFromInt(int64(req.Quantity))
		items = append(items, entity.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    req.Quantity,
			UnitPrice:   product.Price,
			TotalPrice:  product.Price.Mul(quantity),
		})
	}
	return items, nil
}

// Get retrieves a live order by id, consulting cache when available.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if order, err := s.getFromCache(ctx, id); err == nil {
		return order, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		if s.logger != nil {
			s.logger.Warn("orders cache read failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderrepo.ErrNotFound) {
			return nil, errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load order", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, order); err != nil {
		if s.logger != nil {
			s.logger.Warn("orders cache write failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	return order, nil
}

// Search lists live orders filtered by status and a free-text query matching
// the order number or customer name, newest first.
func (s *Service) Search(ctx context.Context, req SearchRequest) ([]entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Search", trace.WithAttributes(attribute.String("order.status", req.Status)))
	defer span.End()

	orders, err := s.orders.Search(ctx, orderrepo.SearchParams{
		Query:  req.Query,
		Status: req.Status,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to search orders", errorbank.WithCause(err))
	}
	return orders, nil
}

// UpdateStatus transitions an order to a new lifecycle status.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	if status == "" {
		return errorbank.BadRequest("status is required")
	}
	ctx, span := serviceTracer.Start(ctx, "OrderService.UpdateStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status", status),
	))
	defer span.End()

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, orderrepo.ErrNotFound) {
			return errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to update order", errorbank.WithCause(err))
	}

	s.invalidateCache(ctx, id)
	return nil
}

// Remove soft-deletes an order, keeping it as history.
func (s *Service) Remove(ctx context.Context, id int64) error {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Remove", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := s.orders.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, orderrepo.ErrNotFound) {
			return errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to remove order", errorbank.WithCause(err))
	}

	s.invalidateCache(ctx, id)
	return nil
}

func (s *Service) publishOrderCreated(ctx context.Context, order *entity.Order) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := OrderCreatedEvent{
		ID:        order.ID,
		UserID:    order.UserID,
		Number:    order.Number,
		Status:    order.Status,
		Total:     order.TotalPrice,
		CreatedAt: order.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("marshal order created", zap.Error(err))
		}
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("order-%d", order.ID)), payload); err != nil {
		if s.logger != nil {
			s.logger.Error("publish order created", zap.Error(err))
		}
	}
}

func (s *Service) cacheKey(id int64) string {
	return fmt.Sprintf("orders:%d", id)
}

func (s *Service) getFromCache(ctx context.Context, id int64) (*entity.Order, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, s.cacheKey(id))
	if err != nil {
		return nil, err
	}
	var order entity.Order
	if err := json.Unmarshal(bytes, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Service) storeInCache(ctx context.Context, order *entity.Order) error {
	if s.cache == nil || order == nil {
		return nil
	}
	bytes, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, s.cacheKey(order.ID), bytes, s.cacheTTL)
}

func (s *Service) invalidateCache(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.cacheKey(id)); err != nil && s.logger != nil {
		s.logger.Warn("orders cache delete failed", zap.Int64("id", id), zap.Error(err))
	}
}

// OrderCreatedEvent is emitted when a new order is persisted.
type OrderCreatedEvent struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Number    string          `json:"number"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}
