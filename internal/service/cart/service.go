package cart

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/zeras-code/shopcart/internal/entity"
	cartrepo "github.com/zeras-code/shopcart/internal/repository/cart"
	productrepo "github.com/zeras-code/shopcart/internal/repository/product"
	userrepo "github.com/zeras-code/shopcart/internal/repository/user"
	"github.com/zeras-code/shopcart/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/zeras-code/shopcart/service/cart")

// UserStore is the user lookup capability the cart service needs.
type UserStore interface {
	FindActiveByID(ctx context.Context, id int64) (*entity.User, error)
}

// ProductStore is the catalog lookup capability the cart service needs.
type ProductStore interface {
	FindActiveByID(ctx context.Context, id int64) (*entity.Product, error)
}

// CartStore is the persistence capability for cart items. FindActive returns
// (nil, nil) when the user has no active item for the product.
type CartStore interface {
	Create(ctx context.Context, item *entity.CartItem) error
	FindActive(ctx context.Context, userID, productID int64) (*entity.CartItem, error)
	UpdateQuantity(ctx context.Context, item *entity.CartItem) error
	ListByUser(ctx context.Context, userID int64) ([]entity.CartItem, error)
	SoftDelete(ctx context.Context, id int64) error
}

// Details is a user's cart with its combined total.
type Details struct {
	Items []entity.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

// Service manages per-user shopping carts.
type Service struct {
	users    UserStore
	products ProductStore
	carts    CartStore
	logger   *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Users    *userrepo.Repository
	Products *productrepo.Repository
	Carts    *cartrepo.Repository
	Logger   *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return newService(p.Users, p.Products, p.Carts, p.Logger)
}

func newService(users UserStore, products ProductStore, carts CartStore, logger *zap.Logger) *Service {
	return &Service{users: users, products: products, carts: carts, logger: logger}
}

// Add puts a product in the user's cart. Adding a product already in the
// cart increases its quantity, refreshing the denormalized product snapshot.
func (s *Service) Add(ctx context.Context, userID, productID int64, quantity int) (*entity.CartItem, error) {
	ctx, span := serviceTracer.Start(ctx, "CartService.Add")
	defer span.End()

	if quantity < 1 {
		return nil, errorbank.BadRequest("quantity must be at least 1")
	}

	user, err := s.users.FindActiveByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "repository error")
		return nil, errorbank.Internal("failed to load user", errorbank.WithCause(err))
	}
	if user == nil {
		return nil, errorbank.NotFound("user not found")
	}

	product, err := s.products.FindActiveByID(ctx, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "repository error")
		return nil, errorbank.Internal("failed to load product", errorbank.WithCause(err))
	}
	if product == nil {
		return nil, errorbank.NotFound("product not found")
	}

	existing, err := s.carts.FindActive(ctx, userID, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "repository error")
		return nil, errorbank.Internal("failed to load cart item", errorbank.WithCause(err))
	}

	now := time.Now().UTC()
	if existing != nil {
		existing.Quantity += quantity
		existing.UnitPrice = product.Price
		existing.TotalPrice = product.Price.Mul(decimal.NewFromInt(int64(existing.Quantity)))
		existing.UpdatedAt = now
		if err := s.carts.UpdateQuantity(ctx, existing); err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, "repository error")
			return nil, errorbank.Internal("failed to update cart item", errorbank.WithCause(err))
		}
		return existing, nil
	}

	item := &entity.CartItem{
		UserID:          userID,
		ProductID:       productID,
		ProductName:     product.Name,
		ProductImageURL: product.ImageURL,
		UnitPrice:       product.Price,
		Quantity:        quantity,
		TotalPrice:      product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:       now,
		UpdatedAt:       now,
		Active:          true,
		Inactive:        false,
	}
	if err := s.carts.Create(ctx, item); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "repository error")
		return nil, errorbank.Internal("failed to create cart item", errorbank.WithCause(err))
	}

	if s.logger != nil {
		s.logger.Info("cart item added",
			zap.Int64("user_id", userID),
			zap.Int64("product_id", productID),
			zap.Int("quantity", quantity))
	}
	return item, nil
}

// Get returns the user's active cart items and their combined total.
func (s *Service) Get(ctx context.Context, userID int64) (*Details, error) {
	ctx, span := serviceTracer.Start(ctx, "CartService.Get")
	defer span.End()

	items, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "repository error")
		return nil, errorbank.Internal("failed to list cart items", errorbank.WithCause(err))
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}
	return &Details{Items: items, Total: total}, nil
}

// Remove takes a product out of the user's cart.
func (s *Service) Remove(ctx context.Context, userID, productID int64) error {
	ctx, span := serviceTracer.Start(ctx, "CartService.Remove")
	defer span.End()

	item, err := s.carts.FindActive(ctx, userID, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "repository error")
		return errorbank.Internal("failed to load cart item", errorbank.WithCause(err))
	}
	if item == nil {
		return errorbank.NotFound("cart item not found")
	}

	if err := s.carts.SoftDelete(ctx, item.ID); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "repository error")
		return errorbank.Internal("failed to remove cart item", errorbank.WithCause(err))
	}
	return nil
}
