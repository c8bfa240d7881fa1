package product

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/zeras-code/shopcart/internal/entity"
	productrepo "github.com/zeras-code/shopcart/internal/repository/product"
	"github.com/zeras-code/shopcart/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/zeras-code/shopcart/service/product")

const (
	minNameLength        = 3
	maxNameLength        = 100
	minDescriptionLength = 10
)

// ProductStore is the persistence capability the catalog service needs.
type ProductStore interface {
	Create(ctx context.Context, product *entity.Product) error
	ListActive(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
}

// CreateRequest is the input for adding a catalog item.
type CreateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
}

// Service manages the product catalog.
type Service struct {
	products ProductStore
	logger   *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Products *productrepo.Repository
	Logger   *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return newService(p.Products, p.Logger)
}

func newService(products ProductStore, logger *zap.Logger) *Service {
	return &Service{products: products, logger: logger}
}

// Create validates and stores a new catalog item.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "ProductService.Create")
	defer span.End()

	name := strings.TrimSpace(req.Name)
	if len(name) < minNameLength || len(name) > maxNameLength {
		return nil, errorbank.BadRequest("name must be between 3 and 100 characters")
	}

	description := strings.TrimSpace(req.Description)
	if len(description) < minDescriptionLength {
		return nil, errorbank.BadRequest("description must be at least 10 characters")
	}

	if !req.Price.IsPositive() {
		return nil, errorbank.BadRequest("price must be greater than zero")
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	if err := validateImageURL(imageURL); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &entity.Product{
		Name:        name,
		Description: description,
		Price:       req.Price,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
		Active:      true,
		Inactive:    false,
	}
	if err := s.products.Create(ctx, product); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "repository error")
		return nil, errorbank.Internal("failed to create product", errorbank.WithCause(err))
	}

	if s.logger != nil {
		s.logger.Info("product created", zap.Int64("id", product.ID), zap.String("name", product.Name))
	}
	return product, nil
}

// List returns all active catalog items.
func (s *Service) List(ctx context.Context) ([]entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "ProductService.List")
	defer span.End()

	products, err := s.products.ListActive(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "repository error")
		return nil, errorbank.Internal("failed to list products", errorbank.WithCause(err))
	}
	return products, nil
}

// Get returns a single active catalog item by id.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "ProductService.Get")
	defer span.End()

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, productrepo.ErrNotFound) {
			return nil, errorbank.NotFound("product not found")
		}
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "repository error")
		return nil, errorbank.Internal("failed to load product", errorbank.WithCause(err))
	}
	return product, nil
}

func validateImageURL(raw string) error {
	if raw == "" {
		return errorbank.BadRequest("image URL is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return errorbank.BadRequest("image URL must be a valid http or https URL")
	}
	return nil
}
