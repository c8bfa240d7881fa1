package cart

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zeras-code/shopcart/internal/dto"
	"github.com/zeras-code/shopcart/internal/presentation/http/response"
	service "github.com/zeras-code/shopcart/internal/service/cart"
	"github.com/zeras-code/shopcart/internal/transport/http/middleware"
	"github.com/zeras-code/shopcart/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/zeras-code/shopcart/transport/http/cart")

// Handler exposes cart endpoints over HTTP. All routes operate on the cart
// of the authenticated user.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a cart Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler, auth *middleware.Authenticator) {
	g := e.Group("/cart", auth.Require)
	g.GET("", h.get)
	g.POST("/items", h.add)
	g.DELETE("/items/:productID", h.remove)
}

func (h *Handler) get(c echo.Context) error {
	b := response.New(c)
	claims := middleware.Claims(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "cart.get", trace.WithAttributes(attribute.Int64("user.id", claims.UserID)))
	defer span.End()

	details, err := h.svc.Get(ctx, claims.UserID)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.NewCartResponse(details.Items, details.Total)).Build()
}

func (h *Handler) add(c echo.Context) error {
	b := response.New(c)
	claims := middleware.Claims(c)

	var payload struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "cart.add", trace.WithAttributes(
		attribute.Int64("user.id", claims.UserID),
		attribute.Int64("product.id", payload.ProductID),
	))
	defer span.End()

	item, err := h.svc.Add(ctx, claims.UserID, payload.ProductID, payload.Quantity)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(dto.NewCartItemResponse(item)).Build()
}

func (h *Handler) remove(c echo.Context) error {
	b := response.New(c)
	claims := middleware.Claims(c)

	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid product id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "cart.remove", trace.WithAttributes(
		attribute.Int64("user.id", claims.UserID),
		attribute.Int64("product.id", productID),
	))
	defer span.End()

	if err := h.svc.Remove(ctx, claims.UserID, productID); err != nil {
		return b.WithError(err).Build()
	}

	return b.Build()
}
