package order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zeras-code/shopcart/internal/dto"
	"github.com/zeras-code/shopcart/internal/entity"
	"github.com/zeras-code/shopcart/internal/presentation/http/response"
	service "github.com/zeras-code/shopcart/internal/service/order"
	"github.com/zeras-code/shopcart/internal/transport/http/middleware"
	"github.com/zeras-code/shopcart/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/zeras-code/shopcart/transport/http/order")

// Handler exposes order endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance. Checkout and order lookup
// serve the authenticated user; listing and lifecycle changes are admin-only.
func Register(e *echo.Echo, h *Handler, auth *middleware.Authenticator) {
	g := e.Group("/orders", auth.Require)
	g.POST("", h.checkout)
	g.GET("/:id", h.getByID)
	g.GET("", h.search, auth.RequireAdmin)
	g.PATCH("/:id/status", h.updateStatus, auth.RequireAdmin)
	g.DELETE("/:id", h.remove, auth.RequireAdmin)
}

func (h *Handler) checkout(c echo.Context) error {
	b := response.New(c)
	claims := middleware.Claims(c)

	var payload struct {
		Items []service.CheckoutItem `json:"items"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.checkout", trace.WithAttributes(
		attribute.Int64("user.id", claims.UserID),
		attribute.Int("order.item_count", len(payload.Items)),
	))
	defer span.End()

	order, err := h.svc.Checkout(ctx, service.CheckoutRequest{
		UserID: claims.UserID,
		Items:  payload.Items,
	})
	if err != nil {
		return b.WithError(mapCheckoutError(err)).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(dto.NewOrderResponse(order)).Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)
	claims := middleware.Claims(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.getByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	// Customers see only their own orders.
	if claims.Role != entity.RoleAdmin && order.UserID != claims.UserID {
		return b.WithError(errorbank.NotFound("order not found")).Build()
	}

	return b.WithData(dto.NewOrderResponse(order)).Build()
}

func (h *Handler) search(c echo.Context) error {
	b := response.New(c)

	req := service.SearchRequest{
		Query:  c.QueryParam("q"),
		Status: c.QueryParam("status"),
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.search", trace.WithAttributes(attribute.String("order.status", req.Status)))
	defer span.End()

	orders, err := h.svc.Search(ctx, req)
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, dto.NewOrderResponse(&orders[i]))
	}
	return b.WithData(out).WithMeta("count", len(out)).Build()
}

func (h *Handler) updateStatus(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	if !entity.ValidOrderStatus(payload.Status) {
		return b.WithError(errorbank.BadRequest("unknown order status")).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.updateStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status", payload.Status),
	))
	defer span.End()

	if err := h.svc.UpdateStatus(ctx, id, payload.Status); err != nil {
		return b.WithError(err).Build()
	}
	return b.Build()
}

func (h *Handler) remove(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.remove", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := h.svc.Remove(ctx, id); err != nil {
		return b.WithError(err).Build()
	}
	return b.Build()
}

// mapCheckoutError translates checkout domain errors into transport errors.
// Validation failures, including references to missing users or products,
// surface as bad requests.
func mapCheckoutError(err error) error {
	var (
		missingField *service.MissingFieldError
		invalidRef   *service.InvalidReferenceError
		userNotFound *service.UserNotFoundError
		prodNotFound *service.ProductNotFoundError
		invalidQty   *service.InvalidQuantityError
		storage      *service.StorageError
	)
	switch {
	case errors.Is(err, service.ErrMissingItems):
		return errorbank.BadRequest(err.Error())
	case errors.As(err, &missingField),
		errors.As(err, &invalidRef),
		errors.As(err, &userNotFound),
		errors.As(err, &prodNotFound),
		errors.As(err, &invalidQty):
		return errorbank.BadRequest(err.Error())
	case errors.Is(err, service.ErrAllocationExhausted):
		return errorbank.Internal("could not allocate an order number", errorbank.WithCause(err))
	case errors.As(err, &storage):
		return errorbank.Internal("failed to place order", errorbank.WithCause(err))
	default:
		return err
	}
}
