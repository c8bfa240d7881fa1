package cart

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zeras-code/shopcart/internal/database"
	"github.com/zeras-code/shopcart/internal/entity"
)

var repoTracer = otel.Tracer("github.com/zeras-code/shopcart/repository/cart")

// ErrNotFound is returned when a cart item is missing.
var ErrNotFound = errors.New("cart item not found")

// Repository encapsulates read/write access for cart items.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// Create persists a new cart item.
func (r *Repository) Create(ctx context.Context, item *entity.CartItem) error {
	if item == nil {
		return errors.New("nil cart item")
	}
	ctx, span := repoTracer.Start(ctx, "CartRepository.Create", trace.WithAttributes(attribute.Int64("cart.user_id", item.UserID)))
	defer span.End()

	_, err := r.writer.NewInsert().Model(item).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// FindActive probes for a live cart row for the user/product pair. Returns nil
// without error when absent; add-to-cart upserts based on that.
func (r *Repository) FindActive(ctx context.Context, userID, productID int64) (*entity.CartItem, error) {
	ctx, span := repoTracer.Start(ctx, "CartRepository.FindActive", trace.WithAttributes(
		attribute.Int64("cart.user_id", userID),
		attribute.Int64("cart.product_id", productID),
	))
	defer span.End()

	item := new(entity.CartItem)
	err := r.reader.NewSelect().Model(item).
		Where("user_id = ?", userID).
		Where("product_id = ?", productID).
		Where("active_flag = ?", true).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return item, nil
}

// UpdateQuantity replaces quantity, unit price and line total of a cart item.
func (r *Repository) UpdateQuantity(ctx context.Context, item *entity.CartItem) error {
	if item == nil {
		return errors.New("nil cart item")
	}
	ctx, span := repoTracer.Start(ctx, "CartRepository.UpdateQuantity", trace.WithAttributes(attribute.Int64("cart.id", item.ID)))
	defer span.End()

	_, err := r.writer.NewUpdate().Model(item).
		Column("quantity", "unit_price", "total_price", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
	}
	return err
}

// ListByUser returns all live cart items for a user.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]entity.CartItem, error) {
	ctx, span := repoTracer.Start(ctx, "CartRepository.ListByUser", trace.WithAttributes(attribute.Int64("cart.user_id", userID)))
	defer span.End()

	var items []entity.CartItem
	err := r.reader.NewSelect().Model(&items).
		Where("user_id = ?", userID).
		Where("active_flag = ?", true).
		Where("is_inactive = ?", false).
		OrderExpr("created_at DESC").
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return items, nil
}

// SoftDelete marks a cart item inactive rather than removing the row.
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	ctx, span := repoTracer.Start(ctx, "CartRepository.SoftDelete", trace.WithAttributes(attribute.Int64("cart.id", id)))
	defer span.End()

	res, err := r.writer.NewUpdate().Model((*entity.CartItem)(nil)).
		Set("active_flag = ?", false).
		Set("is_inactive = ?", true).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Where("active_flag = ?", true).
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		span.SetStatus(codes.Error, "not found")
		return ErrNotFound
	}
	return nil
}
