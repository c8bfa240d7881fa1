package order

import (
	"context"

	"github.com/zeras-code/shopcart/internal/entity"
	repo "github.com/zeras-code/shopcart/internal/repository/order"
)

// UserStore resolves active user accounts. A nil user with nil error means no
// active account matches.
type UserStore interface {
	FindActiveByID(ctx context.Context, id int64) (*entity.User, error)
}

// ProductStore resolves active catalog products. A nil product with nil error
// means no active product matches.
type ProductStore interface {
	FindActiveByID(ctx context.Context, id int64) (*entity.Product, error)
}

// OrderStore is the persistence capability the order service needs. Probe
// methods (FindByNumber, LastOrderNumber) signal absence with zero values and
// nil error; fetch and mutate methods report a missing order with the
// repository's ErrNotFound.
type OrderStore interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	FindByNumber(ctx context.Context, number string) (*entity.Order, error)
	LastOrderNumber(ctx context.Context) (string, error)
	Search(ctx context.Context, params repo.SearchParams) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	SoftDelete(ctx context.Context, id int64) error
}
