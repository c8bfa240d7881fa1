package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeras-code/shopcart/internal/entity"
	"github.com/zeras-code/shopcart/pkg/errorbank"
)

type mockUserStore struct {
	users map[int64]*entity.User
}

func (m *mockUserStore) FindActiveByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok || !u.Active {
		return nil, nil
	}
	return u, nil
}

type mockProductStore struct {
	products map[int64]*entity.Product
}

func (m *mockProductStore) FindActiveByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := m.products[id]
	if !ok || !p.Active {
		return nil, nil
	}
	return p, nil
}

type mockCartStore struct {
	items  map[int64]*entity.CartItem
	nextID int64
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{items: make(map[int64]*entity.CartItem), nextID: 1}
}

func (m *mockCartStore) Create(_ context.Context, item *entity.CartItem) error {
	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = item
	return nil
}

func (m *mockCartStore) FindActive(_ context.Context, userID, productID int64) (*entity.CartItem, error) {
	for _, item := range m.items {
		if item.UserID == userID && item.ProductID == productID && item.Active {
			return item, nil
		}
	}
	return nil, nil
}

func (m *mockCartStore) UpdateQuantity(_ context.Context, item *entity.CartItem) error {
	m.items[item.ID] = item
	return nil
}

func (m *mockCartStore) ListByUser(_ context.Context, userID int64) ([]entity.CartItem, error) {
	var out []entity.CartItem
	for _, item := range m.items {
		if item.UserID == userID && item.Active {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *mockCartStore) SoftDelete(_ context.Context, id int64) error {
	item, ok := m.items[id]
	if !ok || !item.Active {
		return errorbank.NotFound("cart item not found")
	}
	item.Active = false
	item.Inactive = true
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixture() (*Service, *mockCartStore) {
	users := &mockUserStore{users: map[int64]*entity.User{
		1: {ID: 1, Name: "Jane Doe", Active: true},
	}}
	products := &mockProductStore{products: map[int64]*entity.Product{
		10: {ID: 10, Name: "Classic Burger", ImageURL: "https://cdn.example.com/b.png", Price: dec("12.50"), Active: true},
		11: {ID: 11, Name: "Fries", Price: dec("4.25"), Active: true},
		12: {ID: 12, Name: "Retired Item", Price: dec("1.00"), Active: false},
	}}
	carts := newMockCartStore()
	return newService(users, products, carts, nil), carts
}

func assertKind(t *testing.T, err error, kind errorbank.Kind) {
	t.Helper()
	var appErr *errorbank.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, kind, appErr.Kind())
}

func TestAddNewItem(t *testing.T) {
	svc, _ := fixture()

	item, err := svc.Add(context.Background(), 1, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, "Classic Burger", item.ProductName)
	assert.True(t, item.UnitPrice.Equal(dec("12.50")))
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.TotalPrice.Equal(dec("25.00")))
	assert.True(t, item.Active)
}

func TestAddExistingItemIncreasesQuantity(t *testing.T) {
	svc, _ := fixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, 1, 10, 2)
	require.NoError(t, err)

	item, err := svc.Add(ctx, 1, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	assert.True(t, item.TotalPrice.Equal(dec("62.50")))

	details, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, details.Items, 1)
}

func TestAddValidation(t *testing.T) {
	svc, _ := fixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, 1, 10, 0)
	assertKind(t, err, errorbank.KindBadRequest)

	_, err = svc.Add(ctx, 99, 10, 1)
	assertKind(t, err, errorbank.KindNotFound)

	_, err = svc.Add(ctx, 1, 99, 1)
	assertKind(t, err, errorbank.KindNotFound)

	_, err = svc.Add(ctx, 1, 12, 1)
	assertKind(t, err, errorbank.KindNotFound)
}

func TestGetTotalsAcrossItems(t *testing.T) {
	svc, _ := fixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, 1, 10, 2)
	require.NoError(t, err)
	_, err = svc.Add(ctx, 1, 11, 1)
	require.NoError(t, err)

	details, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, details.Items, 2)
	assert.True(t, details.Total.Equal(dec("29.25")), "got %s", details.Total)
}

func TestGetEmptyCart(t *testing.T) {
	svc, _ := fixture()

	details, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, details.Items)
	assert.True(t, details.Total.IsZero())
}

func TestRemove(t *testing.T) {
	svc, carts := fixture()
	ctx := context.Background()

	item, err := svc.Add(ctx, 1, 10, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, 1, 10))
	assert.False(t, carts.items[item.ID].Active)

	err = svc.Remove(ctx, 1, 10)
	assertKind(t, err, errorbank.KindNotFound)
}
