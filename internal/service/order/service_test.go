package order

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zeras-code/shopcart/internal/entity"
	orderrepo "github.com/zeras-code/shopcart/internal/repository/order"
)

// --- Mock stores ---

type mockUserStore struct {
	users map[int64]*entity.User
	err   error
}

func (m *mockUserStore) FindActiveByID(_ context.Context, id int64) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok || !u.Active {
		return nil, nil
	}
	return u, nil
}

type mockProductStore struct {
	products map[int64]*entity.Product
	lookups  []int64
	err      error
}

func (m *mockProductStore) FindActiveByID(_ context.Context, id int64) (*entity.Product, error) {
	m.lookups = append(m.lookups, id)
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok || !p.Active {
		return nil, nil
	}
	return p, nil
}

type mockOrderStore struct {
	created  []*entity.Order
	nextID   int64
	seedLast string
	reserved map[string]bool
	collide  bool

	createErr error
	findErr   error
	lastErr   error
}

func (m *mockOrderStore) Create(_ context.Context, order *entity.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	order.ID = m.nextID
	m.created = append(m.created, order)
	return nil
}

func (m *mockOrderStore) GetByID(context.Context, int64) (*entity.Order, error) {
	return nil, orderrepo.ErrNotFound
}

func (m *mockOrderStore) FindByNumber(_ context.Context, number string) (*entity.Order, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.collide || m.reserved[number] {
		return &entity.Order{Number: number}, nil
	}
	for _, o := range m.created {
		if o.Number == number {
			return o, nil
		}
	}
	return nil, nil
}

func (m *mockOrderStore) LastOrderNumber(context.Context) (string, error) {
	if m.lastErr != nil {
		return "", m.lastErr
	}
	if len(m.created) > 0 {
		return m.created[len(m.created)-1].Number, nil
	}
	return m.seedLast, nil
}

func (m *mockOrderStore) Search(context.Context, orderrepo.SearchParams) ([]entity.Order, error) {
	return nil, nil
}

func (m *mockOrderStore) UpdateStatus(context.Context, int64, string) error {
	return orderrepo.ErrNotFound
}

func (m *mockOrderStore) SoftDelete(context.Context, int64) error {
	return orderrepo.ErrNotFound
}

// --- Helpers ---

func activeUser(id int64) *entity.User {
	return &entity.User{ID: id, Name: "Hashim", Email: "hashim@example.com", Active: true}
}

func activeProduct(id int64, name, price string) *entity.Product {
	return &entity.Product{ID: id, Name: name, Price: dec(price), Active: true}
}

func newTestService(users *mockUserStore, products *mockProductStore, orders *mockOrderStore) *Service {
	return newService(users, products, orders, defaultCalculator(),
		nil, 0, zap.NewNop(), nil, messagingConfig{})
}

func singleProductFixture() (*mockUserStore, *mockProductStore, *mockOrderStore) {
	users := &mockUserStore{users: map[int64]*entity.User{1: activeUser(1)}}
	products := &mockProductStore{products: map[int64]*entity.Product{
		10: activeProduct(10, "Classic Burger", "25.00"),
	}}
	return users, products, &mockOrderStore{}
}

// --- Tests ---

func TestCheckout_MissingItems(t *testing.T) {
	users, products, orders := singleProductFixture()
	svc := newTestService(users, products, orders)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{UserID: 1})
	require.ErrorIs(t, err, ErrMissingItems)
	assert.Empty(t, orders.created)
}

func TestCheckout_InvalidUserReference(t *testing.T) {
	users, products, orders := singleProductFixture()
	svc := newTestService(users, products, orders)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID: 0,
		Items:  []CheckoutItem{{ProductID: 10, Quantity: 1}},
	})

	var refErr *InvalidReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "user", refErr.Field)
}

func TestCheckout_UserNotFound(t *testing.T) {
	users, products, orders := singleProductFixture()
	svc := newTestService(users, products, orders)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID: 99,
		Items:  []CheckoutItem{{ProductID: 10, Quantity: 1}},
	})

	var unfErr *UserNotFoundError
	require.ErrorAs(t, err, &unfErr)
	assert.Equal(t, int64(99), unfErr.UserID)
	assert.Empty(t, orders.created)
}

func TestCheckout_ProductNotFound(t *testing.T) {
	users, products, orders := singleProductFixture()
	svc := newTestService(users, products, orders)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID: 1,
		Items:  []CheckoutItem{{ProductID: 404, Quantity: 1}},
	})

	var pnfErr *ProductNotFoundError
	require.ErrorAs(t, err, &pnfErr)
	assert.Equal(t, int64(404), pnfErr.ProductID)
	assert.Empty(t, orders.created)
}

func TestCheckout_InactiveProduct(t *testing.T) {
	users, products, orders := singleProductFixture()
	inactive := activeProduct(11, "Retired Burger", "10.00")
	inactive.Active = false
	products.products[11] = inactive
	svc := newTestService(users, products, orders)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID: 1,
		Items:  []CheckoutItem{{ProductID: 11, Quantity: 1}},
	})

	var pnfErr *ProductNotFoundError
	require.ErrorAs(t, err, &pnfErr)
	assert.Empty(t, orders.created)
}

func TestCheckout_InvalidQuantity(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		t.Run(fmt.Sprintf("quantity %d", quantity), func(t *testing.T) {
			users, products, orders := singleProductFixture()
			svc := newTestService(users, products, orders)

			_, err := svc.Checkout(context.Background(), CheckoutRequest{
				UserID: 1,
				Items:  []CheckoutItem{{ProductID: 10, Quantity: quantity}},
			})

			var iqErr *InvalidQuantityError
			require.ErrorAs(t, err, &iqErr)
			assert.Equal(t, int64(10), iqErr.ProductID)
			assert.Equal(t, quantity, iqErr.Quantity)
			assert.Empty(t, orders.created)
		})
	}
}

func TestCheckout_InvalidProductReference(t *testing.T) {
	users, products, orders := singleProductFixture()
	svc := newTestService(users, products, orders)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID: 1,
		Items:  []CheckoutItem{{ProductID: -5, Quantity: 1}},
	})

	var refErr *InvalidReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "product", refErr.Field)
}

func TestCheckout_StopsAtFirstFailure(t *testing.T) {
	users, products, orders := singleProductFixture()
	products.products[20] = activeProduct(20, "Fries", "5.00")
	svc := newTestService(users, products, orders)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID: 1,
		Items: []CheckoutItem{
			{ProductID: 10, Quantity: 0},
			{ProductID: 20, Quantity: 1},
		},
	})

	var iqErr *InvalidQuantityError
	require.ErrorAs(t, err, &iqErr)
	// the second item is never even looked up
	assert.Empty(t, products.lookups)
}

func TestCheckout_Success(t *testing.T) {
	users, products, orders := singleProductFixture()
	products.products[20] = activeProduct(20, "Fries", "12.50")
	svc := newTestService(users, products, orders)

	order, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID: 1,
		Items: []CheckoutItem{
			{ProductID: 10, Quantity: 2}, // 50.00
			{ProductID: 20, Quantity: 4}, // 50.00
		},
	})
	require.NoError(t, err)
	require.Len(t, orders.created, 1)

	assert.Equal(t, "ON00001", order.Number)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.True(t, order.Active)
	assert.False(t, order.Inactive)
	assert.False(t, order.CreatedAt.IsZero())

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Classic Burger", order.Items[0].ProductName)
	assert.True(t, order.Items[0].UnitPrice.Equal(dec("25.00")))
	assert.True(t, order.Items[0].TotalPrice.Equal(dec("50.00")))
	assert.Equal(t, "Fries", order.Items[1].ProductName)
	assert.True(t, order.Items[1].TotalPrice.Equal(dec("50.00")))

	assert.True(t, order.Subtotal.Equal(dec("100.00")), "subtotal = %s", order.Subtotal)
	assert.True(t, order.DeliveryCharge.Equal(dec("50.00")))
	assert.True(t, order.TaxAmount.Equal(dec("5.00")), "tax = %s", order.TaxAmount)
	assert.True(t, order.TotalPrice.Equal(dec("155.00")), "total = %s", order.TotalPrice)
}

func TestCheckout_NumberContinuesSequence(t *testing.T) {
	users, products, orders := singleProductFixture()
	orders.seedLast = "ON00042"
	svc := newTestService(users, products, orders)

	order, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID: 1,
		Items:  []CheckoutItem{{ProductID: 10, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ON00043", order.Number)
}

func TestCheckout_CorruptedLastNumber(t *testing.T) {
	users, products, orders := singleProductFixture()
	orders.seedLast = "XYZ"
	svc := newTestService(users, products, orders)

	order, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID: 1,
		Items:  []CheckoutItem{{ProductID: 10, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ON00001", order.Number)
}

func TestCheckout_SequentialNumbersIncrease(t *testing.T) {
	users, products, orders := singleProductFixture()
	svc := newTestService(users, products, orders)

	seen := make(map[string]bool)
	for i := 1; i <= 5; i++ {
		order, err := svc.Checkout(context.Background(), CheckoutRequest{
			UserID: 1,
			Items:  []CheckoutItem{{ProductID: 10, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, formatOrderNumber(i), order.Number)
		assert.False(t, seen[order.Number], "duplicate number %s", order.Number)
		seen[order.Number] = true
	}
}

func TestCheckout_CollisionRetriesToNextFreeNumber(t *testing.T) {
	users, products, orders := singleProductFixture()
	orders.seedLast = "ON00009"
	// a concurrent allocator already claimed ON00010
	orders.reserved = map[string]bool{"ON00010": true}
	svc := newTestService(users, products, orders)

	order, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID: 1,
		Items:  []CheckoutItem{{ProductID: 10, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ON00011", order.Number)
}

func TestCheckout_StorageFailureDuringAllocation(t *testing.T) {
	users, products, orders := singleProductFixture()
	orders.findErr = errors.New("connection reset")
	svc := newTestService(users, products, orders)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID: 1,
		Items:  []CheckoutItem{{ProductID: 10, Quantity: 1}},
	})

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Empty(t, orders.created)
}

func TestCheckout_AllocationExhausted(t *testing.T) {
	users, products, orders := singleProductFixture()
	orders.collide = true
	svc := newTestService(users, products, orders)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID: 1,
		Items:  []CheckoutItem{{ProductID: 10, Quantity: 1}},
	})

	require.ErrorIs(t, err, ErrAllocationExhausted)
	assert.Empty(t, orders.created)
}

func TestCheckout_InsertFailure(t *testing.T) {
	users, products, orders := singleProductFixture()
	orders.createErr = errors.New("unique constraint violation")
	svc := newTestService(users, products, orders)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID: 1,
		Items:  []CheckoutItem{{ProductID: 10, Quantity: 1}},
	})

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Empty(t, orders.created)
}
