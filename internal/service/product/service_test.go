package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeras-code/shopcart/internal/entity"
	productrepo "github.com/zeras-code/shopcart/internal/repository/product"
	"github.com/zeras-code/shopcart/pkg/errorbank"
)

type mockProductStore struct {
	products map[int64]*entity.Product
	nextID   int64
}

func newMockProductStore() *mockProductStore {
	return &mockProductStore{products: make(map[int64]*entity.Product), nextID: 1}
}

func (m *mockProductStore) Create(_ context.Context, product *entity.Product) error {
	product.ID = m.nextID
	m.nextID++
	m.products[product.ID] = product
	return nil
}

func (m *mockProductStore) ListActive(_ context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range m.products {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductStore) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := m.products[id]
	if !ok || !p.Active {
		return nil, productrepo.ErrNotFound
	}
	return p, nil
}

func validCreateRequest() CreateRequest {
	return CreateRequest{
		Name:        "Classic Burger",
		Description: "Beef patty with cheddar and pickles",
		Price:       decimal.RequireFromString("12.50"),
		ImageURL:    "https://cdn.example.com/burger.png",
	}
}

func assertKind(t *testing.T, err error, kind errorbank.Kind) {
	t.Helper()
	var appErr *errorbank.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, kind, appErr.Kind())
}

func TestCreateSuccess(t *testing.T) {
	store := newMockProductStore()
	svc := newService(store, nil)

	product, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), product.ID)
	assert.Equal(t, "Classic Burger", product.Name)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, product.Active)
	assert.False(t, product.Inactive)
}

func TestCreateValidation(t *testing.T) {
	svc := newService(newMockProductStore(), nil)
	ctx := context.Background()

	cases := map[string]func(*CreateRequest){
		"name too short":        func(r *CreateRequest) { r.Name = "ab" },
		"name too long":         func(r *CreateRequest) { r.Name = string(make([]byte, 101)) },
		"description too short": func(r *CreateRequest) { r.Description = "short" },
		"zero price":            func(r *CreateRequest) { r.Price = decimal.Zero },
		"negative price":        func(r *CreateRequest) { r.Price = decimal.RequireFromString("-1") },
		"empty image url":       func(r *CreateRequest) { r.ImageURL = "" },
		"relative image url":    func(r *CreateRequest) { r.ImageURL = "/images/burger.png" },
		"bad scheme":            func(r *CreateRequest) { r.ImageURL = "ftp://cdn.example.com/burger.png" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validCreateRequest()
			mutate(&req)
			_, err := svc.Create(ctx, req)
			assertKind(t, err, errorbank.KindBadRequest)
		})
	}
}

func TestListReturnsActiveOnly(t *testing.T) {
	store := newMockProductStore()
	svc := newService(store, nil)

	first, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	req := validCreateRequest()
	req.Name = "Veggie Burger"
	second, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	store.products[second.ID].Active = false

	products, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, first.ID, products[0].ID)
}

func TestGetNotFound(t *testing.T) {
	svc := newService(newMockProductStore(), nil)

	_, err := svc.Get(context.Background(), 404)
	assertKind(t, err, errorbank.KindNotFound)
}
