package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zeras-code/shopcart/internal/entity"
	"github.com/zeras-code/shopcart/pkg/errorbank"
)

type mockUserStore struct {
	users  map[string]*entity.User
	nextID int64
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]*entity.User), nextID: 1}
}

func (m *mockUserStore) Create(_ context.Context, user *entity.User) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.Email] = user
	return nil
}

func (m *mockUserStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.users[email], nil
}

func (m *mockUserStore) Count(_ context.Context) (int, error) {
	return len(m.users), nil
}

func testAuthService(store UserStore) *Service {
	return newService(store, testTokenManager(time.Hour), nil)
}

func assertKind(t *testing.T, err error, kind errorbank.Kind) {
	t.Helper()
	var appErr *errorbank.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, kind, appErr.Kind())
}

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	store := newMockUserStore()
	svc := testAuthService(store)

	session, err := svc.Register(context.Background(), RegisterRequest{
		Name:            "jane doe",
		Email:           "Jane@Example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, session.User.Role)
	assert.Equal(t, "Jane Doe", session.User.Name)
	assert.Equal(t, "jane@example.com", session.User.Email)
	assert.True(t, session.User.Active)
	assert.False(t, session.User.Inactive)
	assert.NotEmpty(t, session.Token)

	// The stored hash must not be the raw password.
	assert.NotEqual(t, "secret1", session.User.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(session.User.PasswordHash), []byte("secret1")))
}

func TestRegisterSecondUserIsRegular(t *testing.T) {
	store := newMockUserStore()
	svc := testAuthService(store)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "first user", Email: "first@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)

	session, err := svc.Register(context.Background(), RegisterRequest{
		Name: "second user", Email: "second@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, session.User.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newMockUserStore()
	svc := testAuthService(store)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "jane doe", Email: "jane@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Name: "jane again", Email: "JANE@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	assertKind(t, err, errorbank.KindConflict)
}

func TestRegisterValidation(t *testing.T) {
	svc := testAuthService(newMockUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret1"})
	assertKind(t, err, errorbank.KindBadRequest)

	_, err = svc.Register(ctx, RegisterRequest{Name: "jane doe", Email: "nope", Password: "secret1", ConfirmPassword: "secret1"})
	assertKind(t, err, errorbank.KindBadRequest)

	_, err = svc.Register(ctx, RegisterRequest{Name: "jane doe", Email: "a@b.com", Password: "secret1", ConfirmPassword: "other"})
	assertKind(t, err, errorbank.KindBadRequest)
}

func TestLoginSuccess(t *testing.T) {
	store := newMockUserStore()
	svc := testAuthService(store)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "jane doe", Email: "jane@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), "Jane@Example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", session.User.Email)
	assert.NotEmpty(t, session.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newMockUserStore()
	svc := testAuthService(store)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "jane doe", Email: "jane@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "jane@example.com", "wrong")
	assertKind(t, err, errorbank.KindUnauthorized)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := testAuthService(newMockUserStore())

	_, err := svc.Login(context.Background(), "ghost@example.com", "secret1")
	assertKind(t, err, errorbank.KindUnauthorized)
}

func TestLoginInactiveUser(t *testing.T) {
	store := newMockUserStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	store.users["gone@example.com"] = &entity.User{
		ID: 5, Email: "gone@example.com", PasswordHash: string(hash), Active: false, Inactive: true,
	}
	svc := testAuthService(store)

	_, err = svc.Login(context.Background(), "gone@example.com", "secret1")
	assertKind(t, err, errorbank.KindUnauthorized)
}
