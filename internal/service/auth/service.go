package auth

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/zeras-code/shopcart/internal/entity"
	userrepo "github.com/zeras-code/shopcart/internal/repository/user"
	"github.com/zeras-code/shopcart/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/zeras-code/shopcart/service/auth")

// UserStore is the persistence capability the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Count(ctx context.Context) (int, error)
}

// RegisterRequest is the input for creating an account.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Session is the outcome of a successful register or login.
type Session struct {
	User  *entity.User
	Token string
}

// Service handles account registration and login.
type Service struct {
	users  UserStore
	tokens *TokenManager
	logger *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Users  *userrepo.Repository
	Tokens *TokenManager
	Logger *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return newService(p.Users, p.Tokens, p.Logger)
}

func newService(users UserStore, tokens *TokenManager, logger *zap.Logger) *Service {
	return &Service{users: users, tokens: tokens, logger: logger}
}

// Register validates the request, creates the account, and issues a token.
// The very first registered account becomes the admin.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	ctx, span := serviceTracer.Start(ctx, "AuthService.Register")
	defer span.End()

	name, err := formatName(req.Name)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to check email", errorbank.WithCause(err))
	}
	if existing != nil {
		return nil, errorbank.Conflict("email already registered")
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to count users", errorbank.WithCause(err))
	}
	role := entity.RoleUser
	if count == 0 {
		role = entity.RoleAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errorbank.Internal("failed to hash password", errorbank.WithCause(err))
	}

	now := time.Now().UTC()
	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
		Active:       true,
		Inactive:     false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to create user", errorbank.WithCause(err))
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, errorbank.Internal("failed to issue token", errorbank.WithCause(err))
	}

	if s.logger != nil {
		s.logger.Info("user registered", zap.Int64("id", user.ID), zap.String("role", user.Role))
	}
	return &Session{User: user, Token: token}, nil
}

// Login verifies credentials against the stored hash and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	ctx, span := serviceTracer.Start(ctx, "AuthService.Login")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errorbank.BadRequest("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load user", errorbank.WithCause(err))
	}
	if user == nil || !user.Active {
		return nil, errorbank.Unauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errorbank.Unauthorized("invalid email or password")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, errorbank.Internal("failed to issue token", errorbank.WithCause(err))
	}
	return &Session{User: user, Token: token}, nil
}
