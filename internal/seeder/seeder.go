package seeder

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/zeras-code/shopcart/internal/database"
	"github.com/zeras-code/shopcart/internal/entity"
)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// Run seeds the catalog and a starter admin account if they are missing.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.Users(ctx); err != nil {
		return err
	}
	return s.Products(ctx)
}

// Users seeds an admin account for local development. The password is
// "admin123"; change it before exposing the service anywhere shared.
func (s *Seeder) Users(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := entity.User{
		Name:         "Shop Admin",
		Email:        "admin@shopcart.local",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
		Active:       true,
	}

	_, err = s.db.NewInsert().Model(&admin).
		On("CONFLICT (email) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("seeded admin user", zap.String("email", admin.Email))
	}
	return nil
}

// Products seeds a small example catalog if it is missing.
func (s *Seeder) Products(ctx context.Context) error {
	now := time.Now().UTC()
	samples := []entity.Product{
		{
			Name:        "Classic Burger",
			Description: "Flame-grilled beef patty with cheddar, lettuce and house sauce",
			Price:       decimal.RequireFromString("12.50"),
			ImageURL:    "https://cdn.shopcart.local/products/classic-burger.png",
		},
		{
			Name:        "Veggie Burger",
			Description: "Grilled plant-based patty with avocado and pickled onions",
			Price:       decimal.RequireFromString("11.00"),
			ImageURL:    "https://cdn.shopcart.local/products/veggie-burger.png",
		},
		{
			Name:        "Fries",
			Description: "Crispy shoestring fries with sea salt",
			Price:       decimal.RequireFromString("4.25"),
			ImageURL:    "https://cdn.shopcart.local/products/fries.png",
		},
	}

	for _, sample := range samples {
		product := sample
		product.CreatedAt = now
		product.UpdatedAt = now
		product.Active = true
		_, err := s.db.NewInsert().Model(&product).
			On("CONFLICT (name) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded products", zap.Int("count", len(samples)))
	}
	return nil
}
