package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// User roles. The first registered account becomes the admin.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a customer account stored in the relational database.
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID           int64     `bun:",pk,autoincrement"`
	Name         string    `bun:"name"`
	Email        string    `bun:"email"`
	PasswordHash string    `bun:"password_hash"`
	Role         string    `bun:"role"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero"`
	Active       bool      `bun:"active_flag"`
	Inactive     bool      `bun:"is_inactive"`
}
