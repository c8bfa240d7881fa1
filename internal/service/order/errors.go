package order

import (
	"errors"
	"fmt"
)

// Sentinel errors for checkout validation and allocation.
var (
	// ErrMissingItems is returned when the checkout request has no line items.
	ErrMissingItems = errors.New("at least one order item is required")

	// ErrAllocationExhausted is returned when the order number allocator gives
	// up after too many collisions; it indicates a corrupted order store.
	ErrAllocationExhausted = errors.New("order number allocation exhausted")
)

// MissingFieldError indicates a required request field is absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// InvalidReferenceError indicates a malformed entity reference, such as a
// non-positive identifier.
type InvalidReferenceError struct {
	Field string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid %s reference", e.Field)
}

// UserNotFoundError indicates the owning user does not exist or is inactive.
type UserNotFoundError struct {
	UserID int64
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user %d not found", e.UserID)
}

// ProductNotFoundError indicates a requested product does not exist or is
// inactive.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// InvalidQuantityError indicates a line item quantity below 1.
type InvalidQuantityError struct {
	ProductID int64
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be a positive integer for product %d", e.ProductID)
}

// StorageError wraps a persistence failure so callers can distinguish it from
// validation outcomes. A storage fault aborts the whole operation; it is never
// retried as a number collision.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
