package service

import (
	"errors"
	"fmt"
)

// ErrForbidden is returned when the caller lacks the required privilege.
var ErrForbidden = errors.New("forbidden")

// ValidationError means the caller sent missing or malformed input.
// Nothing has been mutated.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NotFoundError means the referenced entity is absent or not owned by the
// caller.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

// ConflictError means the request contradicts current state, e.g. a
// default-address invariant violation or an illegal status transition.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// InsufficientStockError reports which product blocked a checkout and how
// much stock is actually available.
type InsufficientStockError struct {
	Product   string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s: requested %d, available %d",
		e.Product, e.Requested, e.Available)
}
