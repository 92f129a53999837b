// Package apperr defines the error taxonomy shared by the engines and the
// HTTP layer. Services wrap these with %w; handlers map them to status codes.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrValidation         = errors.New("invalid input")
	ErrNotFound           = errors.New("record not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrTransactionAborted = errors.New("transaction aborted")
)

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// InsufficientStockError carries the exact shortfall so callers can report
// how much was requested against what is available.
type InsufficientStockError struct {
	InventoryID  uint
	DepartmentID *uint
	Requested    int64
	Available    int64
}

func (e *InsufficientStockError) Error() string {
	if e.DepartmentID != nil {
		return fmt.Sprintf("insufficient stock in department %d for inventory %d: requested %d, available %d",
			*e.DepartmentID, e.InventoryID, e.Requested, e.Available)
	}
	return fmt.Sprintf("insufficient stock for inventory %d: requested %d, available %d",
		e.InventoryID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// HTTPStatus maps a service error to the status the REST layer responds with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInsufficientStock):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
