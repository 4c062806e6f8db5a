package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The processors surface exactly four error kinds. Anything coming up from
// the store that is not one of these is wrapped in a PersistenceError at the
// processor boundary, so callers never see raw driver errors.

// ValidationError rejects a request before any write happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a referenced resource that does not exist. A cart
// line naming an unknown product is rejected, never silently dropped.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InsufficientStockError aborts an entire operation when a requested
// quantity exceeds what is available. It carries the available quantity so
// the caller can render it.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// PersistenceError means the atomic unit failed to commit. The unit has been
// rolled back; no partial state is visible.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// isDomainError reports whether err already belongs to the taxonomy above.
func isDomainError(err error) bool {
	var (
		ve *ValidationError
		nf *NotFoundError
		is *InsufficientStockError
		pe *PersistenceError
	)
	return errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &is) || errors.As(err, &pe)
}

// wrapStoreErr maps a failed atomic unit to the public taxonomy: domain
// errors pass through untouched, everything else becomes a PersistenceError.
func wrapStoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// isRecordNotFound spares call sites the gorm import.
func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
