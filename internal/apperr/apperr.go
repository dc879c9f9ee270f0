// Package apperr classifies the failures the billing and crediting engines
// can report. Every error that leaves a usecase maps to exactly one Kind.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation         Kind = "ValidationError"
	KindNotFound           Kind = "NotFound"
	KindForbidden          Kind = "Forbidden"
	KindUnauthorized       Kind = "Unauthorized"
	KindAlreadyClaimed     Kind = "AlreadyClaimed"
	KindInsufficientStock  Kind = "InsufficientStock"
	KindInsufficientPoints Kind = "InsufficientPoints"
	KindStorage            Kind = "StorageError"
)

var (
	ErrValidation         = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrAlreadyClaimed     = errors.New("bill already claimed")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrStorage            = errors.New("storage error")
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrValidation, KindValidation},
	{ErrNotFound, KindNotFound},
	{ErrForbidden, KindForbidden},
	{ErrUnauthorized, KindUnauthorized},
	{ErrAlreadyClaimed, KindAlreadyClaimed},
	{ErrInsufficientStock, KindInsufficientStock},
	{ErrInsufficientPoints, KindInsufficientPoints},
	{ErrStorage, KindStorage},
}

// InsufficientStockError reports the line that could not be served and the
// stock that was left when the check ran.
type InsufficientStockError struct {
	ItemID    int64
	ItemName  string
	Remaining int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s. Only %d left", e.ItemName, e.Remaining)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// KindOf classifies err. Errors that carry no known sentinel are storage
// failures: they come from the driver, the network or a constraint.
func KindOf(err error) Kind {
	if k, ok := lookup(err); ok {
		return k
	}
	return KindStorage
}

func lookup(err error) (Kind, bool) {
	if err == nil {
		return "", false
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind, true
		}
	}
	return "", false
}

// Validation builds a ValidationError with a human readable reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound builds a NotFound error naming what was missing.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Storage tags a driver level failure as a StorageError while keeping the
// cause in the chain. Errors that are already classified pass through.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := lookup(err); ok {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

// Message is the text safe to hand back to a caller.
func Message(err error) string {
	if KindOf(err) == KindStorage {
		return "storage error"
	}
	return err.Error()
}
