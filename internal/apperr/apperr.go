// Package apperr defines the error taxonomy shared by every domain package.
//
// Callers match categories with errors.Is against the sentinels; typed errors
// carry the detail needed to render a useful message.
package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrConflict          = errors.New("conflict")
	ErrStateTransition   = errors.New("invalid state transition")
	ErrNotFound          = errors.New("not found")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = errors.New("forbidden")
)

// ValidationError lists every problem found in a request. Nothing is written
// when one is returned.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError from one or more problems.
func Invalid(problems ...string) error {
	return &ValidationError{Problems: problems}
}

// InsufficientStockError is raised when an exit movement would take a
// product below zero.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Product   string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	name := e.Product
	if name == "" {
		name = e.ProductID.String()
	}

	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d", name, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// StateTransitionError is returned when an entity cannot move from its
// current status to the requested one.
type StateTransitionError struct {
	Entity string
	From   string
	To     string
	Reason string
}

func (e *StateTransitionError) Error() string {
	msg := fmt.Sprintf("%s cannot move from %s to %s", e.Entity, e.From, e.To)
	if e.To == "" {
		msg = fmt.Sprintf("%s is %s", e.Entity, e.From)
	}

	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *StateTransitionError) Is(target error) bool {
	return target == ErrStateTransition
}

// Locked reports an entity whose current state forbids any change.
func Locked(entity, state, reason string) error {
	return &StateTransitionError{Entity: entity, From: state, Reason: reason}
}

// Conflict wraps ErrConflict with a formatted message.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound with the missing entity name.
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}
