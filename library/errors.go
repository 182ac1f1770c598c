package library

import (
	"errors"
	"fmt"
)

// The three error kinds surfaced by the core. The operation layer reports
// and re-prompts on not-found and validation failures; integrity violations
// are refused outright.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid input")
	ErrIntegrity  = errors.New("integrity violation")
)

// Specializations, each attached to its kind so errors.Is works on both the
// sentinel and the kind.
var (
	// ErrNoAvailableCopies signals the distinct no-capacity condition on borrow.
	ErrNoAvailableCopies = fmt.Errorf("%w: no available copies for this book", ErrValidation)

	// ErrAlreadyReturned signals a return of a transaction not in borrowed status.
	ErrAlreadyReturned = fmt.Errorf("%w: book has already been returned", ErrValidation)

	// ErrUsernameTaken signals a registration or rename against an existing username.
	ErrUsernameTaken = fmt.Errorf("%w: username already exists", ErrValidation)

	// ErrInvalidCredentials signals a failed authentication attempt.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrValidation)

	// ErrSuperAdmin signals an attempt to delete or demote the super administrator.
	ErrSuperAdmin = fmt.Errorf("%w: super administrator cannot be modified or removed", ErrIntegrity)

	// ErrCopiesOutstanding signals a book deletion while copies are on loan.
	ErrCopiesOutstanding = fmt.Errorf("%w: book has copies currently issued", ErrIntegrity)

	// ErrAdminCannotBorrow signals a borrow attempt by an administrator account.
	ErrAdminCannotBorrow = fmt.Errorf("%w: borrowing is restricted to members", ErrValidation)
)

// NotFoundError reports that an entity lookup matched no row.
type NotFoundError struct {
	Entity string // "user", "book", "transaction", "address"
	Ref    string // id or username the lookup used
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Ref)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(entity string, ref any) error {
	return &NotFoundError{Entity: entity, Ref: fmt.Sprint(ref)}
}

// ValidationError reports malformed or business-rule-violating input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidation reports whether err is a validation failure (including the
// no-capacity specialization).
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsIntegrity reports whether err is an integrity violation.
func IsIntegrity(err error) bool { return errors.Is(err, ErrIntegrity) }
