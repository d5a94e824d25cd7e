package service

import (
	"errors"
	"fmt"

	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

// Error kinds. Every error returned by a service matches exactly one of
// these through errors.Is.
var (
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrAlreadyExists        = errors.New("already exists")
	ErrStorage              = errors.New("storage error")
)

// ErrInvalidEmailFormat is the cause of the ValidationError returned for a
// malformed email address.
var ErrInvalidEmailFormat = errors.New("invalid email format")

// Entity names used in NotFoundError and AlreadyExistsError.
const (
	EntityUser        = "user"
	EntityCategory    = "category"
	EntityTransaction = "transaction"
	EntityTag         = "tag"
	EntityBudget      = "budget"
	EntitySavingGoal  = "saving goal"
)

// NotFoundError reports a missing entity, or an empty result for a query
// that expects at least one.
type NotFoundError struct {
	Entity string
	Key    any
	// Plural marks an empty by-user collection rather than a missing record.
	Plural bool
	Err    error
}

func (e *NotFoundError) Error() string {
	if e.Plural {
		return fmt.Sprintf("no %s found for user %v", plural(e.Entity), e.Key)
	}
	return fmt.Sprintf("%s %v not found", e.Entity, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
func (e *NotFoundError) Unwrap() error        { return e.Err }

func plural(entity string) string {
	switch entity {
	case EntityCategory:
		return "categories"
	default:
		return entity + "s"
	}
}

// ValidationError reports bad input. Locally detected problems carry the
// field and the offending value; problems reported by storage carry a
// summary and the storage error as cause.
type ValidationError struct {
	Field   string
	Value   any
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return e.Message
	}
	if s, ok := e.Value.(string); ok {
		return fmt.Sprintf("%s (got %q)", e.Message, s)
	}
	return fmt.Sprintf("%s (got %v)", e.Message, e.Value)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *ValidationError) Unwrap() error        { return e.Err }

// AlreadyExistsError reports a uniqueness violation.
type AlreadyExistsError struct {
	Entity string
	Key    any
	Err    error
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %v already exists", e.Entity, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool { return target == ErrAlreadyExists }
func (e *AlreadyExistsError) Unwrap() error        { return e.Err }

// StorageError wraps a failure below the service layer. Error returns only
// the fixed summary; the cause is reachable through Unwrap.
type StorageError struct {
	Summary string
	Err     error
}

func (e *StorageError) Error() string        { return e.Summary }
func (e *StorageError) Is(target error) bool { return target == ErrStorage }
func (e *StorageError) Unwrap() error        { return e.Err }

func invalid(field string, value any, message string) error {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func notFound(entity string, key any) error {
	return &NotFoundError{Entity: entity, Key: key}
}

func noneFound(entity string, userID int) error {
	return &NotFoundError{Entity: entity, Key: userID, Plural: true}
}

// translate maps a repository error onto the service taxonomy.
// key identifies the record the call was about; summary is the fixed
// message used for validation and storage failures.
func translate(err error, entity string, key any, summary string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return &NotFoundError{Entity: entity, Key: key, Err: err}
	case errors.Is(err, storage.ErrInvalidArgument):
		return &ValidationError{Message: summary, Err: err}
	case errors.Is(err, storage.ErrConflict):
		return &AlreadyExistsError{Entity: entity, Key: key, Err: err}
	default:
		return &StorageError{Summary: summary, Err: err}
	}
}
