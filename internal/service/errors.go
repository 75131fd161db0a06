package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in ServiceError
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrGroupNotFound indicates the group does not exist or is not on the
	// user's dashboard. API layer should map this to HTTP 404 Not Found.
	ErrGroupNotFound = errors.New("group not found")

	// ErrListNotFound indicates the study list is not part of the group.
	ErrListNotFound = errors.New("study list not found")

	// ErrTopicNotFound indicates the topic is in no study list of the group.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrEventNotFound indicates the event is not scheduled in the group.
	ErrEventNotFound = errors.New("study event not found")

	// ErrUserNotFound indicates the referenced user is unknown.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCode indicates no group uses the join code.
	// API layer should map this to HTTP 404 Not Found.
	ErrInvalidCode = errors.New("invalid join code")

	// ErrAlreadyMember indicates the user already belongs to the group and
	// sees it. API layer should map this to HTTP 409 Conflict.
	ErrAlreadyMember = errors.New("user is already a member of the group")

	// ErrNotMember indicates an assignment to someone outside the group.
	// API layer should map this to HTTP 422 Unprocessable Entity.
	ErrNotMember = errors.New("user is not a member of the group")

	// ErrForbidden indicates a creator-only action attempted by someone else.
	// API layer should map this to HTTP 403 Forbidden.
	ErrForbidden = errors.New("only the group creator may do this")

	// ErrPastEvent indicates an attempt to delete an event that already started.
	// API layer should map this to HTTP 409 Conflict.
	ErrPastEvent = errors.New("event is in the past")

	// ErrEmptyInput is the domain's blank required text error.
	ErrEmptyInput = domain.ErrEmptyInput

	// ErrEmptyText indicates blank comment text. It matches ErrEmptyInput.
	ErrEmptyText = domain.ErrEmptyCommentText

	// ErrCodeSpaceExhausted indicates every generated join code collided.
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique join code")
)

// sentinels are returned unwrapped by NewServiceError.
var sentinels = []error{
	ErrGroupNotFound,
	ErrListNotFound,
	ErrTopicNotFound,
	ErrEventNotFound,
	ErrUserNotFound,
	ErrInvalidCode,
	ErrAlreadyMember,
	ErrNotMember,
	ErrForbidden,
	ErrPastEvent,
	ErrEmptyText,
	ErrCodeSpaceExhausted,
}

// storeErrors maps store-level errors onto service-level ones.
var storeErrors = []struct {
	from error
	to   error
}{
	{store.ErrGroupNotFound, ErrGroupNotFound},
	{store.ErrNotVisible, ErrGroupNotFound},
	{store.ErrStudyListNotFound, ErrListNotFound},
	{store.ErrTopicNotFound, ErrTopicNotFound},
	{store.ErrEventNotFound, ErrEventNotFound},
	{store.ErrUserNotFound, ErrUserNotFound},
	{store.ErrAlreadyMember, ErrAlreadyMember},
	{store.ErrMembershipNotFound, ErrGroupNotFound},
}

// ServiceError wraps errors from the services with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_group", "delete_event")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
// It returns known sentinel errors directly without wrapping, and maps
// store not-found and duplicate errors onto their service equivalents.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	for _, m := range storeErrors {
		if errors.Is(err, m.from) {
			return m.to
		}
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
