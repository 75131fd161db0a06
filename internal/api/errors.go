package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/studygroup-api/internal/api/shared"
	"github.com/phrazzld/studygroup-api/internal/domain"
	"github.com/phrazzld/studygroup-api/internal/service"
	"github.com/phrazzld/studygroup-api/internal/service/confirm"
	"github.com/phrazzld/studygroup-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Identity errors
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrListNotFound),
		errors.Is(err, service.ErrTopicNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, confirm.ErrConfirmationNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrPastEvent):
		return http.StatusConflict

	case errors.Is(err, confirm.ErrConfirmationExpired):
		return http.StatusGone

	case errors.Is(err, service.ErrNotMember):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidTopicStatus),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, domain.ErrInvalidJoinCode),
		errors.Is(err, confirm.ErrUnknownKind),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrCodeSpaceExhausted):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "User identity required"

	case errors.Is(err, service.ErrForbidden):
		return "Only the group creator can do this"

	case errors.Is(err, service.ErrGroupNotFound):
		return "Group not found"
	case errors.Is(err, service.ErrListNotFound):
		return "Study list not found"
	case errors.Is(err, service.ErrTopicNotFound):
		return "Topic not found"
	case errors.Is(err, service.ErrEventNotFound):
		return "Event not found"
	case errors.Is(err, service.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, service.ErrInvalidCode):
		return "No group uses this code"
	case errors.Is(err, confirm.ErrConfirmationNotFound):
		return "Confirmation not found"

	case errors.Is(err, service.ErrAlreadyMember):
		return "You are already a member of this group"
	case errors.Is(err, service.ErrPastEvent):
		return "Past events cannot be deleted"
	case errors.Is(err, confirm.ErrConfirmationExpired):
		return "Confirmation expired"
	case errors.Is(err, service.ErrNotMember):
		return "User is not a member of this group"

	case errors.Is(err, service.ErrEmptyText):
		return "Comment text cannot be empty"
	case errors.Is(err, domain.ErrEmptyInput):
		return "Required text cannot be empty"
	case errors.Is(err, domain.ErrInvalidTopicStatus):
		return "Invalid topic status"
	case errors.Is(err, domain.ErrInvalidPriority):
		return "Invalid topic priority"
	case errors.Is(err, domain.ErrInvalidJoinCode):
		return "Invalid join code"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"
	case errors.Is(err, confirm.ErrUnknownKind):
		return "Unknown confirmation kind"

	case errors.Is(err, service.ErrCodeSpaceExhausted):
		return "Could not allocate a join code, try again"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// details. fallback replaces the generic message for unexpected errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// HandleValidationError answers 400 with a sanitized validation message.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'CreateTopicRequest.Priority' Error:Field validation for 'Priority' failed on the 'oneof' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "uuid":
		return "invalid ID format"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
