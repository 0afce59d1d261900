// Package apperr defines the business error taxonomy shared by the service
// and API layers. Every expected failure carries a stable code and the HTTP
// status it maps to, so the API boundary can translate it mechanically.
package apperr

import (
	"errors"
	"net/http"
)

// Error is an expected business failure.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// 基本错误
var (
	ErrInternal     = &Error{Code: "INTERNAL_SERVER_ERROR", Message: "internal server error", Status: http.StatusInternalServerError}
	ErrInvalidInput = &Error{Code: "INVALID_INPUT", Message: "invalid input", Status: http.StatusBadRequest}
	ErrValidation   = &Error{Code: "VALIDATION_ERROR", Message: "validation failed", Status: http.StatusBadRequest}
	ErrUnauthorized = &Error{Code: "UNAUTHORIZED", Message: "authentication required", Status: http.StatusUnauthorized}
	ErrForbidden    = &Error{Code: "FORBIDDEN", Message: "access denied", Status: http.StatusForbidden}
	ErrNotFound     = &Error{Code: "RESOURCE_NOT_FOUND", Message: "requested resource not found", Status: http.StatusNotFound}
)

// 认证 / 用户相关
var (
	ErrUserNotFound      = &Error{Code: "USER_NOT_FOUND", Message: "user not found", Status: http.StatusNotFound}
	ErrDuplicateUsername = &Error{Code: "DUPLICATE_USERNAME", Message: "username is already in use", Status: http.StatusConflict}
	ErrDuplicateEmail    = &Error{Code: "DUPLICATE_EMAIL", Message: "email is already in use", Status: http.StatusConflict}
	ErrInvalidPassword   = &Error{Code: "INVALID_PASSWORD", Message: "password is incorrect", Status: http.StatusUnauthorized}
	ErrDuplicateResource = &Error{Code: "DUPLICATE_RESOURCE", Message: "resource already exists", Status: http.StatusConflict}
)

// 旅行 / 旅行日志
var (
	ErrTripNotFound           = &Error{Code: "TRIP_NOT_FOUND", Message: "trip not found", Status: http.StatusNotFound}
	ErrTripAccessDenied       = &Error{Code: "TRIP_ACCESS_DENIED", Message: "no permission to access this trip", Status: http.StatusForbidden}
	ErrTravelLogNotFound      = &Error{Code: "TRAVEL_LOG_NOT_FOUND", Message: "travel log not found", Status: http.StatusNotFound}
	ErrTravelLogAccessDenied  = &Error{Code: "TRAVEL_LOG_ACCESS_DENIED", Message: "no permission to access this travel log", Status: http.StatusForbidden}
	ErrTagNotFound            = &Error{Code: "TAG_NOT_FOUND", Message: "tag not found", Status: http.StatusNotFound}
	ErrDuplicateTagName       = &Error{Code: "HASHTAG_EXISTS", Message: "tag name already exists", Status: http.StatusConflict}
	ErrDataIntegrityViolation = &Error{Code: "DATA_INTEGRITY_VIOLATION", Message: "data integrity constraint violated", Status: http.StatusBadRequest}
)

// From extracts an *Error from err, if err is (or wraps) one.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// WithMessage returns a copy of e carrying a more specific message while
// keeping the code and status stable.
func (e *Error) WithMessage(message string) *Error {
	return &Error{Code: e.Code, Message: message, Status: e.Status}
}
