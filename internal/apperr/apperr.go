// Package apperr is the error taxonomy shared by every service and handler.
package apperr

import (
	"errors"
	"net/http"
)

// ErrNotFound is returned by stores when no row matches.
var ErrNotFound = errors.New("record not found")

// Kind classifies an error for status mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindMissingIdentity
	KindInvalidPhoneFormat
	KindInvalidOrExpiredPin
	KindConfiguration
	KindUnauthorized
	KindForbidden
	KindUpstreamRejected
	KindDelivery
	KindNotFound
	KindReconciliationGap
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindMissingIdentity:
		return "MissingIdentity"
	case KindInvalidPhoneFormat:
		return "InvalidPhoneFormat"
	case KindInvalidOrExpiredPin:
		return "InvalidOrExpiredPin"
	case KindConfiguration:
		return "ConfigurationError"
	case KindUnauthorized:
		return "Unauthorized"
	case KindForbidden:
		return "Forbidden"
	case KindUpstreamRejected:
		return "UpstreamRejected"
	case KindDelivery:
		return "DeliveryError"
	case KindNotFound:
		return "NotFound"
	case KindReconciliationGap:
		return "ReconciliationGap"
	default:
		return "InternalError"
	}
}

// Error carries a Kind, a caller-safe message and the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and message to err.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error    { return New(KindValidation, message) }
func Configuration(message string) *Error { return New(KindConfiguration, message) }
func Forbidden(message string) *Error     { return New(KindForbidden, message) }
func NotFound(message string) *Error      { return New(KindNotFound, message) }

// KindOf reports the Kind of err. Bare ErrNotFound counts as KindNotFound.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	return KindInternal
}

// Is reports whether err has the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Status maps err to an HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation, KindMissingIdentity, KindInvalidPhoneFormat, KindInvalidOrExpiredPin, KindUpstreamRejected:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text safe to put in a response body.
// Configuration and internal failures never leak their detail.
func PublicMessage(err error) string {
	switch KindOf(err) {
	case KindInternal:
		return "Internal server error"
	case KindConfiguration:
		return "Service is not configured"
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Record not found"
}
