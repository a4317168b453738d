package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a service-level failure so the HTTP layer can map it to a
// status code in one place instead of matching on message strings.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuthorization
	KindGateCode
	KindInvalidCredentials
	KindNotFound
	KindInvalidToken
	KindExpiredToken
	KindUnauthenticated
)

// Error carries a classified kind plus the user-facing message. The wrapped
// cause (if any) is for logs only and never reaches the client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation is shorthand for a 400 input error.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// KindOf extracts the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message, or a generic one for
// unclassified errors so internals never leak to clients.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Error en el servidor."
}

// StatusOf maps a classified error to its HTTP status code.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict, KindGateCode, KindInvalidCredentials,
		KindInvalidToken, KindExpiredToken:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
