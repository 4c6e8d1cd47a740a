package errors

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalid         = errors.New("invalid")
	ErrConflict        = errors.New("conflict")
	ErrTooMany         = errors.New("too many requests")
	ErrInternal        = errors.New("internal")
	ErrExpired         = errors.New("share link expired")
	ErrLimitExceeded   = errors.New("share link access limit exceeded")
	ErrPasswordNeeded  = errors.New("share link password required")
	ErrInvalidPassword = errors.New("invalid share password")
	ErrBadFormat       = errors.New("unsupported export format")
	ErrBadContentType  = errors.New("unsupported content type")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
