// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"errors"
	"fmt"
	"net/http"

	oaerrors "github.com/go-openapi/errors"
)

var (
	ErrNoData        = errors.New("no data")
	ErrInvalidBounds = errors.New("minimum bound exceeds maximum bound")
	ErrDuplicate     = errors.New("duplicate entry")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
)

// Error carries an HTTP status code next to its cause. It satisfies the
// go-openapi errors.Error interface so it can be rendered by errors.ServeError.
type Error struct {
	code  int32
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.msg != "" {
		return e.msg
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return http.StatusText(int(e.code))
}

func (e *Error) Code() int32 {
	return e.code
}

func (e *Error) Unwrap() error {
	return e.cause
}

var _ oaerrors.Error = (*Error)(nil)

// InvalidInput wraps cause as a 400 error. An optional message replaces the
// cause's text in the response body.
func InvalidInput(cause error, format string, args ...any) error {
	return &Error{code: http.StatusBadRequest, msg: sprintf(format, args...), cause: cause}
}

// NotFound builds a 404 error.
func NotFound(format string, args ...any) error {
	return &Error{code: http.StatusNotFound, msg: sprintf(format, args...)}
}

func Unauthorized() error {
	return &Error{code: http.StatusUnauthorized, cause: ErrUnauthorized}
}

func Forbidden() error {
	return &Error{code: http.StatusForbidden, cause: ErrForbidden}
}

func IsInvalidInput(err error) bool {
	return hasCode(err, http.StatusBadRequest)
}

func IsNotFound(err error) bool {
	return hasCode(err, http.StatusNotFound)
}

// StatusCode returns the HTTP status associated with err, 500 for anything unclassified.
func StatusCode(err error) int {
	var e oaerrors.Error
	if errors.As(err, &e) {
		return int(e.Code())
	}
	return http.StatusInternalServerError
}

func hasCode(err error, code int) bool {
	var e oaerrors.Error
	return errors.As(err, &e) && int(e.Code()) == code
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
