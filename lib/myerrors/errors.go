package myerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation    Kind = "validation"
	KindConfiguration Kind = "configuration"
	KindGateway       Kind = "gateway"
	KindParse         Kind = "parse"
	KindOther         Kind = "other"
)

type httpErrorCoder interface {
	error
	GetHTTPErrorCode() int
}

type httpError struct {
	httpCode int
	kind     Kind
	err      error
}

func (e httpError) Error() string {
	return fmt.Sprintf("status: %d, err: %s", e.httpCode, e.err.Error())
}

func (e httpError) GetHTTPErrorCode() int {
	return e.httpCode
}

func (e httpError) Unwrap() error {
	return e.err
}

// Cause returns the message of the wrapped error without the status prefix.
func (e httpError) Cause() string {
	return e.err.Error()
}

func newError(httpCode int, kind Kind, err error) *httpError {
	return &httpError{
		httpCode: httpCode,
		kind:     kind,
		err:      err,
	}
}

func NewInvalidInputError(err error) *httpError {
	return newError(http.StatusBadRequest, KindValidation, err)
}

func NewInvalidInputErrorf(format string, args ...interface{}) *httpError {
	return NewInvalidInputError(fmt.Errorf(format, args...))
}

func NewUnsupportedMediaTypeError(err error) *httpError {
	return newError(http.StatusUnsupportedMediaType, KindOther, err)
}

func NewNotFoundError(err error) *httpError {
	return newError(http.StatusNotFound, KindOther, err)
}

func NewAuthenticationError(err error) *httpError {
	return newError(http.StatusForbidden, KindOther, err)
}

func NewInternalError(err error) *httpError {
	return newError(http.StatusInternalServerError, KindOther, err)
}

// NewConfigurationError signals a server credential that is not set.
func NewConfigurationError(err error) *httpError {
	return newError(http.StatusInternalServerError, KindConfiguration, err)
}

// NewGatewayError wraps a failure of a downstream payment-gateway call.
func NewGatewayError(err error) *httpError {
	return newError(http.StatusInternalServerError, KindGateway, err)
}

// NewParseError wraps a body that could not be decoded at all.
func NewParseError(err error) *httpError {
	return newError(http.StatusInternalServerError, KindParse, err)
}

func NewNotImplementedError(err error) *httpError {
	return newError(http.StatusNotImplemented, KindOther, err)
}

func NewUnavailableError(err error) *httpError {
	return newError(http.StatusServiceUnavailable, KindOther, err)
}

func GetHTTPStatus(err error) int {
	var coder httpErrorCoder
	if err != nil && errors.As(err, &coder) {
		return coder.GetHTTPErrorCode()
	}
	return http.StatusInternalServerError
}

func GetKind(err error) Kind {
	var myErr *httpError
	if err != nil && errors.As(err, &myErr) {
		return myErr.kind
	}
	return KindOther
}

// GetCause strips the status prefix of errors created in this package.
func GetCause(err error) string {
	if err == nil {
		return ""
	}
	var myErr *httpError
	if errors.As(err, &myErr) {
		return myErr.Cause()
	}
	return err.Error()
}
