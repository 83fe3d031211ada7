package myerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	myErr := fmt.Errorf("my error")

	testCases := []struct {
		name       string
		in         error
		httpStatus int
		kind       Kind
		errorText  string
	}{
		{
			name:       "No http error",
			in:         myErr,
			httpStatus: 500,
			kind:       KindOther,
			errorText:  "my error",
		},
		{
			name:       "Invalid input error",
			in:         NewInvalidInputError(myErr),
			httpStatus: 400,
			kind:       KindValidation,
			errorText:  "status: 400, err: my error",
		},
		{
			name:       "Invalid input errorf",
			in:         NewInvalidInputErrorf("%s: %d", myErr.Error(), 123),
			httpStatus: 400,
			kind:       KindValidation,
			errorText:  "status: 400, err: my error: 123",
		},
		{
			name:       "Authentication error",
			in:         NewAuthenticationError(myErr),
			httpStatus: 403,
			kind:       KindOther,
			errorText:  "status: 403, err: my error",
		},
		{
			name:       "Not found error",
			in:         NewNotFoundError(myErr),
			httpStatus: 404,
			kind:       KindOther,
			errorText:  "status: 404, err: my error",
		},
		{
			name:       "UnsupportedMedia error",
			in:         NewUnsupportedMediaTypeError(myErr),
			httpStatus: 415,
			kind:       KindOther,
			errorText:  "status: 415, err: my error",
		},
		{
			name:       "Internal error",
			in:         NewInternalError(myErr),
			httpStatus: 500,
			kind:       KindOther,
			errorText:  "status: 500, err: my error",
		},
		{
			name:       "Configuration error",
			in:         NewConfigurationError(myErr),
			httpStatus: 500,
			kind:       KindConfiguration,
			errorText:  "status: 500, err: my error",
		},
		{
			name:       "Gateway error",
			in:         NewGatewayError(myErr),
			httpStatus: 500,
			kind:       KindGateway,
			errorText:  "status: 500, err: my error",
		},
		{
			name:       "Parse error",
			in:         NewParseError(myErr),
			httpStatus: 500,
			kind:       KindParse,
			errorText:  "status: 500, err: my error",
		},
		{
			name:       "Not implemented error",
			in:         NewNotImplementedError(myErr),
			httpStatus: 501,
			kind:       KindOther,
			errorText:  "status: 501, err: my error",
		},
		{
			name:       "Not available error",
			in:         NewUnavailableError(myErr),
			httpStatus: 503,
			kind:       KindOther,
			errorText:  "status: 503, err: my error",
		},
		{
			name:       "Wrapped validation error",
			in:         fmt.Errorf("outer: %w", NewInvalidInputError(myErr)),
			httpStatus: 400,
			kind:       KindValidation,
			errorText:  "outer: status: 400, err: my error",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.httpStatus, GetHTTPStatus(tc.in))
			assert.Equal(t, tc.kind, GetKind(tc.in))
			assert.Equal(t, tc.errorText, tc.in.Error())
		})
	}
}

func TestCause(t *testing.T) {
	root := errors.New("connection refused")

	t.Run("Strips status prefix", func(t *testing.T) {
		err := NewGatewayError(root)
		assert.Equal(t, "connection refused", GetCause(err))
		assert.ErrorIs(t, err, root)
	})

	t.Run("Plain error", func(t *testing.T) {
		assert.Equal(t, "connection refused", GetCause(root))
	})

	t.Run("Nil", func(t *testing.T) {
		assert.Equal(t, "", GetCause(nil))
	})
}
