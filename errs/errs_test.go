package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApiErrWrapsSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    *ApiErr
		status int
		is     []error
	}{
		{"not found", NewNotFound("play"), http.StatusNotFound, []error{ErrNotFound}},
		{"already exists", NewAlreadyExists("catan.md"), http.StatusConflict, []error{ErrAlreadyExists, ErrConflict}},
		{"invalid token", NewInvalidTokenError(), http.StatusUnauthorized, []error{ErrInvalidToken, ErrUnauthorized}},
		{"config missing", NewConfigMissingError("GAS_ENDPOINT"), http.StatusInternalServerError, []error{ErrConfigMissing}},
		{"remote fetch", NewRemoteFetchError("GAS GET failed: 503", nil), http.StatusBadGateway, []error{ErrRemoteFetch}},
		{"body too large", NewMaxBodySizeExceededError(512), http.StatusRequestEntityTooLarge, []error{ErrMaxBodySizeExceeded}},
		{"unknown collection", NewUnknownCollectionError("plays"), http.StatusBadRequest, []error{ErrUnknownCollection}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode)
			for _, target := range tt.is {
				assert.ErrorIs(t, tt.err, target)
			}

			wrapped := fmt.Errorf("handler: %w", tt.err)
			var apiErr *ApiErr
			assert.True(t, errors.As(wrapped, &apiErr))
		})
	}
}

func TestCheckers(t *testing.T) {
	assert.True(t, IsAlreadyExists(NewAlreadyExists("a.md")))
	assert.True(t, IsRemoteFetchError(fmt.Errorf("list: %w", NewRemoteFetchError("x", nil))))
	assert.True(t, IsRemoteSubmitError(NewRemoteSubmitError("GAS POST failed: 500", nil)))
	assert.True(t, IsMaxBodySizeExceededError(NewMaxBodySizeExceededError(512)))
	assert.False(t, IsAlreadyExists(NewNotFound("game")))
	assert.False(t, IsRemoteFetchError(errors.New("GAS GET failed: 503")))
}

func TestErrorMessages(t *testing.T) {
	err := NewConfigMissingError("GAS_ENDPOINT")
	assert.Equal(t, "configuration missing: GAS_ENDPOINT not set", err.Error())
	assert.Equal(t, "GAS_ENDPOINT", err.Field)

	err = NewRemoteFetchError("request failed", errors.New("connection refused"))
	assert.Equal(t, "remote fetch error: request failed -> connection refused", err.GetFullError())

	nested := NewContentWriteError("/tmp/x.md", errors.New("disk full"))
	assert.Contains(t, nested.GetFullError(), "-> disk full")
}
