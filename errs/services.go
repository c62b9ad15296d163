package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Configuration & Environment Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
	ErrConfigInvalid = errors.New("configuration invalid")
)

// Upstream Errors
var (
	ErrRemoteFetch        = errors.New("remote fetch error")
	ErrRemoteSubmit       = errors.New("remote submit error")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrImageUpload        = errors.New("image upload failed")
)

// NewConfigMissingError reports a setting that must be present before an integration can run.
func NewConfigMissingError(key string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("%s not set", key),
		Field:      key,
	}
}

func NewConfigInvalidError(key string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("%s is invalid", key),
		Field:      key,
		Cause:      cause,
	}
}

// NewRemoteFetchError carries the upstream message of a failed remote read.
func NewRemoteFetchError(message string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrRemoteFetch,
		Details:    message,
		Cause:      cause,
	}
}

func NewRemoteSubmitError(message string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrRemoteSubmit,
		Details:    message,
		Cause:      cause,
	}
}

func NewServiceUnavailableError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrServiceUnavailable,
		Details:    fmt.Sprintf("%s is not configured on the server", service),
	}
}

func NewImageUploadError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrImageUpload,
		Details:    "Unknown error during image upload",
		Cause:      cause,
	}
}

func IsRemoteFetchError(err error) bool {
	return errors.Is(err, ErrRemoteFetch)
}

func IsRemoteSubmitError(err error) bool {
	return errors.Is(err, ErrRemoteSubmit)
}
