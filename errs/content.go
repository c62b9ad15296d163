package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Content Store Errors
var (
	ErrAlreadyExists     = errors.New("already exists")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrInvalidEntryID    = errors.New("invalid entry identifier")
	ErrContentWrite      = errors.New("content write failed")
)

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewAlreadyExists is returned when a write would replace an existing file without permission.
func NewAlreadyExists(filename string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s %w: %w", filename, ErrAlreadyExists, ErrConflict),
		Details:    "Pass overwrite=true to replace it.",
		Field:      "overwrite",
	}
}

func NewUnknownCollectionError(collection string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrUnknownCollection,
		Details:    fmt.Sprintf("Unknown collection %q", collection),
		Field:      "collection",
	}
}

func NewInvalidEntryIDError(reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidEntryID,
		Details:    reason,
		Field:      "entryId",
	}
}

func NewContentWriteError(path string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrContentWrite,
		Details:    fmt.Sprintf("Failed to write %s", path),
		Cause:      cause,
	}
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}
