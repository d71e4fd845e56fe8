package search

import (
	"errors"
	"fmt"

	"github.com/goto/metasearch/core/collection"
	"github.com/goto/metasearch/core/credential"
)

// Validation error kinds.
const (
	KindBadDate        = "bad date format"
	KindInvalidTree    = "invalid collection name"
	KindInvalidSurname = "invalid surname policy"
)

// Error classes reported to callers and attached to request metrics.
const (
	ClassNone         = "none"
	ClassInvalidKey   = "invalid key"
	ClassBadDate      = "bad date"
	ClassInvalidTree  = "invalid collection name"
	ClassTreeNotFound = "tree not found"
	ClassBadRequest   = "bad request"
	ClassInternal     = "internal"
)

// ValidationError is returned for malformed request parameters.
type ValidationError struct {
	Field string
	Value string
	Kind  string
}

func (err ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %q", err.Kind, err.Field, err.Value)
}

// ErrorClass maps an error returned by Service.Search to its class.
func ErrorClass(err error) string {
	var (
		authErr     credential.AuthError
		validErr    ValidationError
		notFoundErr collection.NotFoundError
	)
	switch {
	case err == nil:
		return ClassNone
	case errors.As(err, &authErr):
		return ClassInvalidKey
	case errors.As(err, &validErr):
		switch validErr.Kind {
		case KindBadDate:
			return ClassBadDate
		case KindInvalidTree:
			return ClassInvalidTree
		}
		return ClassBadRequest
	case errors.As(err, &notFoundErr):
		return ClassTreeNotFound
	}
	return ClassInternal
}
