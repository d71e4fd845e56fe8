package credential

import "fmt"

const (
	ReasonMissingKey  = "missing key"
	ReasonKeyMismatch = "key mismatch"
)

// AuthError is returned when a caller could not be authenticated.
type AuthError struct {
	Reason string
}

func (err AuthError) Error() string {
	return fmt.Sprintf("invalid key: %s", err.Reason)
}
