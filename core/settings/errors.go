package settings

import "fmt"

// InvalidError is returned for a rejected administrative update.
type InvalidError struct {
	Field  string
	Reason string
}

func (err InvalidError) Error() string {
	return fmt.Sprintf("invalid %s: %s", err.Field, err.Reason)
}
