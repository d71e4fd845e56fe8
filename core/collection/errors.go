package collection

import (
	"fmt"
	"strings"
)

// NotFoundError lists requested collection names that are unknown or not
// publicly searchable.
type NotFoundError struct {
	Names []string
}

func (err NotFoundError) Error() string {
	quoted := make([]string, len(err.Names))
	for i, name := range err.Names {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return "tree not found: " + strings.Join(quoted, ", ")
}

type InvalidNameError struct {
	Name string
}

func (err InvalidNameError) Error() string {
	return fmt.Sprintf("invalid collection name: %q", err.Name)
}
