package collection

//go:generate mockery --name=Repository -r --case underscore --with-expecter --structname CollectionRepository --filename collection_repository.go --output=./mocks

import (
	"context"
)

// Collection is one searchable genealogical dataset ("tree") owned by the host.
type Collection struct {
	ID        int    `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Title     string `json:"title" yaml:"title"`
	SortOrder int    `json:"sort_order" yaml:"sort_order"`
	Public    bool   `json:"public" yaml:"public"`
	Enabled   bool   `json:"enabled" yaml:"enabled"`
}

// Label renders the collection the way the host lists trees.
func (c Collection) Label() string {
	if c.Title == "" {
		return c.Name
	}
	return c.Name + " (" + c.Title + ")"
}

// Repository lists every collection known to the host in its natural
// order. Enabled is not a host attribute and is left unset.
type Repository interface {
	GetAll(ctx context.Context) ([]Collection, error)
}
