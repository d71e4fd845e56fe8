package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/goto/metasearch/core/collection"
)

const collectionsTable = "collections"

type CollectionModel struct {
	ID        int    `db:"id"`
	Name      string `db:"name"`
	Title     string `db:"title"`
	SortOrder int    `db:"sort_order"`
	IsPublic  bool   `db:"is_public"`
}

func (m CollectionModel) toCollection() collection.Collection {
	return collection.Collection{
		ID:        m.ID,
		Name:      m.Name,
		Title:     m.Title,
		SortOrder: m.SortOrder,
		Public:    m.IsPublic,
	}
}

// CollectionRepository lists the trees hosted by the application.
type CollectionRepository struct {
	client *Client
}

// GetAll returns every tree ordered by sort order, then title.
func (r *CollectionRepository) GetAll(ctx context.Context) ([]collection.Collection, error) {
	query, args, err := sq.Select("id", "name", "title", "sort_order", "is_public").
		From(collectionsTable).
		OrderBy("sort_order", "title", "name").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build collections query: %w", err)
	}

	var models []CollectionModel
	if err := r.client.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("error getting collections: %w", err)
	}

	collections := make([]collection.Collection, 0, len(models))
	for _, m := range models {
		collections = append(collections, m.toCollection())
	}
	return collections, nil
}

// Upsert inserts a tree or updates it by name, returning its id.
func (r *CollectionRepository) Upsert(ctx context.Context, c collection.Collection) (int, error) {
	if c.Name == "" {
		return 0, errEmptyCollectionName
	}

	query, args, err := sq.Insert(collectionsTable).
		Columns("name", "title", "sort_order", "is_public").
		Values(c.Name, c.Title, c.SortOrder, c.Public).
		Suffix(`ON CONFLICT (name) DO UPDATE SET
			title = EXCLUDED.title,
			sort_order = EXCLUDED.sort_order,
			is_public = EXCLUDED.is_public,
			updated_at = NOW()
		RETURNING id`).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build upsert collection query: %w", err)
	}

	var id int
	if err := r.client.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("error upserting collection %q: %w", c.Name, checkPostgresError(err))
	}
	return id, nil
}

// NewCollectionRepository initializes collection repository
func NewCollectionRepository(c *Client) (*CollectionRepository, error) {
	if c == nil {
		return nil, errNilPostgresClient
	}
	return &CollectionRepository{client: c}, nil
}
