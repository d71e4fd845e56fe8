package postgres

import (
	"context"
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const moduleSettingsTable = "module_settings"

type PreferenceModel struct {
	Name  string `db:"name"`
	Value string `db:"value"`
}

// PreferenceRepository is the key-value store of the module settings.
type PreferenceRepository struct {
	client *Client
}

func (r *PreferenceRepository) GetAll(ctx context.Context) (map[string]string, error) {
	query, args, err := sq.Select("name", "value").From(moduleSettingsTable).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build preferences query: %w", err)
	}

	var models []PreferenceModel
	if err := r.client.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("error getting preferences: %w", err)
	}

	values := make(map[string]string, len(models))
	for _, m := range models {
		values[m.Name] = m.Value
	}
	return values, nil
}

func (r *PreferenceRepository) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	insert := sq.Insert(moduleSettingsTable).Columns("name", "value")
	for _, name := range names {
		insert = insert.Values(name, values[name])
	}
	query, args, err := insert.
		Suffix("ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("build set preferences query: %w", err)
	}

	return r.client.RunWithinTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("error setting preferences: %w", checkPostgresError(err))
		}
		return nil
	})
}

// NewPreferenceRepository initializes preference repository
func NewPreferenceRepository(c *Client) (*PreferenceRepository, error) {
	if c == nil {
		return nil, errNilPostgresClient
	}
	return &PreferenceRepository{client: c}, nil
}
