package postgres_test

import (
	"context"
	"testing"

	"github.com/goto/metasearch/core/collection"
	"github.com/goto/metasearch/core/search"
	"github.com/goto/metasearch/internal/store/postgres"
	"github.com/goto/metasearch/internal/testutils"
	"github.com/goto/salt/log"
)

func newTestClient(t *testing.T, logger log.Logger) (*postgres.Client, error) {
	t.Helper()

	cfg, err := testutils.StartPostgres(t, logger)
	if err != nil {
		return nil, err
	}

	pgClient, err := postgres.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	t.Cleanup(func() {
		if err := pgClient.Close(); err != nil {
			t.Error(err)
		}
	})

	if err := testutils.ResetSchema(context.Background(), pgClient); err != nil {
		return nil, err
	}
	return pgClient, nil
}

// setupClient skips the suite when no docker daemon is reachable.
func setupClient(t *testing.T) *postgres.Client {
	t.Helper()

	client, err := newTestClient(t, log.NewNoop())
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	return client
}

func truncateAll(t *testing.T, client *postgres.Client) {
	t.Helper()

	if err := client.ExecQueries(context.Background(), []string{
		"TRUNCATE collections, persons, person_names, person_events, module_settings CASCADE",
	}); err != nil {
		t.Fatal(err)
	}
}

func seedCollections(ctx context.Context, repo *postgres.CollectionRepository, cols ...collection.Collection) error {
	for _, c := range cols {
		if _, err := repo.Upsert(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func hartenthaler() search.Person {
	return search.Person{
		XRef: "I1",
		Names: []search.Name{
			{Surname: "Hartenthaler", Given: "Hermann", Preferred: true, Num: 0},
			{Surname: "Hartentaler", Given: "Hermann", Num: 1},
		},
		Events: []search.Event{
			{Fact: search.FactBirth, Year: 1957, Place: "Ennetach", PlaceID: "ENNACHJN48BB"},
		},
		ChangedDay: search.DayCount(2023, 12, 1),
	}
}
