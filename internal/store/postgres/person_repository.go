package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/goto/metasearch/core/collection"
	"github.com/goto/metasearch/core/search"
	"github.com/jmoiron/sqlx"
)

const (
	personsTable      = "persons"
	personNamesTable  = "person_names"
	personEventsTable = "person_events"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PersonRepository reads and writes the individuals of all trees.
type PersonRepository struct {
	client *Client
}

// FindCandidates returns the persons of tree having a name record that
// satisfies filter. An unknown tree yields no persons.
func (r *PersonRepository) FindCandidates(ctx context.Context, tree string, filter search.CandidateFilter) ([]search.Person, error) {
	query, args, err := candidatesQuery(tree, filter).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build candidates query: %w", err)
	}

	var models []PersonModel
	if err := r.client.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("error getting candidates of %q: %w", tree, err)
	}
	if len(models) == 0 {
		return []search.Person{}, nil
	}

	persons := make([]search.Person, len(models))
	index := make(map[string]int, len(models))
	for i, m := range models {
		persons[i] = search.Person{XRef: m.XRef, ChangedDay: m.ChangedDay}
		index[m.XRef] = i
	}

	var names []PersonNameModel
	if err := r.selectDetails(ctx, &names, namesQuery(tree, filter)); err != nil {
		return nil, fmt.Errorf("error getting names of %q: %w", tree, err)
	}
	for _, n := range names {
		if i, ok := index[n.XRef]; ok {
			persons[i].Names = append(persons[i].Names, n.toName())
		}
	}

	var events []PersonEventModel
	if err := r.selectDetails(ctx, &events, eventsQuery(tree, filter)); err != nil {
		return nil, fmt.Errorf("error getting events of %q: %w", tree, err)
	}
	for _, e := range events {
		if i, ok := index[e.XRef]; ok {
			persons[i].Events = append(persons[i].Events, e.toEvent())
		}
	}

	return persons, nil
}

func (r *PersonRepository) selectDetails(ctx context.Context, dest interface{}, builder sq.SelectBuilder) error {
	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return r.client.SelectContext(ctx, dest, query, args...)
}

// candidateScope restricts a query joined on persons p and collections c to
// the candidates of tree. The bind parameters do not grow with the tree size.
func candidateScope(builder sq.SelectBuilder, tree string, filter search.CandidateFilter) sq.SelectBuilder {
	builder = builder.Where(sq.Eq{"c.name": tree})
	if filter.Surname == "" {
		return builder
	}

	folded := strings.ToLower(filter.Surname)
	if filter.Policy == search.SurnamePrefix {
		return builder.Where(`EXISTS (SELECT 1 FROM `+personNamesTable+` pn
			WHERE pn.collection_id = p.collection_id AND pn.xref = p.xref
			AND pn.surname_folded LIKE ? ESCAPE '\')`, likeEscaper.Replace(folded)+"%")
	}
	return builder.Where(`EXISTS (SELECT 1 FROM `+personNamesTable+` pn
		WHERE pn.collection_id = p.collection_id AND pn.xref = p.xref
		AND pn.surname_folded = ?)`, folded)
}

func candidatesQuery(tree string, filter search.CandidateFilter) sq.SelectBuilder {
	return candidateScope(sq.Select("p.xref", "p.changed_day").
		From(personsTable+" p").
		Join(collectionsTable+" c ON c.id = p.collection_id"), tree, filter).
		OrderBy("p.xref")
}

func namesQuery(tree string, filter search.CandidateFilter) sq.SelectBuilder {
	return candidateScope(sq.Select("n.xref", "n.num", "n.surname", "n.given", "n.preferred").
		From(personNamesTable+" n").
		Join(personsTable+" p ON p.collection_id = n.collection_id AND p.xref = n.xref").
		Join(collectionsTable+" c ON c.id = p.collection_id"), tree, filter).
		OrderBy("n.xref", "n.num")
}

func eventsQuery(tree string, filter search.CandidateFilter) sq.SelectBuilder {
	return candidateScope(sq.Select("e.xref", "e.num", "e.fact", "e.year", "e.place", "e.place_id").
		From(personEventsTable+" e").
		Join(personsTable+" p ON p.collection_id = e.collection_id AND p.xref = e.xref").
		Join(collectionsTable+" c ON c.id = p.collection_id"), tree, filter).
		OrderBy("e.xref", "e.num")
}

// Upsert replaces a person of tree including its names and events.
func (r *PersonRepository) Upsert(ctx context.Context, tree string, p search.Person) error {
	if p.XRef == "" {
		return errEmptyXRef
	}

	return r.client.RunWithinTx(ctx, func(tx *sqlx.Tx) error {
		collectionID, err := r.collectionID(ctx, tx, tree)
		if err != nil {
			return err
		}

		query, args, err := sq.Insert(personsTable).
			Columns("collection_id", "xref", "changed_day").
			Values(collectionID, p.XRef, p.ChangedDay).
			Suffix("ON CONFLICT (collection_id, xref) DO UPDATE SET changed_day = EXCLUDED.changed_day").
			PlaceholderFormat(sq.Dollar).ToSql()
		if err != nil {
			return fmt.Errorf("build upsert person query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("error upserting person %q: %w", p.XRef, checkPostgresError(err))
		}

		for _, table := range []string{personNamesTable, personEventsTable} {
			query, args, err := sq.Delete(table).
				Where(sq.Eq{"collection_id": collectionID, "xref": p.XRef}).
				PlaceholderFormat(sq.Dollar).ToSql()
			if err != nil {
				return fmt.Errorf("build delete query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("error clearing %s of %q: %w", table, p.XRef, err)
			}
		}

		if len(p.Names) > 0 {
			insert := sq.Insert(personNamesTable).
				Columns("collection_id", "xref", "num", "surname", "surname_folded", "given", "preferred")
			for i, n := range p.Names {
				insert = insert.Values(collectionID, p.XRef, i, n.Surname, strings.ToLower(n.Surname), n.Given, n.Preferred)
			}
			if err := execInsert(ctx, tx, insert); err != nil {
				return fmt.Errorf("error inserting names of %q: %w", p.XRef, err)
			}
		}

		if len(p.Events) > 0 {
			insert := sq.Insert(personEventsTable).
				Columns("collection_id", "xref", "num", "fact", "year", "place", "place_id")
			for i, e := range p.Events {
				insert = insert.Values(collectionID, p.XRef, i, e.Fact, e.Year, e.Place, e.PlaceID)
			}
			if err := execInsert(ctx, tx, insert); err != nil {
				return fmt.Errorf("error inserting events of %q: %w", p.XRef, err)
			}
		}
		return nil
	})
}

func (r *PersonRepository) collectionID(ctx context.Context, tx *sqlx.Tx, tree string) (int, error) {
	query, args, err := sq.Select("id").From(collectionsTable).
		Where(sq.Eq{"name": tree}).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build collection id query: %w", err)
	}

	var id int
	if err := tx.GetContext(ctx, &id, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, collection.NotFoundError{Names: []string{tree}}
		}
		return 0, err
	}
	return id, nil
}

func execInsert(ctx context.Context, tx *sqlx.Tx, insert sq.InsertBuilder) error {
	query, args, err := insert.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return checkPostgresError(err)
}

// NewPersonRepository initializes person repository
func NewPersonRepository(c *Client) (*PersonRepository, error) {
	if c == nil {
		return nil, errNilPostgresClient
	}
	return &PersonRepository{client: c}, nil
}
