package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/goto/metasearch/core/search"
	"github.com/olivere/elastic/v7"
)

const defaultPageSize = 1000

type nameDoc struct {
	Surname       string `json:"surname"`
	SurnameFolded string `json:"surname_folded"`
	Given         string `json:"given"`
	Preferred     bool   `json:"preferred"`
	Num           int    `json:"num"`
}

type personDoc struct {
	ID         string         `json:"id"`
	Tree       string         `json:"tree"`
	XRef       string         `json:"xref"`
	ChangedDay int            `json:"changed_day"`
	Names      []nameDoc      `json:"names"`
	Events     []search.Event `json:"events"`
}

func docID(tree, xref string) string {
	return tree + ":" + xref
}

func newPersonDoc(tree string, p search.Person) personDoc {
	doc := personDoc{
		ID:         docID(tree, p.XRef),
		Tree:       tree,
		XRef:       p.XRef,
		ChangedDay: p.ChangedDay,
		Names:      make([]nameDoc, 0, len(p.Names)),
		Events:     p.Events,
	}
	for _, n := range p.Names {
		doc.Names = append(doc.Names, nameDoc{
			Surname:       n.Surname,
			SurnameFolded: strings.ToLower(n.Surname),
			Given:         n.Given,
			Preferred:     n.Preferred,
			Num:           n.Num,
		})
	}
	return doc
}

func (d personDoc) toPerson() search.Person {
	p := search.Person{
		XRef:       d.XRef,
		ChangedDay: d.ChangedDay,
		Events:     d.Events,
	}
	for _, n := range d.Names {
		p.Names = append(p.Names, search.Name{
			Surname:   n.Surname,
			Given:     n.Given,
			Preferred: n.Preferred,
			Num:       n.Num,
		})
	}
	return p
}

type searchHit struct {
	ID     string        `json:"_id"`
	Source personDoc     `json:"_source"`
	Sort   []interface{} `json:"sort"`
}

type searchResponse struct {
	Hits struct {
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

// PersonRepository serves candidate lookups from the person index.
type PersonRepository struct {
	cli      *Client
	pageSize int
}

type PersonRepositoryOption func(*PersonRepository)

func PersonRepositoryWithPageSize(size int) PersonRepositoryOption {
	return func(r *PersonRepository) {
		if size > 0 {
			r.pageSize = size
		}
	}
}

func NewPersonRepository(cli *Client, opts ...PersonRepositoryOption) *PersonRepository {
	r := &PersonRepository{
		cli:      cli,
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FindCandidates pages through every person of tree matching filter,
// ordered by document id.
func (repo *PersonRepository) FindCandidates(ctx context.Context, tree string, filter search.CandidateFilter) (persons []search.Person, err error) {
	defer func(start time.Time) {
		repo.cli.instrumentOp(ctx, "find_candidates", start, err)
	}(time.Now())

	query := buildCandidateQuery(tree, filter)

	persons = []search.Person{}
	var after []interface{}
	for {
		page, err := repo.searchPage(ctx, query, after)
		if err != nil {
			return nil, err
		}
		for _, hit := range page {
			persons = append(persons, hit.Source.toPerson())
		}
		if len(page) < repo.pageSize {
			return persons, nil
		}
		after = page[len(page)-1].Sort
	}
}

func (repo *PersonRepository) searchPage(ctx context.Context, query elastic.Query, after []interface{}) ([]searchHit, error) {
	source := elastic.NewSearchSource().
		Query(query).
		Size(repo.pageSize).
		Sort("id", true)
	if len(after) > 0 {
		source = source.SearchAfter(after...)
	}
	src, err := source.Source()
	if err != nil {
		return nil, fmt.Errorf("build candidate query: %w", err)
	}
	body, err := json.Marshal(src)
	if err != nil {
		return nil, fmt.Errorf("encode candidate query: %w", err)
	}

	esSearch := repo.cli.client.Search
	res, err := esSearch(
		esSearch.WithIndex(repo.cli.index),
		esSearch.WithBody(bytes.NewReader(body)),
		esSearch.WithIgnoreUnavailable(true),
		esSearch.WithContext(ctx),
	)
	if err != nil {
		return nil, elasticSearchError(err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("error searching candidates: %s", errorReasonFromResponse(res))
	}

	var response searchResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return response.Hits.Hits, nil
}

func buildCandidateQuery(tree string, filter search.CandidateFilter) elastic.Query {
	boolQuery := elastic.NewBoolQuery().Filter(elastic.NewTermQuery("tree", tree))
	if filter.Surname == "" {
		return boolQuery
	}

	folded := strings.ToLower(filter.Surname)
	if filter.Policy == search.SurnamePrefix {
		return boolQuery.Filter(elastic.NewPrefixQuery("names.surname_folded", folded))
	}
	return boolQuery.Filter(elastic.NewTermQuery("names.surname_folded", folded))
}

// Upsert indexes the persons of tree in one bulk request.
func (repo *PersonRepository) Upsert(ctx context.Context, tree string, persons []search.Person) (err error) {
	if len(persons) == 0 {
		return nil
	}
	defer func(start time.Time) {
		repo.cli.instrumentOp(ctx, "upsert", start, err)
	}(time.Now())

	body, err := repo.createUpsertBody(tree, persons)
	if err != nil {
		return fmt.Errorf("error serialising payload: %w", err)
	}

	res, err := repo.cli.client.Bulk(
		body,
		repo.cli.client.Bulk.WithIndex(repo.cli.index),
		repo.cli.client.Bulk.WithRefresh("true"),
		repo.cli.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return elasticSearchError(err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("error response from elasticsearch: %s", errorReasonFromResponse(res))
	}

	var response struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if response.Errors {
		return fmt.Errorf("bulk indexing of %q reported errors", tree)
	}
	return nil
}

func (repo *PersonRepository) createUpsertBody(tree string, persons []search.Person) (*bytes.Buffer, error) {
	payload := new(bytes.Buffer)
	enc := json.NewEncoder(payload)
	for _, p := range persons {
		doc := newPersonDoc(tree, p)
		action := map[string]interface{}{
			"index": map[string]interface{}{
				"_id": doc.ID,
			},
		}
		if err := enc.Encode(action); err != nil {
			return nil, err
		}
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
	}
	return payload, nil
}

// DeleteTree removes every person of tree from the index.
func (repo *PersonRepository) DeleteTree(ctx context.Context, tree string) (err error) {
	defer func(start time.Time) {
		repo.cli.instrumentOp(ctx, "delete_tree", start, err)
	}(time.Now())

	src, err := elastic.NewSearchSource().Query(elastic.NewTermQuery("tree", tree)).Source()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}
	body, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("encode delete query: %w", err)
	}

	deleteByQuery := repo.cli.client.DeleteByQuery
	res, err := deleteByQuery(
		[]string{repo.cli.index},
		bytes.NewReader(body),
		deleteByQuery.WithRefresh(true),
		deleteByQuery.WithIgnoreUnavailable(true),
		deleteByQuery.WithContext(ctx),
	)
	if err != nil {
		return elasticSearchError(err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("error deleting tree %q: %s", tree, errorReasonFromResponse(res))
	}
	return nil
}
