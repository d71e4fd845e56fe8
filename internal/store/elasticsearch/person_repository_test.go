package elasticsearch_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/goto/metasearch/core/search"
	store "github.com/goto/metasearch/internal/store/elasticsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hitJSON(tree, xref, surname, given string) string {
	id := tree + ":" + xref
	return fmt.Sprintf(`{
		"_index": %q,
		"_id": %q,
		"_source": {
			"id": %q,
			"tree": %q,
			"xref": %q,
			"changed_day": 2460280,
			"names": [{"surname": %q, "surname_folded": %q, "given": %q, "preferred": true, "num": 0}],
			"events": [{"fact": "BIRT", "year": 1957, "place": "Ennetach", "place_id": "ENNACHJN48BB"}]
		},
		"sort": [%q]
	}`, testIndex, id, id, tree, xref, surname, strings.ToLower(surname), given, id)
}

func hitsJSON(hits ...string) string {
	return `{"hits":{"total":{"value":` + fmt.Sprint(len(hits)) + `,"relation":"eq"},"hits":[` + strings.Join(hits, ",") + `]}}`
}

func TestPersonRepositoryFindCandidates(t *testing.T) {
	ctx := context.Background()

	t.Run("should query by tree and folded surname", func(t *testing.T) {
		cli, node := newFakeClient(t, func(w http.ResponseWriter, r *http.Request, body string) {
			_, _ = io.WriteString(w, hitsJSON(hitJSON("kennedy", "I1", "Hartenthaler", "Hermann")))
		})
		repo := store.NewPersonRepository(cli)

		persons, err := repo.FindCandidates(ctx, "kennedy", search.CandidateFilter{Surname: "HARTENTHALER", Policy: search.SurnameExact})
		require.NoError(t, err)

		assert.Equal(t, []search.Person{{
			XRef:       "I1",
			Names:      []search.Name{{Surname: "Hartenthaler", Given: "Hermann", Preferred: true}},
			Events:     []search.Event{{Fact: search.FactBirth, Year: 1957, Place: "Ennetach", PlaceID: "ENNACHJN48BB"}},
			ChangedDay: 2460280,
		}}, persons)

		requests := node.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, "/"+testIndex+"/_search", requests[0].Path)
		assert.Contains(t, requests[0].Query, "ignore_unavailable=true")
		assert.Contains(t, requests[0].Body, `{"term":{"tree":"kennedy"}}`)
		assert.Contains(t, requests[0].Body, `{"term":{"names.surname_folded":"hartenthaler"}}`)
	})

	t.Run("should use a prefix query with the prefix policy", func(t *testing.T) {
		cli, node := newFakeClient(t, func(w http.ResponseWriter, r *http.Request, body string) {
			_, _ = io.WriteString(w, hitsJSON())
		})
		repo := store.NewPersonRepository(cli)

		persons, err := repo.FindCandidates(ctx, "kennedy", search.CandidateFilter{Surname: "Hart", Policy: search.SurnamePrefix})
		require.NoError(t, err)
		assert.Empty(t, persons)

		requests := node.Requests()
		require.Len(t, requests, 1)
		assert.Contains(t, requests[0].Body, `{"prefix":{"names.surname_folded":"hart"}}`)
	})

	t.Run("should only filter by tree without a surname", func(t *testing.T) {
		cli, node := newFakeClient(t, func(w http.ResponseWriter, r *http.Request, body string) {
			_, _ = io.WriteString(w, hitsJSON())
		})
		repo := store.NewPersonRepository(cli)

		_, err := repo.FindCandidates(ctx, "royals", search.CandidateFilter{})
		require.NoError(t, err)

		requests := node.Requests()
		require.Len(t, requests, 1)
		assert.Contains(t, requests[0].Body, `{"term":{"tree":"royals"}}`)
		assert.NotContains(t, requests[0].Body, "surname_folded")
	})

	t.Run("should page through all candidates", func(t *testing.T) {
		cli, node := newFakeClient(t, func(w http.ResponseWriter, r *http.Request, body string) {
			if strings.Contains(body, "search_after") {
				_, _ = io.WriteString(w, hitsJSON(hitJSON("kennedy", "I3", "Kennedy", "Robert")))
				return
			}
			_, _ = io.WriteString(w, hitsJSON(
				hitJSON("kennedy", "I1", "Kennedy", "John"),
				hitJSON("kennedy", "I2", "Kennedy", "Joseph"),
			))
		})
		repo := store.NewPersonRepository(cli, store.PersonRepositoryWithPageSize(2))

		persons, err := repo.FindCandidates(ctx, "kennedy", search.CandidateFilter{Surname: "Kennedy"})
		require.NoError(t, err)
		require.Len(t, persons, 3)
		assert.Equal(t, "I3", persons[2].XRef)

		requests := node.Requests()
		require.Len(t, requests, 2)
		assert.Contains(t, requests[1].Body, `"search_after":["kennedy:I2"]`)
	})

	t.Run("should return the reason of a failed search", func(t *testing.T) {
		cli, _ := newFakeClient(t, func(w http.ResponseWriter, r *http.Request, body string) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":{"reason":"all shards failed"}}`)
		})
		repo := store.NewPersonRepository(cli)

		_, err := repo.FindCandidates(ctx, "kennedy", search.CandidateFilter{Surname: "x"})
		assert.ErrorContains(t, err, "all shards failed")
	})
}

func TestPersonRepositoryUpsert(t *testing.T) {
	ctx := context.Background()
	persons := []search.Person{{
		XRef:  "I1",
		Names: []search.Name{{Surname: "Hartenthaler", Given: "Hermann", Preferred: true}},
	}}

	t.Run("should send one bulk request", func(t *testing.T) {
		cli, node := newFakeClient(t, func(w http.ResponseWriter, r *http.Request, body string) {
			_, _ = io.WriteString(w, `{"took":1,"errors":false,"items":[]}`)
		})
		repo := store.NewPersonRepository(cli)

		require.NoError(t, repo.Upsert(ctx, "kennedy", persons))

		requests := node.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, "/"+testIndex+"/_bulk", requests[0].Path)
		lines := strings.Split(strings.TrimSpace(requests[0].Body), "\n")
		require.Len(t, lines, 2)
		assert.JSONEq(t, `{"index":{"_id":"kennedy:I1"}}`, lines[0])
		assert.Contains(t, lines[1], `"surname_folded":"hartenthaler"`)
		assert.Contains(t, lines[1], `"tree":"kennedy"`)
	})

	t.Run("should report item errors", func(t *testing.T) {
		cli, _ := newFakeClient(t, func(w http.ResponseWriter, r *http.Request, body string) {
			_, _ = io.WriteString(w, `{"took":1,"errors":true,"items":[]}`)
		})
		repo := store.NewPersonRepository(cli)

		assert.Error(t, repo.Upsert(ctx, "kennedy", persons))
	})

	t.Run("should skip an empty batch", func(t *testing.T) {
		cli, node := newFakeClient(t, func(w http.ResponseWriter, r *http.Request, body string) {})
		repo := store.NewPersonRepository(cli)

		require.NoError(t, repo.Upsert(ctx, "kennedy", nil))
		assert.Empty(t, node.Requests())
	})
}

func TestPersonRepositoryDeleteTree(t *testing.T) {
	cli, node := newFakeClient(t, func(w http.ResponseWriter, r *http.Request, body string) {
		_, _ = io.WriteString(w, `{"deleted":3}`)
	})
	repo := store.NewPersonRepository(cli)

	require.NoError(t, repo.DeleteTree(context.Background(), "kennedy"))

	requests := node.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/"+testIndex+"/_delete_by_query", requests[0].Path)
	assert.Contains(t, requests[0].Body, `{"term":{"tree":"kennedy"}}`)
}
