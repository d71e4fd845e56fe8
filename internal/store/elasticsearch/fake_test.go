package elasticsearch_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v7"
	store "github.com/goto/metasearch/internal/store/elasticsearch"
	"github.com/goto/salt/log"
)

const testIndex = "persons"

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// fakeNode is an in-process stand-in for an elasticsearch node.
type fakeNode struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeNode) Requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func newFakeClient(t *testing.T, handle func(w http.ResponseWriter, r *http.Request, body string)) (*store.Client, *fakeNode) {
	t.Helper()

	node := &fakeNode{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == "/" {
			_, _ = io.WriteString(w, `{"cluster_name":"test","version":{"number":"7.16.0","build_flavor":"default"},"tagline":"You Know, for Search"}`)
			return
		}

		body, _ := io.ReadAll(r.Body)
		node.mu.Lock()
		node.requests = append(node.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(body),
		})
		node.mu.Unlock()

		handle(w, r, string(body))
	}))
	t.Cleanup(srv.Close)

	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{srv.URL},
	})
	if err != nil {
		t.Fatal(err)
	}

	cli, err := store.NewClient(log.NewNoop(), store.Config{Index: testIndex}, store.WithClient(esClient))
	if err != nil {
		t.Fatal(err)
	}
	return cli, node
}
