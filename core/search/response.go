package search

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one hit as reported to the aggregator.
type Entry struct {
	LastName  string `json:"lastname"`
	FirstName string `json:"firstname"`
	Details   string `json:"details"`
	URL       string `json:"url"`
}

// CollectionResult is the outcome for one collection. Error is set when the
// lookup failed; the entries are empty then.
type CollectionResult struct {
	Entries []Entry `json:"entries"`
	More    bool    `json:"more"`
	Error   string  `json:"error,omitempty"`
}

// Hit pairs a collection name with its result.
type Hit struct {
	Tree   string
	Result CollectionResult
}

// Hits keeps collection results in registry order and encodes as a JSON
// object with keys in that order.
type Hits []Hit

// Get returns the result for tree.
func (h Hits) Get(tree string) (CollectionResult, bool) {
	for _, hit := range h {
		if hit.Tree == tree {
			return hit.Result, true
		}
	}
	return CollectionResult{}, false
}

// Trees returns the collection names in order.
func (h Hits) Trees() []string {
	trees := make([]string, len(h))
	for i, hit := range h {
		trees[i] = hit.Tree
	}
	return trees
}

func (h Hits) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, hit := range h {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(hit.Tree)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(hit.Result)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (h *Hits) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*h = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("hits: expected object, got %v", tok)
	}

	hits := Hits{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		tree, ok := tok.(string)
		if !ok {
			return fmt.Errorf("hits: expected key, got %v", tok)
		}
		var result CollectionResult
		if err := dec.Decode(&result); err != nil {
			return fmt.Errorf("hits %q: %w", tree, err)
		}
		hits = append(hits, Hit{Tree: tree, Result: result})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*h = hits
	return nil
}

// Response is the search payload.
type Response struct {
	DatabaseName string `json:"database_name"`
	DatabaseURL  string `json:"database_url"`
	Empty        bool   `json:"empty"`
	Hits         Hits   `json:"hits"`
}

// Metadata is echoed unchanged into every response.
type Metadata struct {
	DatabaseName string
	DatabaseURL  string
}

// Aggregate composes the response. Trees gives the registry order of the
// searched collections; an empty query yields no hits.
func Aggregate(meta Metadata, q Query, trees []string, results map[string]CollectionResult) Response {
	resp := Response{
		DatabaseName: meta.DatabaseName,
		DatabaseURL:  meta.DatabaseURL,
		Empty:        q.Empty(),
		Hits:         Hits{},
	}
	if resp.Empty {
		return resp
	}

	for _, tree := range trees {
		result, ok := results[tree]
		if !ok {
			continue
		}
		if result.Entries == nil {
			result.Entries = []Entry{}
		}
		resp.Hits = append(resp.Hits, Hit{Tree: tree, Result: result})
	}
	return resp
}
