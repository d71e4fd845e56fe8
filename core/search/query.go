package search

import (
	"strings"

	"github.com/golang-module/carbon/v2"
	"github.com/goto/metasearch/core/collection"
)

// RawParams are the request parameters as received from the caller.
type RawParams struct {
	Key       string
	Trees     string
	Tree      string
	LastName  string
	PlaceName string
	PlaceID   string
	Since     string
}

// Query is a normalized search request.
type Query struct {
	Surname   string
	PlaceName string
	PlaceID   string
	// SinceDay is the exclusive change-date cutoff as a day count, 0 if unset.
	SinceDay int
	// Trees are the requested collection names, empty for the default set.
	Trees []string
}

// Empty reports whether no search criterion was given. A cutoff date alone
// does not make a query non-empty.
func (q Query) Empty() bool {
	return q.Surname == "" && q.PlaceName == "" && q.PlaceID == ""
}

// HasSince reports whether a change-date cutoff was given.
func (q Query) HasSince() bool {
	return q.SinceDay > 0
}

// Normalize trims and validates raw parameters. A single legacy tree
// parameter is honoured when trees is absent.
func Normalize(raw RawParams, today carbon.Carbon) (Query, error) {
	q := Query{
		Surname:   strings.TrimSpace(raw.LastName),
		PlaceName: strings.TrimSpace(raw.PlaceName),
		PlaceID:   strings.TrimSpace(raw.PlaceID),
	}

	trees := raw.Trees
	if strings.TrimSpace(trees) == "" {
		trees = raw.Tree
	}
	q.Trees = collection.SplitNames(trees)

	if since := strings.TrimSpace(raw.Since); since != "" {
		day, err := ParseSince(since, today)
		if err != nil {
			return Query{}, err
		}
		q.SinceDay = day
	}

	return q, nil
}
