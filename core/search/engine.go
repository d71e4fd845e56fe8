package search

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Engine runs a query against a single collection.
type Engine struct {
	store  CandidateStore
	policy SurnamePolicy
}

func NewEngine(store CandidateStore, policy SurnamePolicy) *Engine {
	if policy == "" {
		policy = SurnameExact
	}
	return &Engine{store: store, policy: policy}
}

// Search returns at most maxHits entries of tree matching q. More is set
// when further matches were cut off. baseURL prefixes the entry links.
func (e *Engine) Search(ctx context.Context, tree string, q Query, maxHits int, baseURL string) (CollectionResult, error) {
	persons, err := e.store.FindCandidates(ctx, tree, CandidateFilter{Surname: q.Surname, Policy: e.policy})
	if err != nil {
		return CollectionResult{}, err
	}

	type match struct {
		xref  string
		entry Entry
	}
	matches := make([]match, 0, len(persons))
	for _, p := range persons {
		if !e.matches(p, q) {
			continue
		}
		matches = append(matches, match{xref: p.XRef, entry: buildEntry(tree, p, baseURL)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if x, y := strings.ToLower(a.entry.LastName), strings.ToLower(b.entry.LastName); x != y {
			return x < y
		}
		if x, y := strings.ToLower(a.entry.FirstName), strings.ToLower(b.entry.FirstName); x != y {
			return x < y
		}
		return a.xref < b.xref
	})

	result := CollectionResult{Entries: make([]Entry, 0, len(matches))}
	if maxHits > 0 && len(matches) > maxHits {
		matches = matches[:maxHits]
		result.More = true
	}
	for _, m := range matches {
		result.Entries = append(result.Entries, m.entry)
	}
	return result, nil
}

func (e *Engine) matches(p Person, q Query) bool {
	if q.Surname != "" && !e.matchSurname(p, q.Surname) {
		return false
	}
	if q.PlaceName != "" && !matchPlaceName(p, q.PlaceName) {
		return false
	}
	if q.PlaceID != "" && !matchPlaceID(p, q.PlaceID) {
		return false
	}
	if q.HasSince() && p.ChangedDay <= q.SinceDay {
		return false
	}
	return true
}

func (e *Engine) matchSurname(p Person, surname string) bool {
	for _, n := range p.Names {
		if e.policy.Match(n.Surname, surname) {
			return true
		}
	}
	return false
}

func matchPlaceName(p Person, fragment string) bool {
	fragment = strings.ToLower(fragment)
	for _, ev := range p.Events {
		if ev.Place != "" && strings.Contains(strings.ToLower(ev.Place), fragment) {
			return true
		}
	}
	return false
}

func matchPlaceID(p Person, id string) bool {
	for _, ev := range p.Events {
		if ev.PlaceID != "" && strings.EqualFold(ev.PlaceID, id) {
			return true
		}
	}
	return false
}

func buildEntry(tree string, p Person, baseURL string) Entry {
	name, _ := p.PrimaryName()
	return Entry{
		LastName:  name.Surname,
		FirstName: name.Given,
		Details:   Details(p),
		URL:       IndividualURL(baseURL, tree, p.XRef),
	}
}

// Details renders birth and death as "* 1957 Ennetach, † 2001 Sigmaringen".
// Missing parts are left out.
func Details(p Person) string {
	var parts []string
	if ev, ok := p.FirstEvent(FactBirth); ok {
		if s := eventDetail("*", ev); s != "" {
			parts = append(parts, s)
		}
	}
	if ev, ok := p.FirstEvent(FactDeath); ok {
		if s := eventDetail("†", ev); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func eventDetail(symbol string, ev Event) string {
	fields := []string{}
	if ev.Year > 0 {
		fields = append(fields, strconv.Itoa(ev.Year))
	}
	if place := strings.TrimSpace(ev.Place); place != "" {
		fields = append(fields, place)
	}
	if len(fields) == 0 {
		return ""
	}
	return symbol + " " + strings.Join(fields, " ")
}

// IndividualURL links to a person page of the host application.
func IndividualURL(baseURL, tree, xref string) string {
	return strings.TrimRight(baseURL, "/") +
		"/tree/" + url.PathEscape(tree) +
		"/individual/" + url.PathEscape(xref)
}
