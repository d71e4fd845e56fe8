package search

//go:generate mockery --name=CandidateStore -r --case underscore --with-expecter --structname CandidateStore --filename candidate_store.go --output=./mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/goto/metasearch/core/validator"
)

// Event facts used for the detail string.
const (
	FactBirth = "BIRT"
	FactDeath = "DEAT"
)

// Name is one name record of a person.
type Name struct {
	Surname   string `json:"surname"`
	Given     string `json:"given"`
	Preferred bool   `json:"preferred"`
	// Num is the position of the record within the person.
	Num int `json:"num"`
}

// Event is a dated life event with an optional place.
type Event struct {
	Fact    string `json:"fact"`
	Year    int    `json:"year,omitempty"`
	Place   string `json:"place,omitempty"`
	PlaceID string `json:"place_id,omitempty"`
}

// Person is a candidate record from a collection.
type Person struct {
	XRef   string  `json:"xref"`
	Names  []Name  `json:"names"`
	Events []Event `json:"events"`
	// ChangedDay is the day count of the last modification.
	ChangedDay int `json:"changed_day"`
}

// PrimaryName returns the preferred name record, or the lowest numbered one
// when none is preferred.
func (p Person) PrimaryName() (Name, bool) {
	if len(p.Names) == 0 {
		return Name{}, false
	}
	best := p.Names[0]
	for _, n := range p.Names[1:] {
		if n.Preferred != best.Preferred {
			if n.Preferred {
				best = n
			}
			continue
		}
		if n.Num < best.Num {
			best = n
		}
	}
	return best, true
}

// FirstEvent returns the first event with the given fact.
func (p Person) FirstEvent(fact string) (Event, bool) {
	for _, e := range p.Events {
		if e.Fact == fact {
			return e, true
		}
	}
	return Event{}, false
}

// SurnamePolicy selects how the surname filter is matched.
type SurnamePolicy string

const (
	SurnameExact  SurnamePolicy = "exact"
	SurnamePrefix SurnamePolicy = "prefix"
)

func ParseSurnamePolicy(s string) (SurnamePolicy, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if err := validator.ValidateOneOf(v, string(SurnameExact), string(SurnamePrefix)); err != nil {
		return "", ValidationError{Field: "surname_match", Value: s, Kind: KindInvalidSurname}
	}
	if v == "" {
		return SurnameExact, nil
	}
	return SurnamePolicy(v), nil
}

// Match reports whether surname satisfies the filter, ignoring case.
func (p SurnamePolicy) Match(surname, filter string) bool {
	surname, filter = strings.ToLower(surname), strings.ToLower(filter)
	if p == SurnamePrefix {
		return strings.HasPrefix(surname, filter)
	}
	return surname == filter
}

// CandidateFilter narrows the candidate lookup. An empty Surname selects
// every person of the collection.
type CandidateFilter struct {
	Surname string
	Policy  SurnamePolicy
}

func (f CandidateFilter) String() string {
	return fmt.Sprintf("surname=%q policy=%s", f.Surname, f.Policy)
}

// CandidateStore is the record store of the collections.
type CandidateStore interface {
	FindCandidates(ctx context.Context, tree string, filter CandidateFilter) ([]Person, error)
}
