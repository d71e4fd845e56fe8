package postgres

import "github.com/goto/metasearch/core/search"

type PersonModel struct {
	XRef       string `db:"xref"`
	ChangedDay int    `db:"changed_day"`
}

type PersonNameModel struct {
	XRef      string `db:"xref"`
	Num       int    `db:"num"`
	Surname   string `db:"surname"`
	Given     string `db:"given"`
	Preferred bool   `db:"preferred"`
}

func (m PersonNameModel) toName() search.Name {
	return search.Name{
		Surname:   m.Surname,
		Given:     m.Given,
		Preferred: m.Preferred,
		Num:       m.Num,
	}
}

type PersonEventModel struct {
	XRef    string `db:"xref"`
	Num     int    `db:"num"`
	Fact    string `db:"fact"`
	Year    int    `db:"year"`
	Place   string `db:"place"`
	PlaceID string `db:"place_id"`
}

func (m PersonEventModel) toEvent() search.Event {
	return search.Event{
		Fact:    m.Fact,
		Year:    m.Year,
		Place:   m.Place,
		PlaceID: m.PlaceID,
	}
}
