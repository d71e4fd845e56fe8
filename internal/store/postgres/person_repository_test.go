package postgres_test

import (
	"context"
	"testing"

	"github.com/goto/metasearch/core/collection"
	"github.com/goto/metasearch/core/search"
	"github.com/goto/metasearch/internal/store/postgres"
	"github.com/goto/metasearch/internal/testutils"
	"github.com/stretchr/testify/suite"
)

type PersonRepositoryTestSuite struct {
	suite.Suite
	ctx         context.Context
	client      *postgres.Client
	collections *postgres.CollectionRepository
	repository  *postgres.PersonRepository
}

func (r *PersonRepositoryTestSuite) SetupSuite() {
	var err error

	r.client = setupClient(r.T())
	r.ctx = context.TODO()
	r.collections, err = postgres.NewCollectionRepository(r.client)
	if err != nil {
		r.T().Fatal(err)
	}
	r.repository, err = postgres.NewPersonRepository(r.client)
	if err != nil {
		r.T().Fatal(err)
	}
}

func (r *PersonRepositoryTestSuite) SetupTest() {
	truncateAll(r.T(), r.client)

	err := seedCollections(r.ctx, r.collections,
		collection.Collection{Name: "kennedy", Title: "Kennedy Family", Public: true},
		collection.Collection{Name: "royals", Title: "European Royals", Public: true},
	)
	r.Require().NoError(err)

	persons := []search.Person{
		hartenthaler(),
		{
			XRef:       "I2",
			Names:      []search.Name{{Surname: "Kennedy", Given: "John", Preferred: true}},
			ChangedDay: search.DayCount(2020, 1, 1),
		},
		{
			XRef:  "I3",
			Names: []search.Name{{Surname: "Hart_mann", Given: "Eva", Preferred: true}},
		},
	}
	for _, p := range persons {
		r.Require().NoError(r.repository.Upsert(r.ctx, "kennedy", p))
	}
	r.Require().NoError(r.repository.Upsert(r.ctx, "royals", search.Person{
		XRef:  "I1",
		Names: []search.Name{{Surname: "Windsor", Given: "Elizabeth", Preferred: true}},
	}))
}

func (r *PersonRepositoryTestSuite) TestFindCandidates() {
	r.Run("return the full record on an exact surname match", func() {
		persons, err := r.repository.FindCandidates(r.ctx, "kennedy", search.CandidateFilter{Surname: "HARTENTHALER", Policy: search.SurnameExact})
		r.Require().NoError(err)
		r.Require().Len(persons, 1)
		testutils.AssertEqual(r.T(), hartenthaler(), persons[0])
	})

	r.Run("match any name record", func() {
		persons, err := r.repository.FindCandidates(r.ctx, "kennedy", search.CandidateFilter{Surname: "hartentaler", Policy: search.SurnameExact})
		r.Require().NoError(err)
		r.Require().Len(persons, 1)
		r.Equal("I1", persons[0].XRef)
	})

	r.Run("match a prefix with the prefix policy", func() {
		persons, err := r.repository.FindCandidates(r.ctx, "kennedy", search.CandidateFilter{Surname: "hart", Policy: search.SurnamePrefix})
		r.Require().NoError(err)
		r.Len(persons, 2)
	})

	r.Run("treat like wildcards literally", func() {
		persons, err := r.repository.FindCandidates(r.ctx, "kennedy", search.CandidateFilter{Surname: "hart_", Policy: search.SurnamePrefix})
		r.Require().NoError(err)
		r.Require().Len(persons, 1)
		r.Equal("I3", persons[0].XRef)
	})

	r.Run("return every person without a surname", func() {
		persons, err := r.repository.FindCandidates(r.ctx, "kennedy", search.CandidateFilter{})
		r.Require().NoError(err)
		r.Len(persons, 3)
	})

	r.Run("keep trees apart", func() {
		persons, err := r.repository.FindCandidates(r.ctx, "royals", search.CandidateFilter{})
		r.Require().NoError(err)
		r.Require().Len(persons, 1)
		r.Equal("Windsor", persons[0].Names[0].Surname)
	})

	r.Run("return nothing for an unknown tree", func() {
		persons, err := r.repository.FindCandidates(r.ctx, "ghost", search.CandidateFilter{})
		r.Require().NoError(err)
		r.Empty(persons)
	})
}

func (r *PersonRepositoryTestSuite) TestUpsert() {
	r.Run("replace names and events", func() {
		p := hartenthaler()
		p.Names = p.Names[:1]
		p.Events = nil
		r.Require().NoError(r.repository.Upsert(r.ctx, "kennedy", p))

		persons, err := r.repository.FindCandidates(r.ctx, "kennedy", search.CandidateFilter{Surname: "Hartenthaler"})
		r.Require().NoError(err)
		r.Require().Len(persons, 1)
		r.Len(persons[0].Names, 1)
		r.Empty(persons[0].Events)
	})

	r.Run("return error for an unknown tree", func() {
		err := r.repository.Upsert(r.ctx, "ghost", hartenthaler())
		r.ErrorAs(err, &collection.NotFoundError{})
		r.ErrorContains(err, "ghost")
	})
}

func TestPersonRepository(t *testing.T) {
	suite.Run(t, &PersonRepositoryTestSuite{})
}
