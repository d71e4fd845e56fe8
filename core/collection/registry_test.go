package collection_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goto/metasearch/core/collection"
	"github.com/goto/metasearch/core/collection/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hostCollections = []collection.Collection{
	{ID: 1, Name: "kennedy", Title: "Kennedy Family", Public: true},
	{ID: 2, Name: "private", Title: "Private Tree", Public: false},
	{ID: 3, Name: "royals", Title: "Royal Houses", Public: true},
	{ID: 4, Name: "hartenthaler", Title: "Hartenthaler", Public: true},
}

func names(cols []collection.Collection) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name
	}
	return out
}

func TestCatalogPublicCollections(t *testing.T) {
	type testCase struct {
		Description string
		Prefs       collection.Preferences
		Expected    []string
	}

	var testCases = []testCase{
		{
			Description: "should keep the natural order and drop non public collections",
			Expected:    []string{"kennedy", "royals", "hartenthaler"},
		},
		{
			Description: "should put explicitly ordered collections first",
			Prefs:       collection.Preferences{Order: []string{"hartenthaler", "kennedy"}},
			Expected:    []string{"hartenthaler", "kennedy", "royals"},
		},
		{
			Description: "should ignore unknown and private names in the order preference",
			Prefs:       collection.Preferences{Order: []string{"ghost", "private", "royals", "royals"}},
			Expected:    []string{"royals", "kennedy", "hartenthaler"},
		},
		{
			Description: "should drop disabled collections",
			Prefs:       collection.Preferences{Disabled: []string{"royals"}},
			Expected:    []string{"kennedy", "hartenthaler"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			cat := collection.NewCatalog(hostCollections, tc.Prefs)
			got := cat.PublicCollections()

			assert.Equal(t, tc.Expected, names(got))
			for _, c := range got {
				assert.True(t, c.Public)
				assert.True(t, c.Enabled)
			}
		})
	}
}

func TestCatalogResolve(t *testing.T) {
	t.Run("should return all public collections when nothing is requested and no default is configured", func(t *testing.T) {
		cat := collection.NewCatalog(hostCollections, collection.Preferences{})
		valid, invalid := cat.Resolve(nil)

		assert.Equal(t, []string{"kennedy", "royals", "hartenthaler"}, valid)
		assert.Empty(t, invalid)
	})

	t.Run("should return the configured default set in display order", func(t *testing.T) {
		cat := collection.NewCatalog(hostCollections, collection.Preferences{Defaults: []string{"hartenthaler", "kennedy"}})
		valid, invalid := cat.Resolve([]string{})

		assert.Equal(t, []string{"kennedy", "hartenthaler"}, valid)
		assert.Empty(t, invalid)
	})

	t.Run("should fall back to all public collections when no configured default is public", func(t *testing.T) {
		cat := collection.NewCatalog(hostCollections, collection.Preferences{Defaults: []string{"private"}})
		valid, _ := cat.Resolve(nil)

		assert.Equal(t, []string{"kennedy", "royals", "hartenthaler"}, valid)
	})

	t.Run("should trim, dedupe and keep input order", func(t *testing.T) {
		cat := collection.NewCatalog(hostCollections, collection.Preferences{})
		valid, invalid := cat.Resolve([]string{" royals ", "kennedy", "royals", ""})

		assert.Equal(t, []string{"royals", "kennedy"}, valid)
		assert.Empty(t, invalid)
	})

	t.Run("should report unknown and private names as invalid", func(t *testing.T) {
		cat := collection.NewCatalog(hostCollections, collection.Preferences{})
		valid, invalid := cat.Resolve([]string{"kennedy", "ghost", "private"})

		assert.Equal(t, []string{"kennedy"}, valid)
		assert.Equal(t, []string{"ghost", "private"}, invalid)
	})
}

func TestCatalogResolveStrict(t *testing.T) {
	cat := collection.NewCatalog(hostCollections, collection.Preferences{Disabled: []string{"royals"}})

	t.Run("should fail naming every unknown collection", func(t *testing.T) {
		_, err := cat.ResolveStrict([]string{"nonexistent"})

		var nfErr collection.NotFoundError
		require.True(t, errors.As(err, &nfErr))
		assert.Equal(t, []string{"nonexistent"}, nfErr.Names)
		assert.Contains(t, err.Error(), `"nonexistent"`)
	})

	t.Run("should treat disabled collections as not found", func(t *testing.T) {
		_, err := cat.ResolveStrict([]string{"kennedy", "royals"})
		assert.Equal(t, collection.NotFoundError{Names: []string{"royals"}}, err)
	})

	t.Run("should reject malformed names before lookup", func(t *testing.T) {
		_, err := cat.ResolveStrict([]string{"kennedy", "../etc"})
		assert.Equal(t, collection.InvalidNameError{Name: "../etc"}, err)
	})

	t.Run("should never fail for an empty request", func(t *testing.T) {
		valid, err := cat.ResolveStrict(nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"kennedy", "hartenthaler"}, valid)
	})
}

func TestCatalogOrdered(t *testing.T) {
	cat := collection.NewCatalog(hostCollections, collection.Preferences{Order: []string{"royals"}})
	assert.Equal(t, []string{"royals", "kennedy"}, cat.Ordered([]string{"kennedy", "ghost", "royals"}))
}

func TestRegistryCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("should build a catalog from the repository", func(t *testing.T) {
		repo := mocks.NewCollectionRepository(t)
		repo.EXPECT().GetAll(ctx).Return(hostCollections, nil)

		cat, err := collection.NewRegistry(repo).Catalog(ctx, collection.Preferences{})
		require.NoError(t, err)

		c, ok := cat.Lookup("kennedy")
		assert.True(t, ok)
		assert.Equal(t, "kennedy (Kennedy Family)", c.Label())
	})

	t.Run("should wrap repository errors", func(t *testing.T) {
		repo := mocks.NewCollectionRepository(t)
		repo.EXPECT().GetAll(ctx).Return(nil, errors.New("connection refused"))

		_, err := collection.NewRegistry(repo).Catalog(ctx, collection.Preferences{})
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestSplitNames(t *testing.T) {
	assert.Equal(t, []string{"kennedy", "ghost"}, collection.SplitNames(" kennedy, ,ghost,"))
	assert.Nil(t, collection.SplitNames(""))
}
