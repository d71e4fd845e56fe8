package search_test

import (
	"testing"

	"github.com/golang-module/carbon/v2"
	"github.com/goto/metasearch/core/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayCount(t *testing.T) {
	assert.Equal(t, 2451545, search.DayCount(2000, 1, 1))
	assert.Equal(t, 2299161, search.DayCount(1582, 10, 15))
	assert.Equal(t, search.DayCount(2023, 3, 1), search.DayCount(2023, 2, 28)+1)
	assert.Equal(t, search.DayCount(2024, 3, 1), search.DayCount(2024, 2, 29)+1)
}

func TestParseSince(t *testing.T) {
	today := carbon.CreateFromDate(2024, 6, 15)

	valid := []struct {
		Value string
		Days  int
	}{
		{Value: "2023-11-01", Days: search.DayCount(2023, 11, 1)},
		{Value: "1582-01-01", Days: search.DayCount(1582, 1, 1)},
		{Value: "2024-02-29", Days: search.DayCount(2024, 2, 29)},
		{Value: "2024-06-15", Days: search.DayCount(2024, 6, 15)},
	}
	for _, tc := range valid {
		t.Run(tc.Value, func(t *testing.T) {
			days, err := search.ParseSince(tc.Value, today)
			require.NoError(t, err)
			assert.Equal(t, tc.Days, days)
		})
	}

	invalid := []string{
		"2023-13-01",
		"1500-01-01",
		"abcd",
		"2023-02-29",
		"2023-04-31",
		"2023-1-01",
		"2024-06-16",
		"01.11.2023",
	}
	for _, value := range invalid {
		t.Run(value, func(t *testing.T) {
			_, err := search.ParseSince(value, today)
			var verr search.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, search.KindBadDate, verr.Kind)
			assert.Equal(t, value, verr.Value)
		})
	}
}
